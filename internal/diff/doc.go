// Package diff computes line-level diffs between an "old" and a "new" text.
//
// Representation: Lines returns an ordered slice of hunks. Each hunk has an Op and the lines it covers (without their '\n'):
//   - OpEqual: lines present, unchanged, in both texts
//   - OpDelete: lines present only in the old text
//   - OpInsert: lines present only in the new text
//
// Invariants:
//   - concat(Lines of OpEqual and OpInsert hunks) == the lines of the new text
//   - concat(Lines of OpEqual and OpDelete hunks) == the lines of the old text
//   - Adjacent hunks never share an Op, and no hunk is empty.
//   - Inside a changed region (between two OpEqual hunks), the OpDelete hunk comes before the OpInsert hunk.
//
// Newlines: '\n' is the line separator. A single trailing '\n' terminates the last line rather than starting an empty one, so "a\n" and "a" both have the single
// line "a", and "" has no lines at all. '\r' is left in place ("\r\n" texts just kinda work: every line ends with '\r').
//
// Tokens: Interner maps arbitrary strings to runes so that any token sequence (lines, words) can be diffed with diffmatchpatch's rune differ. The word-level differ
// in internal/worddiff shares it.
package diff

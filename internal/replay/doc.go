// Package replay turns a sequence of file revisions into per-step line views for an animated code walkthrough.
//
// For one revision transition, Diff produces the new revision's lines, each tagged as unchanged, added, or modified in place. Lines that only exist in the old
// revision are never emitted: the view always shows the state after the step, annotated with what it replaced. Modified lines carry a per-rune bitmap of inserted
// characters and an inline patch. A changed line whose characters are mostly new is shown as added instead, keeping its removed counterpart for reference.
//
// Annotate adds what a renderer needs to animate the lines across steps: a stable Key per line (value plus occurrence index, so duplicate lines like "}" stay
// distinguishable), an edit ordinal for staggering, and the end of the leading comment block.
//
// Build computes every step of a Timeline up front, concurrently, so that moving between steps is a lookup. Session wraps Build for callers whose revision set can
// change while a build is running: a newer Load cancels and discards the older one.
package replay

// Package worddiff diffs two single lines at word granularity and reports which characters of the new line were inserted.
//
// Lines are segmented on Unicode word boundaries (UAX #29), so words, punctuation and whitespace runs are the unit of comparison and an inserted identifier is
// marked as one contiguous run instead of scattered single-character matches. Each changed run is then narrowed to the part that actually differs: the common
// rune prefix and suffix of the deleted and inserted text count as unchanged. That keeps small edits to a word small ("bar" -> "barz" marks only the "z").
package worddiff

import (
	"strings"
	"unicode/utf8"

	"github.com/clipperhouse/uax29/v2/words"
	"github.com/codalotl/codestepper/internal/diff"
)

// Patch markers wrap deleted and inserted text in Result.Patch.
const (
	DeleteStart = "[-"
	DeleteEnd   = "-]"
	InsertStart = "{+"
	InsertEnd   = "+}"
)

// Result is the word diff of one line pair.
type Result struct {
	// Bitmap has one entry per rune of the new line; true marks a rune that was inserted relative to the old line.
	Bitmap Bitmap

	// Patch is the new line with the diff spelled out inline: unchanged text verbatim, deleted text as "[-text-]", inserted text as "{+text+}". Within a changed
	// run the deletion comes first. Removing every "[-...-]" group and the "{+"/"+}" markers yields the new line.
	Patch string
}

// Diff diffs oldLine to newLine. Lines must not contain '\n'. The result is a pure function of its inputs.
func Diff(oldLine, newLine string) Result {
	edits := diff.DiffTokens(tokenize(oldLine), tokenize(newLine))

	bitmap := make(Bitmap, 0, utf8.RuneCountInString(newLine))
	var patch strings.Builder

	for i := 0; i < len(edits); {
		if edits[i].Op == diff.OpEqual {
			text := strings.Join(edits[i].Tokens, "")
			patch.WriteString(text)
			bitmap = bitmap.appendN(false, utf8.RuneCountInString(text))
			i++
			continue
		}

		// Collect the changed run up to the next equal edit.
		var deleted, inserted strings.Builder
		for ; i < len(edits) && edits[i].Op != diff.OpEqual; i++ {
			switch edits[i].Op {
			case diff.OpDelete:
				deleted.WriteString(strings.Join(edits[i].Tokens, ""))
			case diff.OpInsert:
				inserted.WriteString(strings.Join(edits[i].Tokens, ""))
			}
		}
		bitmap = writeRun(&patch, bitmap, deleted.String(), inserted.String())
	}

	return Result{Bitmap: bitmap, Patch: patch.String()}
}

// writeRun writes one changed run to patch and appends its bits to bitmap.
func writeRun(patch *strings.Builder, bitmap Bitmap, deleted, inserted string) Bitmap {
	oldRunes := []rune(deleted)
	newRunes := []rune(inserted)

	prefix := commonPrefix(oldRunes, newRunes)
	oldRunes, newRunes = oldRunes[prefix:], newRunes[prefix:]
	suffix := commonSuffix(oldRunes, newRunes)

	head := string([]rune(inserted)[:prefix])
	midOld := string(oldRunes[:len(oldRunes)-suffix])
	midNew := string(newRunes[:len(newRunes)-suffix])
	tail := string(newRunes[len(newRunes)-suffix:])

	patch.WriteString(head)
	if midOld != "" {
		patch.WriteString(DeleteStart)
		patch.WriteString(midOld)
		patch.WriteString(DeleteEnd)
	}
	if midNew != "" {
		patch.WriteString(InsertStart)
		patch.WriteString(midNew)
		patch.WriteString(InsertEnd)
	}
	patch.WriteString(tail)

	bitmap = bitmap.appendN(false, prefix)
	bitmap = bitmap.appendN(true, len(newRunes)-suffix)
	bitmap = bitmap.appendN(false, suffix)
	return bitmap
}

// tokenize splits line on UAX #29 word boundaries. Concatenating the tokens yields line.
func tokenize(line string) []string {
	var tokens []string
	iter := words.FromString(line)
	for iter.Next() {
		tokens = append(tokens, iter.Value())
	}
	return tokens
}

func commonPrefix(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func commonSuffix(a, b []rune) int {
	n := 0
	for n < len(a) && n < len(b) && a[len(a)-1-n] == b[len(b)-1-n] {
		n++
	}
	return n
}

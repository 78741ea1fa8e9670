package diff

import (
	"github.com/sergi/go-diff/diffmatchpatch"
)

// Edit is a maximal run of tokens sharing an Op.
type Edit struct {
	Op     Op
	Tokens []string
}

// DiffTokens diffs two token sequences and returns the edits that turn oldTokens into newTokens. Tokens are compared whole (by string equality).
//
// The result is normalized: no edit is empty, adjacent edits never share an Op, and between two OpEqual edits there is at most one OpDelete followed by at most
// one OpInsert. The diff is minimal in the sense of diffmatchpatch's Myers implementation run without a deadline, so the output is a pure function of the input.
func DiffTokens(oldTokens, newTokens []string) []Edit {
	in := NewInterner()
	rOld := in.Runes(oldTokens)
	rNew := in.Runes(newTokens)

	dmp := diffmatchpatch.New()
	dmp.DiffTimeout = 0 // A deadline would make the diff depend on machine speed.
	diffs := dmp.DiffMainRunes(rOld, rNew, false)
	diffs = dmp.DiffCleanupMerge(diffs)

	var edits []Edit
	var dels []string
	var ins []string

	flush := func() {
		if len(dels) > 0 {
			edits = append(edits, Edit{Op: OpDelete, Tokens: dels})
		}
		if len(ins) > 0 {
			edits = append(edits, Edit{Op: OpInsert, Tokens: ins})
		}
		dels = nil
		ins = nil
	}

	for _, d := range diffs {
		tokens := in.Tokens(d.Text)
		if len(tokens) == 0 {
			continue
		}
		switch d.Type {
		case diffmatchpatch.DiffEqual:
			flush()
			if n := len(edits); n > 0 && edits[n-1].Op == OpEqual {
				edits[n-1].Tokens = append(edits[n-1].Tokens, tokens...)
				continue
			}
			edits = append(edits, Edit{Op: OpEqual, Tokens: tokens})
		case diffmatchpatch.DiffDelete:
			dels = append(dels, tokens...)
		case diffmatchpatch.DiffInsert:
			ins = append(ins, tokens...)
		}
	}
	flush()

	return edits
}

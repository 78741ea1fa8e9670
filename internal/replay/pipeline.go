package replay

import (
	"github.com/codalotl/codestepper/internal/classify"
	"github.com/codalotl/codestepper/internal/diff"
	"github.com/codalotl/codestepper/internal/worddiff"
)

// Diff returns the lines of newText classified against oldText, using classify.DefaultPolicy. It never fails: empty texts are valid (all added, or nothing).
func Diff(oldText, newText string) []Line {
	return DiffWith(oldText, newText, classify.DefaultPolicy)
}

// DiffWith is Diff with an explicit classification policy.
//
// Removed lines are buffered until the next added or unchanged hunk and paired with its lines by position. Added lines beyond the buffer are plain adds; removed
// lines beyond the hunk are dropped, since the view only shows the new revision.
func DiffWith(oldText, newText string, policy classify.Policy) []Line {
	var lines []Line
	var pendingRemoved []string

	for _, h := range diff.Lines(oldText, newText) {
		switch h.Op {
		case diff.OpDelete:
			pendingRemoved = append(pendingRemoved, h.Lines...)
		case diff.OpInsert:
			for k, added := range h.Lines {
				if k >= len(pendingRemoved) {
					lines = append(lines, Line{Value: added, State: StateAdded})
					continue
				}
				lines = append(lines, pairLine(pendingRemoved[k], added, policy))
			}
			pendingRemoved = nil
		case diff.OpEqual:
			for k, same := range h.Lines {
				counterpart := same
				if k < len(pendingRemoved) {
					counterpart = pendingRemoved[k]
				}
				lines = append(lines, Line{Value: same, State: StateUnchanged, RemovedCounterpart: counterpart, HasCounterpart: true})
			}
			pendingRemoved = nil
		}
	}

	return lines
}

// pairLine classifies added, which replaced removed.
func pairLine(removed, added string, policy classify.Policy) Line {
	result := worddiff.Diff(removed, added)
	if policy.Classify(removed, added, result).Replace {
		return Line{Value: added, State: StateAdded, RemovedCounterpart: removed, HasCounterpart: true}
	}
	return Line{
		Value:              added,
		State:              StateModified,
		ModifiedCharacters: result.Bitmap,
		Patch:              result.Patch,
		RemovedCounterpart: removed,
		HasCounterpart:     true,
	}
}

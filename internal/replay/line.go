package replay

import (
	"github.com/codalotl/codestepper/internal/worddiff"
)

// State classifies a line of the new revision.
type State int

const (
	StateUnchanged State = iota
	StateAdded
	StateModified
)

func (s State) String() string {
	switch s {
	case StateUnchanged:
		return "unchanged"
	case StateAdded:
		return "added"
	case StateModified:
		return "modified"
	default:
		return "unknown"
	}
}

// Line is one line of the new revision.
//
// Invariants:
//   - ModifiedCharacters is non-nil and Patch is set iff State == StateModified; then len(ModifiedCharacters) is the rune count of Value.
//   - StateModified lines always have a counterpart.
//   - StateAdded lines have a counterpart iff they replaced a removed line whose characters were mostly rewritten (a "replacement add").
//   - StateUnchanged lines have a counterpart: the removed line at the same position of a preceding deleted run, or the line itself.
type Line struct {
	Value              string
	State              State
	ModifiedCharacters worddiff.Bitmap // Runes of Value inserted relative to RemovedCounterpart.
	Patch              string          // Inline word diff from RemovedCounterpart to Value.
	RemovedCounterpart string          // Line this one was paired with; only meaningful if HasCounterpart.
	HasCounterpart     bool
}

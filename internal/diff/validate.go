package diff

import (
	"fmt"
	"slices"
)

// validate checks the hunk invariants against the lines they were computed from and returns an error on the first violation.
func validate(oldLines, newLines []string, hunks []Hunk) error {
	var oldConcat, newConcat []string
	for hi, h := range hunks {
		if len(h.Lines) == 0 {
			return fmt.Errorf("hunk[%d]: empty hunk", hi)
		}
		if hi > 0 && hunks[hi-1].Op == h.Op {
			return fmt.Errorf("hunk[%d]: same Op (%s) as previous hunk", hi, h.Op)
		}
		if h.Op == OpDelete && hi > 0 && hunks[hi-1].Op == OpInsert {
			return fmt.Errorf("hunk[%d]: OpDelete follows OpInsert", hi)
		}

		switch h.Op {
		case OpEqual:
			oldConcat = append(oldConcat, h.Lines...)
			newConcat = append(newConcat, h.Lines...)
		case OpDelete:
			oldConcat = append(oldConcat, h.Lines...)
		case OpInsert:
			newConcat = append(newConcat, h.Lines...)
		default:
			return fmt.Errorf("hunk[%d]: unknown Op %d", hi, h.Op)
		}
	}

	if !slices.Equal(oldConcat, oldLines) {
		return fmt.Errorf("diff: hunks do not reconstruct old lines")
	}
	if !slices.Equal(newConcat, newLines) {
		return fmt.Errorf("diff: hunks do not reconstruct new lines")
	}
	return nil
}

package diff

import "fmt"

// Lines diffs oldText to newText line by line (see SplitLines for how texts become lines) and returns the ordered hunks. Both texts empty yields no hunks; identical
// texts yield a single OpEqual hunk.
func Lines(oldText, newText string) []Hunk {
	oldLines := SplitLines(oldText)
	newLines := SplitLines(newText)

	edits := DiffTokens(oldLines, newLines)
	hunks := make([]Hunk, 0, len(edits))
	for _, e := range edits {
		hunks = append(hunks, Hunk{Op: e.Op, Lines: e.Tokens})
	}

	if err := validate(oldLines, newLines, hunks); err != nil {
		panic(fmt.Errorf("Lines: validate failed with %w", err))
	}

	return hunks
}

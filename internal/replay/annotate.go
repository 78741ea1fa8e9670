package replay

import (
	"fmt"
	"strings"
	"time"

	"github.com/codalotl/codestepper/internal/langtable"
)

// Stagger delays a renderer can use with AnnotatedLine.Delay.
const (
	DefaultBaseDelay = 200 * time.Millisecond
	DefaultStepDelay = 50 * time.Millisecond
)

// Key identifies a line across steps: its value plus how many earlier lines in the same frame have the same value. Keys are unique within a frame.
type Key struct {
	Value      string
	Occurrence int
}

func (k Key) String() string {
	return fmt.Sprintf("line--%s--%d", k.Value, k.Occurrence)
}

// AnnotatedLine is a Line plus the per-frame data a renderer needs to animate it.
type AnnotatedLine struct {
	Line
	Key         Key
	EditOrdinal int // Number of earlier lines in the frame whose State is not StateUnchanged.
}

// Delay returns base + EditOrdinal*step, staggering lines by how many edits precede them.
func (l AnnotatedLine) Delay(base, step time.Duration) time.Duration {
	return base + time.Duration(l.EditOrdinal)*step
}

// Frame is the view of one revision: its lines classified against the previous revision (or against nothing, for the first one).
type Frame struct {
	Path        string
	Language    langtable.Language
	Highlighter string // Passed through for renderers; replay does no highlighting.
	Lines       []AnnotatedLine

	// CommentBlockEnd is the number of leading lines that are single-line comments in the frame's language, i.e. the persistent header block. Lines[:CommentBlockEnd]
	// are the header.
	CommentBlockEnd int
}

// Annotate builds the Frame for the revision at path from its classified lines. tables may be nil (built-in tables).
func Annotate(path string, lines []Line, tables *langtable.Tables) Frame {
	lang := langtable.ForFilename(path)
	marker := tables.CommentMarker(lang)

	frame := Frame{
		Path:        path,
		Language:    lang,
		Highlighter: tables.Highlighter(lang),
		Lines:       make([]AnnotatedLine, len(lines)),
	}

	seen := make(map[string]int, len(lines))
	edits := 0
	inHeader := true
	for i, ln := range lines {
		frame.Lines[i] = AnnotatedLine{
			Line:        ln,
			Key:         Key{Value: ln.Value, Occurrence: seen[ln.Value]},
			EditOrdinal: edits,
		}
		seen[ln.Value]++
		if ln.State != StateUnchanged {
			edits++
		}

		if inHeader && strings.HasPrefix(strings.TrimSpace(ln.Value), marker) {
			frame.CommentBlockEnd++
		} else {
			inHeader = false
		}
	}

	return frame
}

func (f Frame) counts() (added, modified int) {
	for _, ln := range f.Lines {
		switch ln.State {
		case StateAdded:
			added++
		case StateModified:
			modified++
		}
	}
	return added, modified
}

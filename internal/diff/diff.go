package diff

import "strings"

// Op is an operation from old text to new text.
type Op int

// Operations from old text to new text.
const (
	OpEqual Op = iota
	OpInsert
	OpDelete
)

func (op Op) String() string {
	switch op {
	case OpEqual:
		return "equal"
	case OpInsert:
		return "insert"
	case OpDelete:
		return "delete"
	default:
		return "unknown"
	}
}

// Hunk is a maximal run of lines sharing the same Op. Lines never contain '\n'.
type Hunk struct {
	Op    Op       // Operation for this hunk (OpEqual, OpInsert, or OpDelete).
	Lines []string // Lines covered by this hunk, in order. Never empty.
}

// defaultEOL is the EOL ('\n').
//
// This constant exists because the design may change to allow configurable EOLs (maybe Windows needs "\r\n"), and this provides a nice hook to find callsites.
const defaultEOL = "\n"

// SplitLines splits text into lines on '\n'. The trailing-newline artifact (a final empty element after the last '\n') is dropped, so it never shows up as a phantom
// blank line. SplitLines("") returns nil.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, defaultEOL)
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Package render draws replay frames for terminals.
package render

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/codalotl/codestepper/internal/replay"
	"github.com/mattn/go-runewidth"
)

// Colors (ANSI 256).
const (
	reset     = "\x1b[0m"
	blackFG   = "\x1b[30m"
	grayFG    = "\x1b[38;5;244m"
	greenLine = "\x1b[48;5;194m" // light green for added lines
	greenSpan = "\x1b[48;5;114m" // darker green for modified runes
	cyanBold  = "\x1b[1;36m"
)

// Options control Frame output. The zero value renders plain text with no width limit.
type Options struct {
	Color bool // emit ANSI escapes
	Width int  // max display columns per line, including the gutter; <= 0 means unlimited
}

// Frame renders f as a header line followed by one line per frame line. Each line has a right-aligned line number, a marker ('+' added, '~' modified, ' '
// unchanged), a space, and the line value. Lines wider than opts.Width are cut on a rune boundary.
//
// With opts.Color, added lines get a green background, modified runes (per ModifiedCharacters) a darker green, and the leading comment block a gray foreground.
// Without it, the output is plain and suited to golden tests and pipes.
func Frame(f replay.Frame, opts Options) string {
	var b strings.Builder

	header := f.Path + ":"
	if f.Language != "" {
		header = fmt.Sprintf("%s (%s):", f.Path, f.Language)
	}
	if opts.Color {
		header = cyanBold + header + reset
	}
	b.WriteString(header)
	b.WriteByte('\n')

	numWidth := len(strconv.Itoa(len(f.Lines)))
	gutterWidth := numWidth + 3 // number, space, marker, space

	for i, ln := range f.Lines {
		fmt.Fprintf(&b, "%*d %c ", numWidth, i+1, marker(ln.State))

		runes := []rune(ln.Value)
		if opts.Width > 0 {
			runes = runes[:fit(runes, opts.Width-gutterWidth)]
		}

		if !opts.Color {
			b.WriteString(string(runes))
			b.WriteByte('\n')
			continue
		}

		switch {
		case i < f.CommentBlockEnd && ln.State == replay.StateUnchanged:
			b.WriteString(grayFG + string(runes) + reset)
		case ln.State == replay.StateAdded:
			b.WriteString(blackFG + greenLine + string(runes) + reset)
		case ln.State == replay.StateModified:
			writeModified(&b, runes, ln.ModifiedCharacters)
		default:
			b.WriteString(string(runes))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// writeModified highlights the runes whose bitmap entry is set, coalescing consecutive runs into one span.
func writeModified(b *strings.Builder, runes []rune, bitmap []bool) {
	inSpan := false
	for i, r := range runes {
		on := i < len(bitmap) && bitmap[i]
		if on != inSpan {
			if on {
				b.WriteString(blackFG + greenSpan)
			} else {
				b.WriteString(reset)
			}
			inSpan = on
		}
		b.WriteRune(r)
	}
	if inSpan {
		b.WriteString(reset)
	}
}

func marker(s replay.State) byte {
	switch s {
	case replay.StateAdded:
		return '+'
	case replay.StateModified:
		return '~'
	default:
		return ' '
	}
}

// fit returns how many leading runes of runes fit in width display columns.
func fit(runes []rune, width int) int {
	if width <= 0 {
		return 0
	}
	used := 0
	for i, r := range runes {
		w := runewidth.RuneWidth(r)
		if used+w > width {
			return i
		}
		used += w
	}
	return len(runes)
}

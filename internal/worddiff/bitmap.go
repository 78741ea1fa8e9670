package worddiff

import (
	"fmt"
	"strings"
)

// Bitmap marks positions of a line, one entry per rune. Its length is tied to the line it describes, which is why it is a slice of flags rather than a free-form
// string.
type Bitmap []bool

// ParseBitmap parses the '0'/'1' form produced by Bitmap.String.
func ParseBitmap(s string) (Bitmap, error) {
	b := make(Bitmap, 0, len(s))
	for i, c := range s {
		switch c {
		case '0':
			b = append(b, false)
		case '1':
			b = append(b, true)
		default:
			return nil, fmt.Errorf("worddiff: invalid bitmap character %q at %d", c, i)
		}
	}
	return b, nil
}

// String renders b as '0'/'1' characters, one per position.
func (b Bitmap) String() string {
	var sb strings.Builder
	sb.Grow(len(b))
	for _, set := range b {
		if set {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

// Count returns the number of set positions.
func (b Bitmap) Count() int {
	n := 0
	for _, set := range b {
		if set {
			n++
		}
	}
	return n
}

func (b Bitmap) appendN(v bool, n int) Bitmap {
	for i := 0; i < n; i++ {
		b = append(b, v)
	}
	return b
}

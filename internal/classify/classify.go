// Package classify decides whether a removed/added line pair reads better as an in-place edit or as a full replacement.
package classify

import (
	"github.com/codalotl/codestepper/internal/worddiff"
)

// Policy holds the tunable knobs of the decision. The zero value replaces nothing and counts spaces; use DefaultPolicy.
type Policy struct {
	// ReplaceThreshold is the inserted-character ratio above which a pair is shown as a replacement. A ratio exactly at the threshold is still an edit.
	ReplaceThreshold float64

	// IgnoreSpaces drops positions holding ' ' in the added line before computing the ratio, so re-indentation alone never makes a line look rewritten.
	IgnoreSpaces bool
}

// DefaultPolicy is the policy the replay pipeline uses unless configured otherwise.
var DefaultPolicy = Policy{ReplaceThreshold: 0.6, IgnoreSpaces: true}

// Decision is the outcome of classifying one line pair.
type Decision struct {
	Replace bool    // true: show the added line as wholly new. false: show it as modified in place.
	Ratio   float64 // Inserted-character ratio the decision was based on.
}

// Ratio returns the fraction of addedLine's counted positions that bitmap marks as inserted. Positions are runes; with IgnoreSpaces, positions holding ' ' are
// not counted. Ratio is 0 when no position is counted.
func (p Policy) Ratio(addedLine string, bitmap worddiff.Bitmap) float64 {
	counted := 0
	inserted := 0
	pos := 0
	for _, r := range addedLine {
		if pos >= len(bitmap) {
			break
		}
		set := bitmap[pos]
		pos++
		if p.IgnoreSpaces && r == ' ' {
			continue
		}
		counted++
		if set {
			inserted++
		}
	}
	if counted == 0 {
		return 0
	}
	return float64(inserted) / float64(counted)
}

// Classify decides how the pair (removedLine, addedLine) is presented, given the word diff of the pair. The current rule only looks at addedLine and the bitmap.
func (p Policy) Classify(removedLine, addedLine string, result worddiff.Result) Decision {
	ratio := p.Ratio(addedLine, result.Bitmap)
	return Decision{Replace: ratio > p.ReplaceThreshold, Ratio: ratio}
}

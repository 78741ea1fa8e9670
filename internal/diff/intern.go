package diff

import "fmt"

// Interner assigns each distinct token a rune so that token sequences can be diffed as rune slices. The zero value is not usable; use NewInterner.
//
// Runes are handed out in increasing order starting at 1, skipping the UTF-16 surrogate block (U+D800..U+DFFF). Surrogates are not valid runes in a Go string,
// and diffmatchpatch round-trips rune slices through strings, so a surrogate would come back as U+FFFD and decode to the wrong token.
type Interner struct {
	byToken map[string]rune
	tokens  []string // tokens[r] is the token for rune r; tokens[0] is unused.
	next    rune
}

const (
	surrogateMin = 0xD800
	surrogateMax = 0xDFFF
	maxRune      = 0x10FFFF
)

// NewInterner returns an empty Interner.
func NewInterner() *Interner {
	return &Interner{
		byToken: map[string]rune{},
		tokens:  []string{""},
		next:    1,
	}
}

// Rune returns the rune for token, assigning a new one if token has not been seen. It panics if more distinct tokens are interned than there are usable runes.
func (in *Interner) Rune(token string) rune {
	if r, ok := in.byToken[token]; ok {
		return r
	}
	if in.next == surrogateMin {
		for len(in.tokens) <= surrogateMax {
			in.tokens = append(in.tokens, "")
		}
		in.next = surrogateMax + 1
	}
	if in.next > maxRune {
		panic(fmt.Errorf("diff: interner exhausted after %d distinct tokens", len(in.byToken)))
	}
	r := in.next
	in.next++
	in.byToken[token] = r
	in.tokens = append(in.tokens, token)
	return r
}

// Runes interns every token in order.
func (in *Interner) Runes(tokens []string) []rune {
	out := make([]rune, len(tokens))
	for i, t := range tokens {
		out[i] = in.Rune(t)
	}
	return out
}

// Token returns the token for r, which must have been returned by Rune.
func (in *Interner) Token(r rune) string {
	if r <= 0 || int(r) >= len(in.tokens) {
		panic(fmt.Errorf("diff: rune %U was not interned", r))
	}
	return in.tokens[r]
}

// Tokens decodes a string of interned runes back into tokens.
func (in *Interner) Tokens(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, r := range s {
		out = append(out, in.Token(r))
	}
	return out
}

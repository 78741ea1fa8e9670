package diff

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInterner_RoundTrip(t *testing.T) {
	in := NewInterner()
	a := in.Rune("a")
	b := in.Rune("b")
	require.Equal(t, a, in.Rune("a"))
	require.NotEqual(t, a, b)
	require.Equal(t, []string{"a", "b", "a"}, in.Tokens(string([]rune{a, b, a})))
	require.Nil(t, in.Tokens(""))
}

func TestInterner_SkipsSurrogates(t *testing.T) {
	in := NewInterner()
	var last rune
	for i := 0; i < surrogateMin+10; i++ {
		last = in.Rune(strconv.Itoa(i))
		require.False(t, last >= surrogateMin && last <= surrogateMax, "got surrogate rune %U", last)
	}
	require.Greater(t, last, rune(surrogateMax))

	// The rune survives a string round trip and decodes to the same token.
	s := string([]rune{last})
	require.Equal(t, []string{in.Token(last)}, in.Tokens(s))
}

func TestInterner_TokenPanicsOnUnknownRune(t *testing.T) {
	in := NewInterner()
	require.Panics(t, func() { in.Token(42) })
}

func TestDiffTokens_Normalized(t *testing.T) {
	edits := DiffTokens([]string{"a", "b", "c"}, []string{"x", "b", "y", "z"})
	require.Equal(t, []Edit{
		{Op: OpDelete, Tokens: []string{"a"}},
		{Op: OpInsert, Tokens: []string{"x"}},
		{Op: OpEqual, Tokens: []string{"b"}},
		{Op: OpDelete, Tokens: []string{"c"}},
		{Op: OpInsert, Tokens: []string{"y", "z"}},
	}, edits)
}

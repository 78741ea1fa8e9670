package classify

import (
	"testing"

	"github.com/codalotl/codestepper/internal/worddiff"
	"github.com/stretchr/testify/require"
)

func bitmap(t *testing.T, s string) worddiff.Bitmap {
	t.Helper()
	b, err := worddiff.ParseBitmap(s)
	require.NoError(t, err)
	return b
}

func TestPolicy_Ratio(t *testing.T) {
	tests := []struct {
		name   string
		policy Policy
		added  string
		bitmap string
		want   float64
	}{
		{name: "one of four", policy: DefaultPolicy, added: "barz", bitmap: "0001", want: 0.25},
		{name: "all inserted", policy: DefaultPolicy, added: "GOODBYE", bitmap: "1111111", want: 1},
		{name: "empty line", policy: DefaultPolicy, added: "", bitmap: "", want: 0},
		{name: "only spaces", policy: DefaultPolicy, added: "   ", bitmap: "111", want: 0},
		{name: "spaces ignored", policy: DefaultPolicy, added: "    x", bitmap: "11110", want: 0},
		{name: "spaces counted", policy: Policy{ReplaceThreshold: 0.6}, added: "    x", bitmap: "11110", want: 0.8},
		{name: "tabs are counted", policy: DefaultPolicy, added: "\tx", bitmap: "10", want: 0.5},
		{name: "positions are runes", policy: DefaultPolicy, added: "日本x", bitmap: "001", want: 1.0 / 3},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.InDelta(t, tc.want, tc.policy.Ratio(tc.added, bitmap(t, tc.bitmap)), 1e-9)
		})
	}
}

func TestPolicy_Classify(t *testing.T) {
	t.Run("small edit is modified", func(t *testing.T) {
		d := DefaultPolicy.Classify("bar", "barz", worddiff.Diff("bar", "barz"))
		require.False(t, d.Replace)
		require.InDelta(t, 0.25, d.Ratio, 1e-9)
	})

	t.Run("rewrite is a replacement", func(t *testing.T) {
		d := DefaultPolicy.Classify("hello world", "GOODBYE", worddiff.Diff("hello world", "GOODBYE"))
		require.True(t, d.Replace)
		require.InDelta(t, 1.0, d.Ratio, 1e-9)
	})

	t.Run("threshold itself is an edit", func(t *testing.T) {
		// 3 of 5 counted positions inserted: exactly 0.6.
		d := DefaultPolicy.Classify("", "abcde", worddiff.Result{Bitmap: bitmap(t, "11100")})
		require.False(t, d.Replace)

		d = DefaultPolicy.Classify("", "abcde", worddiff.Result{Bitmap: bitmap(t, "11110")})
		require.True(t, d.Replace)
	})

	t.Run("reindent is not a rewrite", func(t *testing.T) {
		d := DefaultPolicy.Classify("x = 1", "        x = 1", worddiff.Diff("x = 1", "        x = 1"))
		require.False(t, d.Replace)
	})

	t.Run("tunable threshold", func(t *testing.T) {
		strict := Policy{ReplaceThreshold: 0.2, IgnoreSpaces: true}
		d := strict.Classify("bar", "barz", worddiff.Diff("bar", "barz"))
		require.True(t, d.Replace)
	})
}

package replay

import (
	"testing"
	"time"

	"github.com/codalotl/codestepper/internal/langtable"
	"github.com/stretchr/testify/require"
)

func TestAnnotate_StableKeys(t *testing.T) {
	lines := Diff("", "if (a) {\n}\nif (b) {\n}\n}\n")
	frame := Annotate("step.js", lines, nil)

	seen := map[Key]bool{}
	for _, ln := range frame.Lines {
		require.False(t, seen[ln.Key], "duplicate key %v", ln.Key)
		seen[ln.Key] = true
	}
	require.Equal(t, Key{Value: "}", Occurrence: 0}, frame.Lines[1].Key)
	require.Equal(t, Key{Value: "}", Occurrence: 1}, frame.Lines[3].Key)
	require.Equal(t, Key{Value: "}", Occurrence: 2}, frame.Lines[4].Key)
	require.Equal(t, "line--}--2", frame.Lines[4].Key.String())
}

func TestAnnotate_EditOrdinal(t *testing.T) {
	lines := []Line{
		{Value: "a", State: StateUnchanged},
		{Value: "b", State: StateAdded},
		{Value: "c", State: StateUnchanged},
		{Value: "d", State: StateModified},
		{Value: "e", State: StateAdded},
		{Value: "f", State: StateUnchanged},
	}
	frame := Annotate("x.go", lines, nil)

	var got []int
	for _, ln := range frame.Lines {
		got = append(got, ln.EditOrdinal)
	}
	require.Equal(t, []int{0, 0, 1, 1, 2, 3}, got)

	require.Equal(t, DefaultBaseDelay, frame.Lines[0].Delay(DefaultBaseDelay, DefaultStepDelay))
	require.Equal(t, 350*time.Millisecond, frame.Lines[5].Delay(DefaultBaseDelay, DefaultStepDelay))
}

func TestAnnotate_CommentBlock(t *testing.T) {
	tests := []struct {
		name string
		path string
		text string
		want int
	}{
		{name: "js header", path: "lesson/01.js", text: "// Step 1\n// Add a function\nfunction f() {}\n// not header\n", want: 2},
		{name: "indented marker", path: "a.ts", text: "  // indented\nlet x\n", want: 1},
		{name: "no header", path: "a.js", text: "let x\n// later\n", want: 0},
		{name: "python", path: "a.py", text: "# comment\nx = 1\n", want: 1},
		{name: "unknown language defaults to hash", path: "notes.zzqq", text: "# title\n// not a comment here\n", want: 1},
		{name: "all comments", path: "a.go", text: "// a\n// b\n", want: 2},
		{name: "empty", path: "a.go", text: "", want: 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			frame := Annotate(tc.path, Diff("", tc.text), langtable.Default())
			require.Equal(t, tc.want, frame.CommentBlockEnd)
		})
	}
}

func TestAnnotate_LanguageAndHighlighter(t *testing.T) {
	frame := Annotate("src/app.ts", nil, nil)
	require.Equal(t, langtable.LanguageTypeScript, frame.Language)
	require.Equal(t, "typescript", frame.Highlighter)
	require.Empty(t, frame.Lines)

	tables := langtable.Default().WithOverrides(map[string]string{"TypeScript": "///"}, map[string]string{"TypeScript": "tsx"})
	frame = Annotate("src/app.ts", Diff("", "/// doc\n// plain\n"), tables)
	require.Equal(t, "tsx", frame.Highlighter)
	require.Equal(t, 1, frame.CommentBlockEnd)
}

package replay

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func revisionsFor(texts ...string) []Revision {
	var revs []Revision
	for i, text := range texts {
		revs = append(revs, NewRevision(fmt.Sprintf("steps/%02d.js", i), text))
	}
	return revs
}

func TestBuild_FramesInOrder(t *testing.T) {
	texts := []string{
		"let a = 1\n",
		"let a = 1\nlet b = 2\n",
		"let a = 10\nlet b = 2\n",
		"let b = 2\n",
		"",
		"console.log(\"done\")\n",
	}
	for _, parallelism := range []int{1, 2, 16} {
		t.Run(fmt.Sprintf("parallelism=%d", parallelism), func(t *testing.T) {
			tl, err := Build(context.Background(), revisionsFor(texts...), Options{Parallelism: parallelism})
			require.NoError(t, err)
			require.Equal(t, len(texts), tl.Len())

			for i := range texts {
				frame, err := tl.Frame(i)
				require.NoError(t, err)
				require.Equal(t, fmt.Sprintf("steps/%02d.js", i), frame.Path)

				prev := ""
				if i > 0 {
					prev = texts[i-1]
				}
				want := Annotate(frame.Path, Diff(prev, texts[i]), nil)
				require.Equal(t, want, frame)
			}
		})
	}
}

func TestBuild_FirstFrameIsAllAdded(t *testing.T) {
	tl, err := Build(context.Background(), revisionsFor("a\nb\n", "a\n"), Options{})
	require.NoError(t, err)

	first, err := tl.Frame(0)
	require.NoError(t, err)
	require.Len(t, first.Lines, 2)
	for _, ln := range first.Lines {
		require.Equal(t, StateAdded, ln.State)
	}
}

func TestBuild_EmptyTimeline(t *testing.T) {
	tl, err := Build(context.Background(), nil, Options{})
	require.NoError(t, err)
	require.Equal(t, 0, tl.Len())

	_, err = tl.Frame(0)
	require.ErrorIs(t, err, ErrFrameOutOfRange)
}

func TestBuild_UnavailableRevision(t *testing.T) {
	revs := revisionsFor("a\n", "b\n")
	cause := errors.New("connection reset")
	revs = append(revs, Unavailable("steps/02.js", cause))

	tl, err := Build(context.Background(), revs, Options{})
	require.Nil(t, tl)
	require.ErrorIs(t, err, ErrRevisionUnavailable)
	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "steps/02.js")

	var zero Revision
	_, err = Build(context.Background(), []Revision{zero}, Options{})
	require.ErrorIs(t, err, ErrRevisionUnavailable)
}

func TestBuild_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	tl, err := Build(ctx, revisionsFor("a\n", "b\n", "c\n"), Options{})
	require.Nil(t, tl)
	require.ErrorIs(t, err, context.Canceled)
}

func TestTimeline_FrameOutOfRange(t *testing.T) {
	tl, err := Build(context.Background(), revisionsFor("a\n"), Options{})
	require.NoError(t, err)

	_, err = tl.Frame(-1)
	require.ErrorIs(t, err, ErrFrameOutOfRange)
	_, err = tl.Frame(1)
	require.ErrorIs(t, err, ErrFrameOutOfRange)
}

func TestTimeline_RevisionsIsACopy(t *testing.T) {
	revs := revisionsFor("a\n", "b\n")
	tl, err := Build(context.Background(), revs, Options{})
	require.NoError(t, err)

	revs[0] = NewRevision("mutated.js", "zzz")
	got := tl.Revisions()
	require.Equal(t, "steps/00.js", got[0].Path)

	got[1] = NewRevision("mutated.js", "zzz")
	require.Equal(t, "steps/01.js", tl.Revisions()[1].Path)
}

func TestRevision(t *testing.T) {
	r := NewRevision("a.js", "")
	content, ok := r.Content()
	require.True(t, ok)
	require.Equal(t, "", content)
	require.NoError(t, r.Err())

	u := Unavailable("b.js", nil)
	require.False(t, u.Available())
	require.ErrorIs(t, u.Err(), ErrRevisionUnavailable)
	require.Contains(t, u.Err().Error(), "b.js")
}

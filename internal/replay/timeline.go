package replay

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/codalotl/codestepper/internal/classify"
	"github.com/codalotl/codestepper/internal/langtable"
	"github.com/codalotl/codestepper/internal/simplelogger"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// ErrFrameOutOfRange is returned by Timeline.Frame for an index outside [0, Len()).
var ErrFrameOutOfRange = errors.New("replay: frame index out of range")

// Options configure Build. The zero value uses classify.DefaultPolicy, the built-in language tables, and GOMAXPROCS workers.
type Options struct {
	Policy      *classify.Policy  // nil: classify.DefaultPolicy
	Tables      *langtable.Tables // nil: langtable.Default()
	Parallelism int               // <= 0: runtime.GOMAXPROCS(0)
}

func (o Options) policy() classify.Policy {
	if o.Policy == nil {
		return classify.DefaultPolicy
	}
	return *o.Policy
}

func (o Options) parallelism() int {
	if o.Parallelism <= 0 {
		return runtime.GOMAXPROCS(0)
	}
	return o.Parallelism
}

// Timeline is a fully computed replay: one Frame per revision. Frame 0 is the first revision against empty content (all lines added); frame i is revision i
// against revision i-1. A Timeline is immutable.
type Timeline struct {
	ID uuid.UUID // Distinguishes timelines built from different loads, ex: in logs.

	revisions []Revision
	frames    []Frame
}

// Build computes every frame of the timeline for revisions, in order. Transitions are independent and are computed concurrently, at most opts.Parallelism at a
// time; the frames are assembled in revision order regardless of completion order.
//
// Every revision must be available; otherwise Build returns an error wrapping ErrRevisionUnavailable before doing any work. If ctx is canceled before Build
// finishes, it returns ctx's error and no partial timeline.
func Build(ctx context.Context, revisions []Revision, opts Options) (*Timeline, error) {
	for _, r := range revisions {
		if err := r.Err(); err != nil {
			return nil, fmt.Errorf("replay: build timeline: %w", err)
		}
	}

	start := time.Now()
	revs := append([]Revision(nil), revisions...)
	frames := make([]Frame, len(revs))
	policy := opts.policy()
	tables := opts.Tables
	if tables == nil {
		tables = langtable.Default()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.parallelism())
	for i := range revs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			var oldText string
			if i > 0 {
				oldText, _ = revs[i-1].Content()
			}
			newText, _ := revs[i].Content()
			frames[i] = Annotate(revs[i].Path, DiffWith(oldText, newText, policy), tables)
			if simplelogger.Enabled() {
				added, modified := frames[i].counts()
				simplelogger.Log("replay: frame %d %s: %d lines, %d added, %d modified", i, revs[i].Path, len(frames[i].Lines), added, modified)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tl := &Timeline{ID: uuid.New(), revisions: revs, frames: frames}
	simplelogger.Log("replay: built timeline %s: %d frames in %s", tl.ID, len(frames), time.Since(start))
	return tl, nil
}

// Len returns the number of frames (equal to the number of revisions).
func (t *Timeline) Len() int {
	return len(t.frames)
}

// Frame returns frame i. The returned Frame shares its slices with the timeline; callers must not modify them.
func (t *Timeline) Frame(i int) (Frame, error) {
	if i < 0 || i >= len(t.frames) {
		return Frame{}, fmt.Errorf("%w: %d (timeline has %d frames)", ErrFrameOutOfRange, i, len(t.frames))
	}
	return t.frames[i], nil
}

// Revisions returns a copy of the revisions the timeline was built from.
func (t *Timeline) Revisions() []Revision {
	return append([]Revision(nil), t.revisions...)
}

package replay

import (
	"context"
	"errors"
	"sync"

	"github.com/codalotl/codestepper/internal/simplelogger"
)

// ErrSuperseded is returned by Session.Load when a newer Load started before this one finished.
var ErrSuperseded = errors.New("replay: load superseded by a newer load")

// Session holds the timeline for the currently selected revision set. Selecting a new set (calling Load again) cancels any build still running for the old set
// and guarantees its result is never published, so frames of different revision sets are never mixed.
type Session struct {
	opts Options

	mu      sync.Mutex
	gen     uint64
	cancel  context.CancelFunc
	current *Timeline

	build func(ctx context.Context, revisions []Revision, opts Options) (*Timeline, error)
}

// NewSession returns an empty Session whose builds use opts.
func NewSession(opts Options) *Session {
	return &Session{opts: opts, build: Build}
}

// Load builds a timeline for revisions and publishes it as Current. It cancels the in-flight Load, if any, which then returns ErrSuperseded.
//
// While Load runs, and after it fails, Current returns nil: the previous timeline belongs to a different revision set.
func (s *Session) Load(ctx context.Context, revisions []Revision) (*Timeline, error) {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.gen++
	gen := s.gen
	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.current = nil
	s.mu.Unlock()
	defer cancel()

	tl, err := s.build(ctx, revisions, s.opts)

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		simplelogger.Log("replay: load %d superseded by load %d", gen, s.gen)
		return nil, ErrSuperseded
	}
	s.cancel = nil
	if err != nil {
		return nil, err
	}
	s.current = tl
	return tl, nil
}

// Current returns the timeline of the latest successful Load, or nil if there is none or a newer Load is running or failed.
func (s *Session) Current() *Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Close cancels any in-flight Load, which then returns ErrSuperseded.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	s.gen++
}

// Package watch reloads a replay.Session whenever the files of a directory change.
package watch

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/codalotl/codestepper/internal/replay"
	"github.com/codalotl/codestepper/internal/simplelogger"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is how long the directory must be quiet before a burst of changes triggers a reload.
const DefaultDebounce = 250 * time.Millisecond

// LoadFunc fetches the current revision set, ex: revsource.Directory bound to a URL.
type LoadFunc func(ctx context.Context) ([]replay.Revision, error)

// ReloadFunc receives the outcome of each reload that was not superseded. tl is nil iff err is non-nil.
type ReloadFunc func(tl *replay.Timeline, err error)

// Watcher watches one directory (not recursively) and reloads a Session after changes settle.
type Watcher struct {
	dir      string
	debounce time.Duration
	load     LoadFunc
	session  *replay.Session
	fsw      *fsnotify.Watcher
}

// New starts watching dir. Events that arrive before Run are not lost. If debounce <= 0, DefaultDebounce is used.
func New(dir string, debounce time.Duration, session *replay.Session, load LoadFunc) (*Watcher, error) {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("watch: %w", err)
	}
	if err := fsw.Add(dir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("watch: add %s: %w", dir, err)
	}
	return &Watcher{dir: dir, debounce: debounce, load: load, session: session, fsw: fsw}, nil
}

// Run loads once immediately, then again each time the directory has been quiet for the debounce period after a change. A reload started while another is still
// building supersedes it; only non-superseded outcomes reach onReload.
//
// Run blocks until ctx is done or the watcher is closed, and waits for in-flight reloads before returning.
func (w *Watcher) Run(ctx context.Context, onReload ReloadFunc) error {
	var wg sync.WaitGroup
	defer wg.Wait()

	reload := func() {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.reload(ctx, onReload)
		}()
	}
	reload()

	timer := time.NewTimer(w.debounce)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op == fsnotify.Chmod {
				continue
			}
			simplelogger.Log("watch: %s %s", event.Op, event.Name)
			timer.Reset(w.debounce)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			simplelogger.Log("watch: %s: %v", w.dir, err)

		case <-timer.C:
			reload()
		}
	}
}

func (w *Watcher) reload(ctx context.Context, onReload ReloadFunc) {
	start := time.Now()
	revisions, err := w.load(ctx)
	if err != nil {
		if ctx.Err() == nil {
			onReload(nil, fmt.Errorf("watch: load %s: %w", w.dir, err))
		}
		return
	}

	tl, err := w.session.Load(ctx, revisions)
	if errors.Is(err, replay.ErrSuperseded) || ctx.Err() != nil {
		return
	}
	if err == nil {
		simplelogger.Log("watch: reloaded %s: %d frames in %s", w.dir, tl.Len(), time.Since(start))
	}
	onReload(tl, err)
}

// Close stops watching. A running Run returns.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}

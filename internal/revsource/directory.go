// Package revsource loads replay revisions from storage. It owns everything the diff engine deliberately knows nothing about: listing, filtering out non-text
// files, fetching concurrently, and turning fetch failures into explicit unavailable revisions.
package revsource

import (
	"context"
	"fmt"
	"path"
	"runtime"
	"sort"
	"strings"

	"github.com/codalotl/codestepper/internal/replay"
	"github.com/codalotl/codestepper/internal/simplelogger"
	"github.com/viant/afs"
	"golang.org/x/sync/errgroup"
)

// DefaultIgnoredExtensions are extensions (without the dot, lowercase) of files that are never treated as revisions.
var DefaultIgnoredExtensions = []string{"png", "jpg", "jpeg", "gif", "pdf"}

// DirectoryOptions configure Directory.
type DirectoryOptions struct {
	// IgnoredExtensions overrides DefaultIgnoredExtensions when non-nil. Matching is case-insensitive; a leading dot is allowed.
	IgnoredExtensions []string

	// Concurrency bounds simultaneous downloads. <= 0: runtime.GOMAXPROCS(0).
	Concurrency int
}

// Directory loads the immediate files of the directory at dirURL (any URL fs understands, ex: "file:///tmp/steps", "mem://localhost/steps") as revisions sorted
// by path. Subdirectories are not descended into. Revision paths are file names relative to dirURL.
//
// Contents are downloaded concurrently. A file whose download fails becomes a replay.Unavailable revision rather than failing the whole load; an error is returned
// only if the directory cannot be listed or ctx is canceled.
func Directory(ctx context.Context, fs afs.Service, dirURL string, opts DirectoryOptions) ([]replay.Revision, error) {
	objects, err := fs.List(ctx, dirURL)
	if err != nil {
		return nil, fmt.Errorf("revsource: list %s: %w", dirURL, err)
	}

	ignored := ignoredSet(opts.IgnoredExtensions)

	type entry struct {
		name string
		url  string
	}
	var entries []entry
	for _, obj := range objects {
		if obj.IsDir() {
			continue
		}
		if ignored[extension(obj.Name())] {
			continue
		}
		entries = append(entries, entry{name: obj.Name(), url: obj.URL()})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	revisions := make([]replay.Revision, len(entries))
	g, gctx := errgroup.WithContext(ctx)
	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g.SetLimit(limit)
	for i, e := range entries {
		g.Go(func() error {
			data, err := fs.DownloadWithURL(gctx, e.url)
			if err != nil {
				simplelogger.Log("revsource: download %s: %v", e.url, err)
				revisions[i] = replay.Unavailable(e.name, err)
				return nil
			}
			revisions[i] = replay.NewRevision(e.name, string(data))
			return nil
		})
	}
	_ = g.Wait() // Workers never fail; download errors are recorded per revision.

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return revisions, nil
}

func ignoredSet(exts []string) map[string]bool {
	if exts == nil {
		exts = DefaultIgnoredExtensions
	}
	set := make(map[string]bool, len(exts))
	for _, ext := range exts {
		set[strings.ToLower(strings.TrimPrefix(ext, "."))] = true
	}
	return set
}

func extension(name string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(name), "."))
}

package replay

import (
	"errors"
	"fmt"
)

// ErrRevisionUnavailable is returned (wrapped) when a revision's content was never fetched or failed to fetch.
var ErrRevisionUnavailable = errors.New("replay: revision content unavailable")

// Revision is one full-text snapshot of a file. The zero value is an unavailable revision with an empty path.
//
// Unavailable content is kept distinct from empty content: an empty revision diffs as "everything was deleted", an unavailable one cannot be diffed at all.
type Revision struct {
	Path string

	content   string
	available bool
	err       error
}

// NewRevision returns an available revision with the given content. content may be empty.
func NewRevision(path, content string) Revision {
	return Revision{Path: path, content: content, available: true}
}

// Unavailable returns a revision marker for path whose content could not be obtained. cause may be nil.
func Unavailable(path string, cause error) Revision {
	return Revision{Path: path, err: cause}
}

// Content returns the revision's content and whether it is available.
func (r Revision) Content() (string, bool) {
	return r.content, r.available
}

// Available reports whether the revision has content.
func (r Revision) Available() bool {
	return r.available
}

// Err returns nil for available revisions. Otherwise it returns an error wrapping ErrRevisionUnavailable and, if set, the cause passed to Unavailable.
func (r Revision) Err() error {
	if r.available {
		return nil
	}
	if r.err != nil {
		return fmt.Errorf("%w: %s: %w", ErrRevisionUnavailable, r.Path, r.err)
	}
	return fmt.Errorf("%w: %s", ErrRevisionUnavailable, r.Path)
}

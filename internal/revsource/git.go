package revsource

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/codalotl/codestepper/internal/replay"
	git "github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing/object"
)

// ErrBinary marks a git revision whose content is binary.
var ErrBinary = errors.New("revsource: binary content")

// GitHistory loads every committed revision of file (a slash-separated path relative to the repository root) from the git repository at repoDir, oldest first.
// Revision paths have the form "<file>@<short hash>".
//
// A commit that deletes file yields an empty revision. Binary content and unreadable blobs yield unavailable revisions.
func GitHistory(ctx context.Context, repoDir, file string) ([]replay.Revision, error) {
	repo, err := git.PlainOpen(repoDir)
	if err != nil {
		return nil, fmt.Errorf("revsource: open repository %s: %w", repoDir, err)
	}

	iter, err := repo.Log(&git.LogOptions{FileName: &file, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("revsource: log %s: %w", file, err)
	}
	defer iter.Close()

	var commits []*object.Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		commits = append(commits, c)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("revsource: walk history of %s: %w", file, err)
	}
	slices.Reverse(commits)

	revisions := make([]replay.Revision, 0, len(commits))
	for _, c := range commits {
		revisions = append(revisions, revisionAt(c, file))
	}
	return revisions, nil
}

func revisionAt(c *object.Commit, file string) replay.Revision {
	name := fmt.Sprintf("%s@%s", file, c.Hash.String()[:7])

	f, err := c.File(file)
	if errors.Is(err, object.ErrFileNotFound) {
		return replay.NewRevision(name, "")
	}
	if err != nil {
		return replay.Unavailable(name, err)
	}

	binary, err := f.IsBinary()
	if err != nil {
		return replay.Unavailable(name, err)
	}
	if binary {
		return replay.Unavailable(name, ErrBinary)
	}

	content, err := f.Contents()
	if err != nil {
		return replay.Unavailable(name, err)
	}
	return replay.NewRevision(name, content)
}

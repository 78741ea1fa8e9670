package revsource

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/afs"
)

// memDir uploads files into a fresh in-memory directory and returns its URL.
func memDir(t *testing.T, fs afs.Service, files map[string]string) string {
	t.Helper()
	dir := "mem://localhost/revsource-" + uuid.NewString()
	for name, content := range files {
		err := fs.Upload(context.Background(), dir+"/"+name, 0o644, strings.NewReader(content))
		require.NoError(t, err)
	}
	return dir
}

func TestDirectory_SortedAndFiltered(t *testing.T) {
	fs := afs.New()
	dir := memDir(t, fs, map[string]string{
		"02.js":       "c\n",
		"00.js":       "a\n",
		"01.js":       "b\n",
		"shot.PNG":    "binary",
		"diagram.pdf": "binary",
		"nested/x.js": "skipped",
	})

	revs, err := Directory(context.Background(), fs, dir, DirectoryOptions{})
	require.NoError(t, err)
	require.Len(t, revs, 3)

	var paths, contents []string
	for _, r := range revs {
		content, ok := r.Content()
		require.True(t, ok)
		paths = append(paths, r.Path)
		contents = append(contents, content)
	}
	assert.Equal(t, []string{"00.js", "01.js", "02.js"}, paths)
	assert.Equal(t, []string{"a\n", "b\n", "c\n"}, contents)
}

func TestDirectory_CustomIgnoredExtensions(t *testing.T) {
	fs := afs.New()
	dir := memDir(t, fs, map[string]string{
		"00.js":  "a\n",
		"01.txt": "notes\n",
		"02.png": "now allowed",
	})

	revs, err := Directory(context.Background(), fs, dir, DirectoryOptions{IgnoredExtensions: []string{".TXT"}, Concurrency: 1})
	require.NoError(t, err)
	require.Len(t, revs, 2)
	assert.Equal(t, "00.js", revs[0].Path)
	assert.Equal(t, "02.png", revs[1].Path)
}

func TestDirectory_CanceledContext(t *testing.T) {
	fs := afs.New()
	dir := memDir(t, fs, map[string]string{"00.js": "a\n"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := Directory(ctx, fs, dir, DirectoryOptions{})
	require.Error(t, err)
}

func TestExtension(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"a.js", "js"},
		{"A.JPG", "jpg"},
		{"Makefile", ""},
		{"archive.tar.gz", "gz"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, extension(tt.name), tt.name)
	}
}

package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemeta/pkg/adapters/fs"
	"github.com/aretw0/notemeta/pkg/core"
)

// setupTree creates files (relative path -> content) under a temp dir.
func setupTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	return root
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	return out
}

func TestOS_ReadWrite(t *testing.T) {
	store := fs.NewOS(fs.Config{})
	path := filepath.Join(t.TempDir(), "note.md")

	require.NoError(t, store.WriteFile(path, "status:: done\n"))
	got, err := store.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "status:: done\n", got)

	_, err = store.ReadFile(filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOS_Stat(t *testing.T) {
	root := setupTree(t, map[string]string{"a.md": ""})
	store := fs.NewOS(fs.Config{})

	isDir, err := store.Stat(root)
	require.NoError(t, err)
	assert.True(t, isDir)

	isDir, err = store.Stat(filepath.Join(root, "a.md"))
	require.NoError(t, err)
	assert.False(t, isDir)

	_, err = store.Stat(filepath.Join(root, "nope"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestOS_ListFiles(t *testing.T) {
	root := setupTree(t, map[string]string{
		"a.md":           "",
		"b.txt":          "",
		"sub/c.md":       "",
		"sub/deep/d.md":  "",
		".git/config.md": "",
	})
	store := fs.NewOS(fs.Config{})

	tests := []struct {
		name      string
		recursive bool
		include   string
		want      []string
	}{
		{"Flat", false, "", []string{"a.md", "b.txt"}},
		{"Recursive", true, "", []string{"a.md", "b.txt", "sub/c.md", "sub/deep/d.md"}},
		{"Recursive Markdown", true, "**/*.md", []string{"a.md", "sub/c.md", "sub/deep/d.md"}},
		{"Top Level Glob", true, "*.md", []string{"a.md"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			files, err := store.ListFiles(root, tt.recursive, tt.include)
			require.NoError(t, err)
			assert.Equal(t, tt.want, relPaths(t, root, files))
		})
	}

	t.Run("Invalid Pattern", func(t *testing.T) {
		_, err := store.ListFiles(root, true, "[")
		assert.Error(t, err)
	})

	t.Run("Missing Directory", func(t *testing.T) {
		_, err := store.ListFiles(filepath.Join(root, "missing"), true, "")
		assert.ErrorIs(t, err, core.ErrNotFound)
	})
}

func TestMatchInclude(t *testing.T) {
	ok, err := fs.MatchInclude("", "/root", "/root/anything")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fs.MatchInclude("notes/**/*.md", "/root", "/root/notes/2024/x.md")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = fs.MatchInclude("notes/**/*.md", "/root", "/root/other/x.md")
	require.NoError(t, err)
	assert.False(t, ok)
}

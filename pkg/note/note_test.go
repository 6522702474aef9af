package note_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/note"
)

func writeNote(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, filepath.FromSlash(name))
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad(t *testing.T) {
	path := writeNote(t, t.TempDir(), "a.md", "---\ntitle: A\n---\nstatus:: done\n")

	n, err := note.Load(path)
	require.NoError(t, err)
	assert.Equal(t, path, n.Path)
	assert.Equal(t, "a.md", n.Name())
	assert.True(t, n.Metadata.Has("title", []string{"A"}, core.Frontmatter))
	assert.True(t, n.Metadata.Has("status", []string{"done"}, core.Inline))

	_, err = note.Load(filepath.Join(t.TempDir(), "missing.md"))
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestNote_UpdateContent(t *testing.T) {
	t.Run("In Memory Only", func(t *testing.T) {
		path := writeNote(t, t.TempDir(), "a.md", "a:: 1\nb:: 2\nhello\n")
		n, err := note.Load(path)
		require.NoError(t, err)

		require.NoError(t, n.Metadata.Add("c", []string{"3"}, core.Inline))
		require.NoError(t, n.UpdateContent(core.PlacementBottom, false, false))
		assert.Equal(t, "hello\na:: 1\nb:: 2\nc:: 3\n", n.Content)

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "a:: 1\nb:: 2\nhello\n", string(onDisk))

		// Metadata is bound to the new content.
		e, ok := n.Metadata.Get("c", core.Inline)
		require.True(t, ok)
		assert.False(t, e.Origin.IsNew())
	})

	t.Run("Write", func(t *testing.T) {
		path := writeNote(t, t.TempDir(), "a.md", "hello\n")
		n, err := note.Load(path)
		require.NoError(t, err)

		require.NoError(t, n.Metadata.Set("title", []string{"Hi"}, core.Frontmatter))
		require.NoError(t, n.UpdateContent(core.PlacementBottom, true, true))

		onDisk, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "---\ntitle: Hi\n---\nhello\n", string(onDisk))
	})

	t.Run("Write Failure Propagates", func(t *testing.T) {
		n := note.New(filepath.Join(t.TempDir(), "missing", "a.md"), "x\n")
		require.NoError(t, n.Metadata.Add("k", []string{"v"}, core.Inline))
		err := n.UpdateContent(core.PlacementBottom, true, true)
		assert.Error(t, err)
	})

	t.Run("Stale Metadata", func(t *testing.T) {
		n := note.New("a.md", "k:: old\n")
		require.NoError(t, n.Substitute("old", "new", false))
		err := n.UpdateContent(core.PlacementBottom, true, false)
		assert.ErrorIs(t, err, core.ErrSourceMismatch)

		n.Reparse()
		require.NoError(t, n.UpdateContent(core.PlacementBottom, true, false))
		assert.True(t, n.Metadata.Has("k", []string{"new"}, core.Inline))
	})
}

func TestNote_WriteTo(t *testing.T) {
	dir := t.TempDir()
	n := note.New(filepath.Join(dir, "a.md"), "content\n")

	other := filepath.Join(dir, "b.md")
	require.NoError(t, n.WriteTo(other))
	assert.Equal(t, filepath.Join(dir, "a.md"), n.Path)

	third := filepath.Join(dir, "c.md")
	require.NoError(t, n.SaveAs(third))
	assert.Equal(t, third, n.Path)

	for _, p := range []string{other, third} {
		got, err := os.ReadFile(p)
		require.NoError(t, err)
		assert.Equal(t, "content\n", string(got))
	}
}

func TestNote_Substitute(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		pattern     string
		replacement string
		isRegex     bool
		want        string
		wantErr     bool
	}{
		{"Literal", "a.b a.b", "a.b", "x", false, "x x", false},
		{"Literal Is Not Regex", "axb", "a.b", "x", false, "axb", false},
		{"Regex", "axb ayb", "a(.)b", "<$1>", true, "<x> <y>", false},
		{"Invalid Regex", "x", "(", "", true, "x", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := note.New("n.md", tt.content)
			err := n.Substitute(tt.pattern, tt.replacement, tt.isRegex)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want, n.Content)
		})
	}

	t.Run("Metadata Untouched", func(t *testing.T) {
		n := note.New("n.md", "status:: todo\n")
		require.NoError(t, n.Substitute("todo", "done", false))
		assert.True(t, n.Metadata.Has("status", []string{"todo"}, core.Inline))
	})
}

// Package note couples note files with their metadata and offers bulk
// loading and filtering of note collections.
package note

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/aretw0/notemeta/pkg/adapters/fs"
	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/metadata"
)

// Note is a Markdown note: its path, its text and the metadata parsed from
// that text.
//
// Metadata is a view of Content at the last parse. Mutating it does not touch
// Content until UpdateContent is called, and changing Content by other means
// requires Reparse before metadata reflects it again.
type Note struct {
	Path     string
	Content  string
	Metadata *metadata.NoteMetadata

	// rel is Path relative to the directory it was loaded from.
	rel   string
	store fs.Store
}

// New creates a note from in-memory content. Nothing is read from disk.
func New(path, content string, opts ...Option) *Note {
	o := applyOptions(opts)
	return newNote(path, filepath.Base(path), content, o.store)
}

func newNote(path, rel, content string, store fs.Store) *Note {
	return &Note{
		Path:     path,
		Content:  content,
		Metadata: metadata.Parse(content),
		rel:      filepath.ToSlash(rel),
		store:    store,
	}
}

// Load reads the note at path.
func Load(path string, opts ...Option) (*Note, error) {
	o := applyOptions(opts)
	return load(o.store, path, filepath.Base(path))
}

func load(store fs.Store, path, rel string) (*Note, error) {
	content, err := store.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return newNote(path, rel, content, store), nil
}

// Name returns the file name of the note.
func (n *Note) Name() string {
	return filepath.Base(n.Path)
}

// RelPath returns the slash separated path of the note relative to the
// directory it was loaded from (its file name for notes loaded directly).
func (n *Note) RelPath() string {
	return n.rel
}

// Reparse rebuilds Metadata from the current Content, discarding any
// metadata changes not yet rendered.
func (n *Note) Reparse() {
	n.Metadata = metadata.Parse(n.Content)
}

// UpdateContent renders the metadata into Content and optionally writes the
// note to disk. Afterwards Metadata is re-parsed from the new Content.
//
// It fails with core.ErrSourceMismatch when Content changed since the last
// parse (see Reparse).
func (n *Note) UpdateContent(placement core.Placement, inplace, write bool) error {
	out, err := n.Metadata.Render(n.Content, placement, inplace)
	if err != nil {
		return fmt.Errorf("failed to update %s: %w", n.Path, err)
	}
	n.Content = out
	n.Reparse()
	if write {
		return n.Write()
	}
	return nil
}

// Write persists Content to Path.
func (n *Note) Write() error {
	return n.WriteTo(n.Path)
}

// WriteTo persists Content to path, leaving Path unchanged.
func (n *Note) WriteTo(path string) error {
	if err := n.store.WriteFile(path, n.Content); err != nil {
		return fmt.Errorf("failed to write note: %w", err)
	}
	return nil
}

// SaveAs persists Content to path and makes path the note's Path.
func (n *Note) SaveAs(path string) error {
	if err := n.WriteTo(path); err != nil {
		return err
	}
	n.Path = path
	return nil
}

// Substitute replaces every match of pattern in Content. The pattern is a
// literal unless isRegex is set, in which case replacement may use $1 style
// references. Metadata is not updated; call Reparse if needed.
func (n *Note) Substitute(pattern, replacement string, isRegex bool) error {
	if !isRegex {
		n.Content = strings.ReplaceAll(n.Content, pattern, replacement)
		return nil
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}
	n.Content = re.ReplaceAllString(n.Content, replacement)
	return nil
}

func (n *Note) String() string {
	return fmt.Sprintf("Note (path: %q)", n.Path)
}

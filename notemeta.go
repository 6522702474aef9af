package notemeta

import (
	"log/slog"

	"github.com/aretw0/notemeta/pkg/adapters/fs"
	"github.com/aretw0/notemeta/pkg/core"
	"github.com/aretw0/notemeta/pkg/metadata"
	"github.com/aretw0/notemeta/pkg/note"
)

// --- Types ---

// MetadataType selects frontmatter, inline or both kinds of metadata.
type MetadataType = core.MetadataType

// Metadata types.
const (
	Frontmatter = core.Frontmatter
	Inline      = core.Inline
	Any         = core.Any
)

// Placement chooses where the consolidated inline block is written.
type Placement = core.Placement

// Placements.
const (
	Top    = core.PlacementTop
	Bottom = core.PlacementBottom
)

// Entry is a read-only view of one metadata key.
type Entry = metadata.Entry

// NoteMetadata is the parsed metadata of one note.
type NoteMetadata = metadata.NoteMetadata

// Note is a note file together with its metadata.
type Note = note.Note

// Collection is an ordered group of notes.
type Collection = note.Collection

// Filter narrows a Collection.
type Filter = note.Filter

// MetaQuery is one metadata condition of a Filter.
type MetaQuery = note.MetaQuery

// --- Configuration ---

// Option defines a functional option for loading notes.
type Option = note.Option

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return note.WithLogger(logger)
}

// WithRecursive controls whether directories are walked recursively.
func WithRecursive(recursive bool) Option {
	return note.WithRecursive(recursive)
}

// WithInclude restricts directory loading to files matching a doublestar glob.
func WithInclude(pattern string) Option {
	return note.WithInclude(pattern)
}

// WithStore allows injecting a custom filesystem collaborator.
func WithStore(store fs.Store) Option {
	return note.WithStore(store)
}

// --- Factory ---

// Parse extracts the metadata of a note text.
func Parse(text string) *NoteMetadata {
	return metadata.Parse(text)
}

// LoadNote reads a single note.
func LoadNote(path string, opts ...Option) (*Note, error) {
	return note.Load(path, opts...)
}

// Open loads a collection from files and directories.
func Open(paths []string, opts ...Option) (*Collection, error) {
	return note.Open(paths, opts...)
}

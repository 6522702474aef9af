package note

import (
	"errors"
	"fmt"
	"path/filepath"
	"slices"

	"github.com/aretw0/notemeta/pkg/adapters/fs"
	"github.com/aretw0/notemeta/pkg/core"
)

// Collection is an ordered group of notes loaded from files and directories.
// Notes keep their load order; the same file loaded twice appears twice.
type Collection struct {
	notes []*Note
	roots []string
	opts  *options
}

// NewCollection creates an empty collection.
func NewCollection(opts ...Option) *Collection {
	return &Collection{opts: applyOptions(opts)}
}

// Open creates a collection and loads paths into it.
func Open(paths []string, opts ...Option) (*Collection, error) {
	c := NewCollection(opts...)
	if err := c.Add(paths...); err != nil {
		return nil, err
	}
	return c, nil
}

// Add loads notes from paths. A directory contributes every file below it
// (see WithRecursive and WithInclude). If any path does not exist the whole
// call fails and nothing is added; the same holds for read errors.
func (c *Collection) Add(paths ...string) error {
	dirs := make(map[string]bool, len(paths))
	for _, p := range paths {
		isDir, err := c.opts.store.Stat(p)
		if err != nil {
			return fmt.Errorf("cannot add notes: %w", err)
		}
		dirs[p] = isDir
	}

	var loaded []*Note
	for _, p := range paths {
		if !dirs[p] {
			n, err := load(c.opts.store, p, filepath.Base(p))
			if err != nil {
				return err
			}
			loaded = append(loaded, n)
			continue
		}

		files, err := c.opts.store.ListFiles(p, c.opts.recursive, c.opts.include)
		if err != nil {
			return fmt.Errorf("cannot add notes: %w", err)
		}
		for _, f := range files {
			rel, err := filepath.Rel(p, f)
			if err != nil {
				rel = filepath.Base(f)
			}
			n, err := load(c.opts.store, f, rel)
			if err != nil {
				return err
			}
			loaded = append(loaded, n)
		}
	}

	for _, p := range paths {
		if !slices.Contains(c.roots, p) {
			c.roots = append(c.roots, p)
		}
	}
	for _, n := range loaded {
		c.opts.logger.Debug("note loaded", "path", n.Path, "entries", n.Metadata.Len(core.Any))
	}
	c.notes = append(c.notes, loaded...)
	return nil
}

// Notes returns the notes in load order. The slice is a copy; the notes are not.
func (c *Collection) Notes() []*Note {
	return slices.Clone(c.notes)
}

// Len returns the number of notes.
func (c *Collection) Len() int {
	return len(c.notes)
}

// Paths returns the note paths in order.
func (c *Collection) Paths() []string {
	out := make([]string, len(c.notes))
	for i, n := range c.notes {
		out[i] = n.Path
	}
	return out
}

// Roots returns the paths passed to Add.
func (c *Collection) Roots() []string {
	return slices.Clone(c.roots)
}

// UpdateAll calls UpdateContent on every note and stops at the first error.
func (c *Collection) UpdateAll(placement core.Placement, inplace, write bool) error {
	for _, n := range c.notes {
		if err := n.UpdateContent(placement, inplace, write); err != nil {
			return err
		}
	}
	return nil
}

// NewWatcher returns a watcher over the collection roots. Roots, Include and
// Logger default to the collection's when cfg leaves them unset. Recursive
// always follows the collection (see WithRecursive), so the watcher sees
// exactly the directories Add walked.
func (c *Collection) NewWatcher(cfg fs.WatchConfig) *fs.Watcher {
	if cfg.Roots == nil {
		cfg.Roots = c.Roots()
	}
	if cfg.Include == "" {
		cfg.Include = c.opts.include
	}
	if cfg.Logger == nil {
		cfg.Logger = c.opts.logger
	}
	cfg.Recursive = c.opts.recursive
	return fs.NewWatcher(cfg)
}

// Refresh applies a change event to the collection: notes at the event path
// are reloaded on MODIFY and a note is appended on CREATE when the path is
// not loaded yet. It reports the affected notes. DELETE events leave the
// in-memory notes untouched.
func (c *Collection) Refresh(e core.Event) ([]*Note, error) {
	var affected []*Note
	switch e.Type {
	case core.EventModify, core.EventCreate:
		for i, n := range c.notes {
			if n.Path != e.Path {
				continue
			}
			fresh, err := load(c.opts.store, n.Path, n.rel)
			if err != nil {
				return nil, err
			}
			c.notes[i] = fresh
			affected = append(affected, fresh)
		}
		if len(affected) > 0 || e.Type != core.EventCreate {
			return affected, nil
		}
		rel, ok := c.relToRoot(e.Path)
		if !ok {
			return nil, nil
		}
		n, err := load(c.opts.store, e.Path, rel)
		if err != nil {
			if errors.Is(err, core.ErrNotFound) {
				return nil, nil
			}
			return nil, err
		}
		c.notes = append(c.notes, n)
		return []*Note{n}, nil
	}
	c.opts.logger.Debug("refresh ignored", "event", e.String())
	return nil, nil
}

// relToRoot finds the directory root containing path and returns path
// relative to it, honoring the include pattern.
func (c *Collection) relToRoot(path string) (string, bool) {
	for _, root := range c.roots {
		isDir, err := c.opts.store.Stat(root)
		if err != nil || !isDir {
			continue
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || !filepath.IsLocal(rel) {
			continue
		}
		if !c.opts.recursive && filepath.Dir(rel) != "." {
			continue
		}
		if ok, err := fs.MatchInclude(c.opts.include, root, path); err == nil && ok {
			return rel, true
		}
	}
	return "", false
}

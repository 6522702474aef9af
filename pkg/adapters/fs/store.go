// Package fs is the filesystem collaborator of notemeta: whole-file reads and
// writes, directory enumeration and change notification.
package fs

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/notemeta/pkg/core"
)

// Store abstracts the file operations notes need.
type Store interface {
	// ReadFile returns the whole content of path.
	ReadFile(path string) (string, error)
	// WriteFile replaces the content of path.
	WriteFile(path, content string) error
	// Stat reports whether path exists and is a directory.
	Stat(path string) (isDir bool, err error)
	// ListFiles enumerates the regular files under dir whose slash separated
	// path relative to dir matches include ("" matches everything).
	ListFiles(dir string, recursive bool, include string) ([]string, error)
}

// Config holds the configuration for the OS store.
type Config struct {
	Logger *slog.Logger
	// SkipDirs are directory names never descended into (e.g. ".git").
	SkipDirs []string
}

// OS implements Store on the local filesystem.
type OS struct {
	config Config
}

// NewOS creates a Store backed by the local filesystem.
func NewOS(config Config) *OS {
	if config.Logger == nil {
		config.Logger = slog.New(slog.DiscardHandler)
	}
	if config.SkipDirs == nil {
		config.SkipDirs = []string{".git"}
	}
	return &OS{config: config}
}

// ReadFile implements Store.
func (s *OS) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", wrapPathErr("read", path, err)
	}
	return string(data), nil
}

// WriteFile implements Store. Writes go through a temp file and a rename.
func (s *OS) WriteFile(path, content string) error {
	if err := writeFileAtomic(path, content); err != nil {
		return err
	}
	s.config.Logger.Debug("note written", "path", path, "bytes", len(content))
	return nil
}

// Stat implements Store.
func (s *OS) Stat(path string) (bool, error) {
	info, err := os.Stat(path)
	if err != nil {
		return false, wrapPathErr("stat", path, err)
	}
	return info.IsDir(), nil
}

// ListFiles implements Store.
func (s *OS) ListFiles(dir string, recursive bool, include string) ([]string, error) {
	if include != "" && !doublestar.ValidatePattern(include) {
		return nil, fmt.Errorf("invalid include pattern %q", include)
	}

	var files []string
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if path == dir {
				return nil
			}
			if !recursive || s.skipDir(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		ok, err := MatchInclude(include, dir, path)
		if err != nil {
			return err
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, wrapPathErr("list", dir, err)
	}

	s.config.Logger.Debug("directory listed", "dir", dir, "recursive", recursive, "files", len(files))
	return files, nil
}

func (s *OS) skipDir(name string) bool {
	for _, skip := range s.config.SkipDirs {
		if name == skip {
			return true
		}
	}
	return false
}

// MatchInclude reports whether path, taken relative to root, matches the
// doublestar pattern include. An empty pattern matches everything.
func MatchInclude(include, root, path string) (bool, error) {
	if include == "" {
		return true, nil
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false, err
	}
	return doublestar.Match(include, filepath.ToSlash(rel))
}

func wrapPathErr(op, path string, err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s %s: %w: %w", op, path, core.ErrNotFound, err)
	}
	return fmt.Errorf("%s %s: %w", op, path, err)
}

var _ Store = (*OS)(nil)

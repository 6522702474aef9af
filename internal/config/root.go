package config

import (
	"errors"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Find when no config file applies.
var ErrNotFound = errors.New("config file not found")

// Find looks upwards from startDir for FileName. The search stops at the
// first directory holding a .git entry, so a config outside the current
// repository is never picked up.
func Find(startDir string) (string, error) {
	abs, err := filepath.Abs(startDir)
	if err != nil {
		return "", err
	}

	dir := abs
	for {
		if hasFile(dir, FileName) {
			return filepath.Join(dir, FileName), nil
		}
		if hasFile(dir, ".git") {
			break
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached filesystem root
			break
		}
		dir = parent
	}

	return "", ErrNotFound
}

func hasFile(dir, name string) bool {
	_, err := os.Stat(filepath.Join(dir, name))
	return err == nil
}

package fs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/natefinch/atomic"
)

// DefaultFilePerm is applied to notes written to a path that did not exist.
const DefaultFilePerm os.FileMode = 0644

// writeFileAtomic replaces filename with content through a temp file and a
// rename, so readers never observe a partially written note. The mode of an
// existing file is kept.
func writeFileAtomic(filename, content string) error {
	perm := DefaultFilePerm
	if info, err := os.Stat(filename); err == nil {
		if info.IsDir() {
			return fmt.Errorf("cannot write note over directory %s", filename)
		}
		perm = info.Mode().Perm()
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat %s: %w", filename, err)
	}

	if err := atomic.WriteFile(filename, strings.NewReader(content)); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	if err := os.Chmod(filename, perm); err != nil {
		return fmt.Errorf("failed to chmod %s: %w", filename, err)
	}
	return nil
}

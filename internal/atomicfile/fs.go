// Package atomicfile provides the filesystem capability used to persist
// generated files: idempotent directory creation and crash-safe file writes
// using temporary files and atomic renames.
package atomicfile

import (
	"fmt"
	"os"
	"path/filepath"
)

// FS writes to the host filesystem. The zero value is ready to use.
type FS struct{}

// MkdirAll creates path and any missing ancestors. Existing directories are
// not an error.
func (FS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

// WriteFile replaces path with data via [Write].
func (FS) WriteFile(path string, data []byte, perm os.FileMode) error {
	return Write(path, data, perm)
}

// Write replaces the contents of path with data. It creates a temp file next
// to path, writes and syncs data, applies perm, and renames the temp file over
// path. A reader of path sees either the old content or the new content,
// never a partial write. On failure the temp file is removed and path is left
// as it was.
func Write(path string, data []byte, perm os.FileMode) error {
	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := f.Write(data); err != nil {
		f.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fmt.Errorf("sync temp file: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	// CreateTemp always uses 0600.
	if err := os.Chmod(tmpName, perm); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename temp file: %w", err)
	}
	committed = true
	return nil
}

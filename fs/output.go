// Package fs provides file-based output for enrichment results.
package fs

import (
	"errors"
	"os"
	"path/filepath"
)

// OutputFile writes a document with atomic replace semantics.
// Data is saved next to the destination and renamed into place on Commit,
// so readers never observe a partially written file.
type OutputFile struct {
	path string
}

// NewOutputFile creates an OutputFile for path.
func NewOutputFile(path string) *OutputFile {
	return &OutputFile{path: path}
}

func (f *OutputFile) tempPath() string {
	return f.path + ".tmp"
}

// Save writes data to the temporary file, creating parent directories.
func (f *OutputFile) Save(data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return err
	}
	return os.WriteFile(f.tempPath(), data, 0644)
}

// Commit moves the saved data to the destination, replacing any existing file.
func (f *OutputFile) Commit() error {
	return os.Rename(f.tempPath(), f.path)
}

// Abort discards saved data. The destination is left untouched.
func (f *OutputFile) Abort() error {
	if err := os.Remove(f.tempPath()); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// WriteFile saves data to path atomically.
func WriteFile(path string, data []byte) error {
	out := NewOutputFile(path)
	if err := out.Save(data); err != nil {
		_ = out.Abort()
		return err
	}
	return out.Commit()
}

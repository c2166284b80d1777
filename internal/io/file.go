// Package ioutils provides the filesystem adapter used by the download
// pipeline.
//
// All operations take model.Path values so the core never handles raw
// platform strings.
package ioutils

import (
	"errors"
	"io"
	"os"

	"github.com/handiism/poddl/internal/model"
)

// FileSystem implements the filesystem operations needed to publish episodes:
// existence checks, directory management, file creation and atomic moves.
//
// The zero value is ready to use.
type FileSystem struct{}

// NewFileSystem creates a new FileSystem.
func NewFileSystem() *FileSystem {
	return &FileSystem{}
}

// Exists reports whether anything exists at path.
func (fs *FileSystem) Exists(path model.Path) bool {
	_, err := os.Stat(path.String())
	return err == nil
}

// EnsureDir creates a directory and all parent directories if they don't exist.
//
// Directories are created with mode 0755 (rwxr-xr-x). An existing regular
// file at path is an error.
func (fs *FileSystem) EnsureDir(path model.Path) error {
	if err := os.MkdirAll(path.String(), 0755); err != nil {
		return err
	}
	info, err := os.Stat(path.String())
	if err != nil {
		return err
	}
	if !info.IsDir() {
		return &os.PathError{Op: "mkdir", Path: path.String(), Err: errors.New("not a directory")}
	}
	return nil
}

// Create creates or truncates the file at path for writing.
func (fs *FileSystem) Create(path model.Path) (io.WriteCloser, error) {
	return os.Create(path.String())
}

// Move renames src to dst. Both paths must be on the same filesystem so the
// rename is atomic: dst either does not exist or holds the complete file.
func (fs *FileSystem) Move(src, dst model.Path) error {
	return os.Rename(src.String(), dst.String())
}

// WriteFile writes data to a file, creating it if necessary.
//
// The file is created with mode 0644. If the file already exists,
// it is truncated before writing.
func (fs *FileSystem) WriteFile(path model.Path, data []byte) error {
	return os.WriteFile(path.String(), data, 0644)
}

// Remove deletes a single file. A missing file is not an error.
func (fs *FileSystem) Remove(path model.Path) error {
	if err := os.Remove(path.String()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// IsEmpty reports whether dir is an existing directory without entries.
func (fs *FileSystem) IsEmpty(dir model.Path) bool {
	f, err := os.Open(dir.String())
	if err != nil {
		return false
	}
	defer f.Close()

	_, err = f.Readdirnames(1)
	return errors.Is(err, io.EOF)
}

// DeleteDir removes an empty directory.
func (fs *FileSystem) DeleteDir(dir model.Path) error {
	return os.Remove(dir.String())
}

package jsonstore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend holds the single serialized document.
type Backend interface {
	// Read returns the stored blob, or an error wrapping ErrNotExist.
	Read(ctx context.Context) ([]byte, error)
	// Write replaces the stored blob.
	Write(ctx context.Context, b []byte) error
	// Location describes where the blob lives, for logs.
	Location() string
}

// Backuper is implemented by backends that can keep a rejected blob
// next to the document before it is overwritten.
type Backuper interface {
	Backup(ctx context.Context, b []byte) (string, error)
}

// CorruptSuffix is appended to the location of a kept corrupt blob.
const CorruptSuffix = ".corrupt"

// DataFileName is the document's file name inside the data directory.
const DataFileName = "folders.json"

// DefaultPath returns the per-installation location of the document.
func DefaultPath() (string, error) {
	dir := os.Getenv("XDG_DATA_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home: %w", err)
		}
		dir = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dir, "claro", DataFileName), nil
}

// FileBackend stores the document as one JSON file.
// No locking; a single local user is assumed.
type FileBackend struct {
	Path string
}

// NewFileBackend returns a backend rooted at path.
func NewFileBackend(path string) *FileBackend {
	return &FileBackend{Path: path}
}

func (f *FileBackend) Location() string { return f.Path }

func (f *FileBackend) Read(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotExist, f.Path)
		}
		return nil, fmt.Errorf("read file: %w", err)
	}
	return b, nil
}

// Write replaces the file through a temp file and rename so readers see
// either the old or the new document.
func (f *FileBackend) Write(ctx context.Context, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return writeAtomic(f.Path, b)
}

// Backup copies b to the document path with CorruptSuffix appended.
func (f *FileBackend) Backup(ctx context.Context, b []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path := f.Path + CorruptSuffix
	return path, writeAtomic(path, b)
}

func writeAtomic(path string, b []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".folders-*.json")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Local stores blobs as files under a single private directory.
type Local struct {
	dir string
}

var _ BlobStore = (*Local)(nil)

// NewLocal creates the upload directory if needed and returns the adapter.
func NewLocal(dir string) (*Local, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Local{dir: dir}, nil
}

// Put writes the blob to disk. The request blocks until the file is written.
func (l *Local) Put(ctx context.Context, name string, r io.Reader) error {
	path, err := l.path(name)
	if err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}

	if _, err := io.Copy(f, r); err != nil {
		f.Close()
		os.Remove(path)
		return fmt.Errorf("write file: %w", err)
	}

	if err := f.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// Open returns the stored blob for reading.
func (l *Local) Open(ctx context.Context, name string) (io.ReadCloser, error) {
	path, err := l.path(name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("open file: %w", err)
	}
	return f, nil
}

// path resolves a blob name inside the upload directory, rejecting anything
// that would escape it.
func (l *Local) path(name string) (string, error) {
	if name == "" || name == "." || name == ".." || name != filepath.Base(name) {
		return "", fmt.Errorf("invalid blob name %q", name)
	}
	return filepath.Join(l.dir, name), nil
}

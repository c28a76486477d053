// Package storage provides the blob-store port for uploaded selfie images.
// Local (filesystem) and S3 adapters are interchangeable behind BlobStore.
package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned when a stored object does not exist.
var ErrNotFound = errors.New("object not found")

// BlobStore stores and retrieves uploaded image blobs by name.
// Names are the composed selfie filenames; callers never pass raw user input.
type BlobStore interface {
	Put(ctx context.Context, name string, r io.Reader) error
	Open(ctx context.Context, name string) (io.ReadCloser, error)
}

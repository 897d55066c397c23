// Package blobstore abstracts where serialized model artifacts live.
//
// A fitted model's centroid table is the sole artifact that must survive
// between fit and a later predict; blobstore gives it a home in memory,
// on the local file system, or in object storage (see the s3 and minio
// subpackages), behind one small interface.
package blobstore

import (
	"context"
	"io"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// BlobStore is an abstraction for storing and retrieving immutable
// model artifacts.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Create creates a new writable blob. The write becomes visible on
	// Close.
	Create(ctx context.Context, name string) (WritableBlob, error)
	// Put writes a blob in one call.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error
	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a model artifact.
type Blob interface {
	// ReadAt reads len(p) bytes starting at offset off.
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	// Size returns the size of the blob in bytes.
	Size() int64
	io.Closer
}

// WritableBlob is a write handle. The blob becomes visible atomically on
// Close; an abandoned handle leaves the store unchanged where the
// backend permits.
type WritableBlob interface {
	io.WriteCloser
	// Sync flushes buffered data to stable storage where the backend
	// supports it.
	Sync() error
}

// ReadAll reads the entire blob. Model artifacts are small (a K x 2
// centroid table plus labels), so whole-blob reads are the common path.
func ReadAll(ctx context.Context, b Blob) ([]byte, error) {
	data := make([]byte, b.Size())
	n, err := b.ReadAt(ctx, data, 0)
	if err != nil && err != io.EOF {
		return nil, err
	}
	return data[:n], nil
}

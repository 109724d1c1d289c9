// Package blobstore provides storage abstraction for immutable event
// snapshot blobs.
//
// Snapshots are small and always consumed in full, so the interface
// works with whole-blob streams rather than random access. All
// implementations must be safe for concurrent use.
//
// # Built-in Implementations
//
//   - LocalStore: local filesystem with atomic writes
//   - MemoryStore: in-memory store for testing
//   - s3.Store: Amazon S3
//   - minio.Store: MinIO and other S3-compatible endpoints
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

// BlobStore is an abstraction for accessing immutable snapshot blobs.
type BlobStore interface {
	// Open opens a blob for reading. The caller must close the reader.
	Open(ctx context.Context, name string) (io.ReadCloser, error)

	// Put writes a blob atomically. An existing blob with the same name
	// is replaced.
	Put(ctx context.Context, name string, data []byte) error

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix, sorted.
	List(ctx context.Context, prefix string) ([]string, error)
}

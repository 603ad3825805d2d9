package blobstore

import (
	"context"
	"os"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies
// `errors.Is(err, ErrNotFound)`. The default maps to `os.ErrNotExist`.
var ErrNotFound = os.ErrNotExist

// Store is an abstraction for reading and writing whole snapshot blobs.
//
// Snapshots are small and immutable, so the interface works on complete byte
// slices; there is no partial-read surface.
type Store interface {
	// Put writes a blob atomically, replacing any existing blob of that name.
	Put(ctx context.Context, name string, data []byte) error

	// Get reads a whole blob.
	Get(ctx context.Context, name string) ([]byte, error)

	// Delete removes a blob. Deleting a missing blob is not an error.
	Delete(ctx context.Context, name string) error

	// List returns the names of all blobs with the given prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

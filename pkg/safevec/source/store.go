// Package source stores named resource definitions as opaque blobs.
//
// Definitions are typically YAML documents describing models that an
// application resolves by name at run time through a rescache.Cache.
package source

import (
	"context"
	"errors"
	"time"
)

// Store persists resource definitions by name.
// Implementations must be safe for concurrent use.
type Store interface {
	// Put stores data under name, replacing any previous definition and
	// bumping its version. Returns the stored definition's metadata.
	Put(ctx context.Context, name string, data []byte) (Info, error)

	// Get returns the definition stored under name.
	// Returns ErrNotFound if there is none.
	Get(ctx context.Context, name string) ([]byte, error)

	// List returns metadata for every definition, ordered by name.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a definition. Deleting a missing name is not an error.
	Delete(ctx context.Context, name string) error

	// Close releases resources. Further calls return ErrStoreClosed.
	Close() error
}

// Info describes a stored definition without loading it.
type Info struct {
	Name    string
	Version int
	Updated time.Time
	Size    int64
}

// Sentinel errors for store operations.
var (
	// ErrNotFound indicates no definition exists under the name.
	ErrNotFound = errors.New("resource not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("source store closed")

	// ErrInvalidName indicates an empty resource name.
	ErrInvalidName = errors.New("invalid resource name")
)

func validName(name string) error {
	if name == "" {
		return ErrInvalidName
	}
	return nil
}

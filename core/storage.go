package core

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Storage.Get when no value exists for a key.
var ErrNotFound = errors.New("key not found")

// Storage defines the durable key/value contract used to persist state that
// must survive a process restart (the serialized session). Implementations
// should be thread-safe.
type Storage interface {
	// Get returns the stored bytes or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores (or overwrites) the value for key. It returns once the
	// value is durable.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

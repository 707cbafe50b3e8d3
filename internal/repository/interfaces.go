package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a requested key has never been written.
var ErrNotFound = errors.New("not found")

// UpdateFunc receives the current value for a key (found is false when the
// key is absent) and returns the value to store. Returning an error aborts
// the update and leaves the stored value untouched.
type UpdateFunc func(current []byte, found bool) ([]byte, error)

// StateRepo persists small client-side documents under string keys.
// Values are opaque bytes; callers own the encoding.
type StateRepo interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// Update performs an atomic read-modify-write of a single key.
	Update(ctx context.Context, key string, fn UpdateFunc) error
	Delete(ctx context.Context, key string) error
}

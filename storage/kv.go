package storage

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Load when a key has never been saved.
// Callers treat it as "start from empty", not as a failure.
var ErrNotFound = errors.New("storage: key not found")

// KV is the durable key-value contract the stores persist through.
// Values are opaque blobs; the stores put JSON arrays in them.
type KV interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}

package providers

import (
	"context"
)

// KeyValueStore is the durable scoped storage shared by the hospital cache
// and the auth session. Persistence is best effort with no transactional
// guarantees; two clients sharing the same store race last-write-wins.
type KeyValueStore interface {
	// Get retrieves the value stored under key. Returns an error when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes the value stored under key.
	Remove(ctx context.Context, key string) error
}

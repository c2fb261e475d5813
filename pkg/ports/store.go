package ports

import "context"

// KeyValueStore defines the interface for durable string key-value persistence.
// Writes go through immediately; there is no buffering.
type KeyValueStore interface {
	// Get retrieves the value stored under key.
	// Returns domain.ErrKeyNotFound if the key does not exist.
	Get(ctx context.Context, key string) (string, error)

	// Set persists value under key, replacing any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists the stored keys in no particular order.
	Keys(ctx context.Context) ([]string, error)
}

package cache

import (
	"context"
	"errors"
	"time"
)

// ErrKeyNotFound is returned by Get when the key is absent or expired.
var ErrKeyNotFound = errors.New("key not found")

// Cache is a byte oriented key/value store with expiry.
type Cache interface {
	// Get returns the value stored at key, or an error wrapping
	// ErrKeyNotFound when there is none.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value at key. A ttl of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Ping checks that the backing store is reachable.
	Ping(ctx context.Context) error

	// Close releases the connection.
	Close() error
}

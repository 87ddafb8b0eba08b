package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheUnavailable is returned when the backing store cannot be reached.
var ErrCacheUnavailable = errors.New("cache unavailable")

// Cache is the contract of the cache layer so Redis can be swapped for an
// in-memory implementation in tests.
type Cache interface {
	// Get loads key and unmarshals it into dest.
	// found = false on a cache miss; dest is left untouched.
	Get(ctx context.Context, key string, dest interface{}) (bool, error)

	// Set marshals value and stores it under key with a TTL.
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error

	// Delete removes keys; missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error

	// Ping checks the connection
	Ping(ctx context.Context) error
}

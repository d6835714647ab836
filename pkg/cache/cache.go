// Package cache provides byte-oriented caching for the pipeline, the CLI,
// and the API server.
//
// Three implementations share the [Cache] interface: [FileCache] stores
// entries under a directory for CLI usage, [RedisCache] backs the server,
// and [NullCache] disables caching. Keys are generated by a [Keyer] so that
// every entry point hashes the same inputs to the same key.
package cache

import (
	"context"
	"time"
)

// TTLs applied by the pipeline to the two classes of cached data.
const (
	// TTLSource bounds how long a fetched remote input is reused before
	// the origin is contacted again.
	TTLSource = 24 * time.Hour

	// TTLRender applies to rendered artifacts. Artifacts are a pure
	// function of the graph hash and render options, so the TTL only
	// bounds disk usage, not staleness.
	TTLRender = 7 * 24 * time.Hour
)

// Cache stores opaque byte values under string keys with expiration.
//
// Implementations must treat a missing key as a miss, not an error, and
// must be safe for concurrent use.
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was present
	// and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with a time-to-live. A ttl of 0 means the entry
	// never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases resources held by the cache.
	Close() error
}

// Package cache provides response caching for the bugscope CLI.
//
// The [Cache] interface abstracts the storage backend:
//   - [FileCache]: file-based storage under the user's cache directory
//   - [NullCache]: no-op storage for tests or --no-cache runs
//
// Cache keys are arbitrary strings; backends hash them with SHA-256 before
// touching the filesystem, so long or special-character keys are safe.
// Entries carry a TTL based on write time. A TTL of 0 never expires.
//
// The package also provides [RetryWithBackoff] for transient HTTP failures;
// wrap errors with [Retryable] to mark them for retry.
package cache

import (
	"context"
	"time"
)

// TTL values for the cached pipeline stages.
const (
	// TTLQuery is how long fetched bug lists stay fresh. Triage data moves
	// quickly, so this is short.
	TTLQuery = 15 * time.Minute
)

// Cache is the storage interface for cached responses.
type Cache interface {
	// Get retrieves a value. The second return value reports whether the
	// key was present and fresh.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with the given TTL. A TTL of 0 never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the backend.
	Close() error
}

// QueryKey builds the cache key for a Bugzilla search query.
// Identical queries against the same base URL share an entry.
func QueryKey(baseURL, query string) string {
	return hashKey("query", baseURL, query)
}

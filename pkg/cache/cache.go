// Package cache stores serialized dependency graphs keyed by lock-file
// content and target, so repeated queries against an unchanged lock file
// skip parsing and graph construction.
//
// Three backends are provided: [FileCache] for CLI usage, [RedisCache]
// for server deployments, and [NullCache] to disable caching. All
// backends fire the observability cache hooks on hit, miss, and set.
package cache

import (
	"context"
	"time"
)

// DefaultTTL is the default lifetime of a cached graph.
const DefaultTTL = 24 * time.Hour

// keyType reported to the observability hooks.
const keyTypeGraph = "graph"

// Cache is the interface all cache backends implement.
// A miss is reported via the bool return, not an error.
type Cache interface {
	// Get retrieves a value. The second return is false on a miss.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A non-positive ttl stores it without expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// GraphKey derives the cache key for a built graph from the lock-file
// content hash and the target it was built for. Two lock files with the
// same content share keys; any edit invalidates them.
func GraphKey(lockHash, framework, runtime string) string {
	return hashKey("graph", lockHash, framework, runtime)
}

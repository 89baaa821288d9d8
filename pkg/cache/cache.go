// Package cache stores computed layouts and rendered artifacts between runs.
//
// Layout is cheap for small backlogs but rendering PNG or Graphviz output is
// not, and the interactive viewer and watch mode recompute on every save. The
// pipeline therefore keys each stage on a content hash of its input and asks
// a [Cache] before doing the work.
//
// # Backends
//
//   - [FileCache]: one JSON file per entry under the user cache directory
//   - [RedisCache]: shared cache for teams and CI, via go-redis
//   - [NullCache]: disables caching (--no-cache)
//
// Cache failures are never fatal to a render: callers treat a failed Get as
// a miss and log a failed Set.
//
// # Keys
//
// A [Keyer] builds keys from content hashes and the options that affect the
// output. [ScopedKeyer] prefixes every key so several projects can share one
// Redis instance.
package cache

import (
	"context"
	"time"
)

// Default TTLs per entry kind.
const (
	TTLLayout   = 7 * 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is a byte-oriented key/value store with expiry.
type Cache interface {
	// Get returns the value and true on a hit. A miss is not an error.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data. A ttl of zero means no expiry.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

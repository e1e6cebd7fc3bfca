// Package cache provides the search-result cache in front of the provider
// fan-out. Entries are stored as a versioned envelope so that a schema change
// invalidates stale entries instead of surfacing them in the wrong shape.
package cache

import (
	"context"
	"time"

	"careergenie-jobs/pkg/models"
)

// SchemaVersion is bumped whenever the cached job shape changes. Envelopes
// written under a different version are treated as misses.
const SchemaVersion = 1

// envelope is the serialized cache entry.
type envelope struct {
	SchemaVersion int          `json:"schema_version"`
	CachedAt      time.Time    `json:"cached_at"`
	Jobs          []models.Job `json:"jobs"`
}

// Stats describes the state of the cache backend.
type Stats struct {
	Enabled bool          `json:"enabled"`
	Backend string        `json:"backend"`
	Keys    int64         `json:"keys"`
	Bytes   int64         `json:"bytes"`
	TTL     time.Duration `json:"ttl"`
	Error   string        `json:"error,omitempty"`
}

// Store is the cache contract the aggregator speaks. Implementations never
// propagate backend failures to callers: a failed read is a miss, a failed
// write is dropped, and the degradation is logged by the store itself.
type Store interface {
	// Get returns the cached jobs for a canonical key, or ok=false on a
	// miss, a schema mismatch, or any backend failure.
	Get(ctx context.Context, key string) (jobs []models.Job, ok bool)

	// Set writes jobs under the canonical key with the configured TTL.
	Set(ctx context.Context, key string, jobs []models.Job)

	// Clear removes every entry under the configured key prefix and
	// returns the number of deleted keys.
	Clear(ctx context.Context) (int64, error)

	// Stats reports backend state for the admin surface.
	Stats(ctx context.Context) Stats

	// Close releases the backend connection.
	Close() error
}

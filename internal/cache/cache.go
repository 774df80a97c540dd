// Package cache provides the short-lived read cache fronting the store.
package cache

import (
	"context"
	"time"
)

// Cache is a minimal key/value capability with per-entry TTLs. Values are raw
// bytes; callers own serialization.
//
// Callers must treat a Get error as a miss and a Set/Delete error as
// best-effort: the store is always the authority.
type Cache interface {
	// Get returns the value for key, reporting whether it was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores value under key for at most ttl.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}

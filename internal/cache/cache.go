// Package cache provides the small in-process caches the dashboard keeps so
// tab switches and re-mounts don't refetch unchanged server data.
package cache

import (
	"context"
	"time"
)

// Cache is a generic read-through cache.
type Cache[T any] interface {
	// Get retrieves a value from the cache.
	Get(key string) (T, bool)

	// Set stores a value in the cache.
	Set(key string, data T)

	// Delete removes a key from the cache.
	Delete(key string)

	// Size returns the current number of items in the cache.
	Size() int
}

// Cleaner is implemented by caches that can drop expired entries.
type Cleaner interface {
	CleanExpired() int
}

// RunCleanup periodically sweeps expired entries from the given caches until
// the context is cancelled. Run it in its own goroutine.
func RunCleanup(ctx context.Context, interval time.Duration, caches ...Cleaner) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			for _, c := range caches {
				c.CleanExpired()
			}
		}
	}
}

package cache

import (
	"context"
	"time"
)

// Cache is the derived-index port shared by the feed cache, the
// compatibility-score cache and the likes-queue accelerator. Every value
// stored through it is recomputable from the authoritative stores, so
// callers treat any error as a miss and fall back to recomputation.
type Cache interface {
	// Get returns (value, true, nil) on a hit and ("", false, nil) on a miss.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	// DeletePattern removes every key matching a glob pattern, e.g. "feed:abc:*".
	DeletePattern(ctx context.Context, pattern string) error

	// PushFront prepends to a list, trims it to cap entries and refreshes
	// its TTL.
	PushFront(ctx context.Context, key, value string, capacity int64, ttl time.Duration) error
	// Range reads list entries [start, stop] inclusive, front first.
	Range(ctx context.Context, key string, start, stop int64) ([]string, error)

	Close() error
}

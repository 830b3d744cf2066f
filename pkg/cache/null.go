package cache

import (
	"context"
	"time"
)

// NullCache stands in when caching is off (--no-cache, cache.disabled, or a
// cache directory that cannot be created). Every lookup misses, so the
// pipeline always rebuilds the network and re-renders its artifacts.
type NullCache struct{}

var _ Cache = NullCache{}

// NewNullCache returns a cache that keeps nothing.
func NewNullCache() Cache { return NullCache{} }

// Get reports a miss for every key.
func (NullCache) Get(context.Context, string) ([]byte, bool, error) { return nil, false, nil }

// Set discards data.
func (NullCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete has nothing to remove.
func (NullCache) Delete(context.Context, string) error { return nil }

// Close has nothing to release.
func (NullCache) Close() error { return nil }

// Package cache stores built networks and rendered artifacts between runs.
//
// # Overview
//
// A [Cache] is a byte store with per-entry expiry. [FileCache] keeps entries
// as files under a directory for CLI use; [NullCache] stores nothing and is
// used when caching is disabled.
//
// Keys come from a [Keyer]. A network key hashes the content of the input
// files together with every option that changes the build, so editing a
// city file or changing the start city never returns a stale network. An
// artifact key derives from the network key and the output format.
//
// # Usage
//
//	c, _ := cache.NewFileCache(dir)
//	k := cache.NewScopedKeyer(cache.NewDefaultKeyer(), "v1:")
//	key := k.NetworkKey(inputHash, cache.NetworkKeyOpts{Start: "Denver"})
//	data, hit, err := c.Get(ctx, key)
package cache

import (
	"context"
	"time"
)

// Cache is a byte store with optional expiry.
type Cache interface {
	// Get returns the stored value and true, or false on a miss. Expired and
	// unreadable entries are misses.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set stores data under key. A ttl of zero never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases resources held by the cache.
	Close() error
}

// NetworkKeyOpts are the build options that change a network.
type NetworkKeyOpts struct {
	Start     string  `json:"start"`
	MaxDegree int     `json:"max_degree"`
	Limit     int     `json:"limit,omitempty"`
	DropUnset bool    `json:"drop_unset,omitempty"`
	Bridge    bool    `json:"bridge,omitempty"`
	Spanning  bool    `json:"spanning,omitempty"`
	Expand    float64 `json:"expand,omitempty"`
	Tag       string  `json:"tag,omitempty"`
}

// ArtifactKeyOpts are the rendering options that change an artifact.
type ArtifactKeyOpts struct {
	Format  string `json:"format"`
	Labels  bool   `json:"labels,omitempty"`
	Weights bool   `json:"weights,omitempty"`
}

// Keyer derives cache keys.
type Keyer interface {
	// NetworkKey returns the key for a network built from inputs hashing to
	// inputHash.
	NetworkKey(inputHash string, opts NetworkKeyOpts) string
	// ArtifactKey returns the key for an artifact rendered from the network
	// stored under networkKey.
	ArtifactKey(networkKey string, opts ArtifactKeyOpts) string
}

// DefaultKeyer produces "network:<sha256>" and "artifact:<sha256>" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer creates a DefaultKeyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// NetworkKey implements Keyer.
func (DefaultKeyer) NetworkKey(inputHash string, opts NetworkKeyOpts) string {
	return hashKey("network", inputHash, opts)
}

// ArtifactKey implements Keyer.
func (DefaultKeyer) ArtifactKey(networkKey string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", networkKey, opts)
}

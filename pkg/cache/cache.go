// Package cache provides file-backed caching for fetched skill feeds and
// rendered board artifacts, plus a null implementation for disabling
// caching entirely.
package cache

import (
	"context"
	"time"
)

// Cache stores opaque byte payloads under string keys with an optional TTL.
//
// Get reports whether the key was found; expired or corrupt entries are
// treated as misses. Implementations are safe for concurrent use unless
// documented otherwise.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// SnapshotKeyOpts captures the options that make a rendered board snapshot
// unique. Two renders with identical label pools but different options must
// not share a cache entry.
type SnapshotKeyOpts struct {
	Format string
	Width  int
	Lines  int
	Seed   int64
}

// Keyer generates cache keys for the things skillboard caches.
type Keyer interface {
	// FeedKey keys a raw feed response by its source (URL or file path).
	FeedKey(source string) string

	// SnapshotKey keys a rendered board artifact by the hash of the label
	// pool it was packed from plus the render options.
	SnapshotKey(poolHash string, opts SnapshotKeyOpts) string
}

// DefaultKeyer is the standard key scheme.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// FeedKey generates a key for a fetched feed payload.
func (k *DefaultKeyer) FeedKey(source string) string {
	return "feed:" + Hash([]byte(source))
}

// SnapshotKey generates a key for a rendered board artifact.
func (k *DefaultKeyer) SnapshotKey(poolHash string, opts SnapshotKeyOpts) string {
	return hashKey("snapshot", poolHash, opts)
}

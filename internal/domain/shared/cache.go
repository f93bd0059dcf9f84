package shared

import (
	"context"
	"time"
)

// ArtifactCache stores rendered documents keyed by snapshot and document kind
type ArtifactCache interface {
	// Get returns the cached bytes and true when a live entry exists
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores data under key for the given TTL
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Close closes the cache and releases resources
	Close() error
}

// ArtifactCacheConfig holds configuration for artifact caching
type ArtifactCacheConfig struct {
	// TTL is how long a rendered artifact stays valid
	// Default: 1 hour
	TTL time.Duration

	// Enabled determines whether rendered artifacts are cached
	// Default: true
	Enabled bool
}

// DefaultArtifactCacheConfig returns the default artifact cache configuration
func DefaultArtifactCacheConfig() ArtifactCacheConfig {
	return ArtifactCacheConfig{
		TTL:     time.Hour,
		Enabled: true,
	}
}

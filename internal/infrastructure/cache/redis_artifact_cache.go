package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces document keys in a shared Redis
const DefaultKeyPrefix = "ledger:doc:"

// RedisConfig holds Redis connection configuration
type RedisConfig struct {
	Host      string
	Port      int
	Password  string
	DB        int
	KeyPrefix string
}

// RedisArtifactCache stores compiled documents in Redis so several server
// instances serve the same bytes for the same snapshot.
type RedisArtifactCache struct {
	client    *redis.Client
	keyPrefix string
}

// NewRedisArtifactCache connects to Redis and verifies the connection
func NewRedisArtifactCache(cfg RedisConfig) (*RedisArtifactCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisArtifactCacheWithClient(client, cfg.KeyPrefix), nil
}

// NewRedisArtifactCacheWithClient wraps an existing client
func NewRedisArtifactCacheWithClient(client *redis.Client, keyPrefix string) *RedisArtifactCache {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &RedisArtifactCache{
		client:    client,
		keyPrefix: keyPrefix,
	}
}

// Key returns the Redis key used for a cache key
func (c *RedisArtifactCache) Key(key string) string {
	return c.keyPrefix + key
}

// Get returns the cached bytes; a missing key is a miss, not an error
func (c *RedisArtifactCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := c.client.Get(ctx, c.Key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached document: %w", err)
	}
	return data, true, nil
}

// Set stores data with ttl; a non-positive ttl stores without expiry
func (c *RedisArtifactCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	if ttl < 0 {
		ttl = 0
	}
	if err := c.client.Set(ctx, c.Key(key), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache document: %w", err)
	}
	return nil
}

// Close closes the Redis client
func (c *RedisArtifactCache) Close() error {
	return c.client.Close()
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisArtifactCache) GetClient() *redis.Client {
	return c.client
}

var _ shared.ArtifactCache = (*RedisArtifactCache)(nil)

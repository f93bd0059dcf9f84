package cache

import (
	"fmt"

	"github.com/Viny2030/Pasivos-corrientes/internal/domain/shared"
	"github.com/Viny2030/Pasivos-corrientes/internal/infrastructure/config"
	"go.uber.org/zap"
)

// ArtifactCacheFactory creates document caches based on configuration
type ArtifactCacheFactory struct {
	cacheConfig           config.CacheConfig
	redisConfig           config.RedisConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// FactoryOption is a functional option for configuring the factory
type FactoryOption func(*ArtifactCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) FactoryOption {
	return func(f *ArtifactCacheFactory) {
		f.logger = logger
	}
}

// WithInMemoryFallback controls whether to fall back to the in-memory cache
// when Redis is unavailable. Default is true.
func WithInMemoryFallback(allow bool) FactoryOption {
	return func(f *ArtifactCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewArtifactCacheFactory creates a new factory
func NewArtifactCacheFactory(cacheCfg config.CacheConfig, redisCfg config.RedisConfig, opts ...FactoryOption) *ArtifactCacheFactory {
	f := &ArtifactCacheFactory{
		cacheConfig:           cacheCfg,
		redisConfig:           redisCfg,
		logger:                zap.NewNop(),
		allowInMemoryFallback: true,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// CreateRedisCache creates a Redis-backed cache
func (f *ArtifactCacheFactory) CreateRedisCache() (shared.ArtifactCache, error) {
	c, err := NewRedisArtifactCache(RedisConfig{
		Host:      f.redisConfig.Host,
		Port:      f.redisConfig.Port,
		Password:  f.redisConfig.Password,
		DB:        f.redisConfig.DB,
		KeyPrefix: f.redisConfig.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis document cache: %w", err)
	}
	return c, nil
}

// CreateInMemoryCache creates a process-local cache
func (f *ArtifactCacheFactory) CreateInMemoryCache() shared.ArtifactCache {
	return NewInMemoryArtifactCache(0)
}

// CreateCache returns nil when caching is disabled. With the redis backend
// it falls back to memory if Redis is unreachable and fallback is allowed.
func (f *ArtifactCacheFactory) CreateCache() (shared.ArtifactCache, error) {
	if !f.cacheConfig.Enabled {
		f.logger.Info("document cache disabled")
		return nil, nil
	}
	if f.cacheConfig.Backend != config.CacheBackendRedis {
		f.logger.Info("using in-memory document cache")
		return f.CreateInMemoryCache(), nil
	}

	c, err := f.CreateRedisCache()
	if err == nil {
		f.logger.Info("using Redis document cache", zap.String("addr", f.redisConfig.Addr()))
		return c, nil
	}
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for document cache but unavailable: %w", err)
	}

	f.logger.Warn("Redis unavailable, falling back to in-memory document cache. "+
		"Instances will compile and hold their own copies.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}

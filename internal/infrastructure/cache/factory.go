package cache

import (
	"fmt"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/bizledger/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// TemplateCacheFactory creates template caches based on configuration
type TemplateCacheFactory struct {
	redisConfig           config.RedisConfig
	cacheConfig           printing.CacheConfig
	logger                *zap.Logger
	allowInMemoryFallback bool
}

// TemplateCacheFactoryOption is a functional option for configuring the factory
type TemplateCacheFactoryOption func(*TemplateCacheFactory)

// WithLogger sets the logger for the factory
func WithLogger(logger *zap.Logger) TemplateCacheFactoryOption {
	return func(f *TemplateCacheFactory) {
		f.logger = logger
	}
}

// WithFactoryCacheConfig sets the cache configuration used for created caches
func WithFactoryCacheConfig(cfg printing.CacheConfig) TemplateCacheFactoryOption {
	return func(f *TemplateCacheFactory) {
		f.cacheConfig = cfg
	}
}

// WithInMemoryFallback controls whether to fall back to in-memory cache when Redis is unavailable
// Default is true (allow fallback)
func WithInMemoryFallback(allow bool) TemplateCacheFactoryOption {
	return func(f *TemplateCacheFactory) {
		f.allowInMemoryFallback = allow
	}
}

// NewTemplateCacheFactory creates a new factory
func NewTemplateCacheFactory(cfg config.RedisConfig, opts ...TemplateCacheFactoryOption) *TemplateCacheFactory {
	f := &TemplateCacheFactory{
		redisConfig:           cfg,
		cacheConfig:           printing.DefaultCacheConfig(),
		logger:                zap.NewNop(),
		allowInMemoryFallback: true, // Default to allowing fallback
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// CreateTieredCache creates a tiered (L1 in-memory + L2 Redis) template cache
// with Pub/Sub invalidation across instances
func (f *TemplateCacheFactory) CreateTieredCache() (*TieredTemplateCache, error) {
	redisCfg := RedisConfig{
		Host:     f.redisConfig.Host,
		Port:     f.redisConfig.Port,
		Password: f.redisConfig.Password,
		DB:       f.redisConfig.DB,
	}

	l2, err := NewRedisTemplateCache(redisCfg,
		WithCacheConfig(f.cacheConfig),
		WithCacheLogger(f.logger))
	if err != nil {
		return nil, fmt.Errorf("failed to create Redis template cache: %w", err)
	}

	invalidator, err := NewRedisTemplateCacheInvalidator(redisCfg,
		WithInvalidatorChannel(f.cacheConfig.PubSubChannel),
		WithInvalidatorLogger(f.logger))
	if err != nil {
		_ = l2.Close()
		return nil, fmt.Errorf("failed to create template cache invalidator: %w", err)
	}

	l1 := NewInMemoryTemplateCache(
		WithInMemoryConfig(f.cacheConfig),
		WithInMemoryLogger(f.logger))

	return NewTieredTemplateCache(l1, l2, invalidator,
		WithTieredConfig(f.cacheConfig),
		WithTieredLogger(f.logger)), nil
}

// CreateInMemoryCache creates an in-memory template cache
// This is suitable for single-instance deployments and testing
// WARNING: In-memory caches do not share state across process instances,
// which can lead to stale templates being rendered after updates
func (f *TemplateCacheFactory) CreateInMemoryCache() *InMemoryTemplateCache {
	return NewInMemoryTemplateCache(
		WithInMemoryConfig(f.cacheConfig),
		WithInMemoryLogger(f.logger))
}

// CreateCache creates a template cache based on whether Redis is available
// It tries to create a tiered cache first, and falls back to in-memory if Redis
// is not available and AllowInMemoryFallback is true
func (f *TemplateCacheFactory) CreateCache() (printing.TemplateCache, error) {
	// Try Redis first
	cache, err := f.CreateTieredCache()
	if err == nil {
		f.logger.Info("using tiered template cache")
		return cache, nil
	}

	// Check if fallback is allowed
	if !f.allowInMemoryFallback {
		return nil, fmt.Errorf("Redis required for template cache but unavailable: %w", err)
	}

	// Fall back to in-memory with warning
	f.logger.Warn("Redis unavailable, falling back to in-memory template cache. "+
		"Template updates may not propagate across instances.",
		zap.Error(err),
	)
	return f.CreateInMemoryCache(), nil
}

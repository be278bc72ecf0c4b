package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Constants for Redis cache configuration
const (
	defaultScanBatchSize = 100
)

// RedisConfig holds Redis connection settings for the cache package
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// RedisTemplateCache implements TemplateCache using Redis
type RedisTemplateCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	config     printing.CacheConfig
	logger     *zap.Logger
}

// RedisTemplateCacheOption is a functional option for configuring the cache
type RedisTemplateCacheOption func(*RedisTemplateCache)

// WithCacheConfig sets the cache configuration
func WithCacheConfig(config printing.CacheConfig) RedisTemplateCacheOption {
	return func(c *RedisTemplateCache) {
		c.config = config
	}
}

// WithCacheLogger sets the logger for the cache
func WithCacheLogger(logger *zap.Logger) RedisTemplateCacheOption {
	return func(c *RedisTemplateCache) {
		c.logger = logger
	}
}

// NewRedisTemplateCache creates a new Redis-based template cache
func NewRedisTemplateCache(cfg RedisConfig, opts ...RedisTemplateCacheOption) (*RedisTemplateCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	cache := &RedisTemplateCache{
		client:     client,
		ownsClient: true, // We created this client, so we own it
		config:     printing.DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache, nil
}

// NewRedisTemplateCacheWithClient creates a cache with an existing Redis client
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisTemplateCacheWithClient(client *redis.Client, opts ...RedisTemplateCacheOption) *RedisTemplateCache {
	cache := &RedisTemplateCache{
		client:     client,
		ownsClient: false, // Client is shared, don't close it
		config:     printing.DefaultCacheConfig(),
		logger:     zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// templateCacheKey generates the cache key for a template
func (c *RedisTemplateCache) templateCacheKey(tenantID, templateID uuid.UUID) string {
	return fmt.Sprintf("receipt_template:%s:%s", tenantID.String(), templateID.String())
}

// defaultCacheKey generates the cache key for a tenant's default template
func (c *RedisTemplateCache) defaultCacheKey(tenantID uuid.UUID) string {
	return fmt.Sprintf("receipt_template:default:%s", tenantID.String())
}

// Get retrieves a template from cache
func (c *RedisTemplateCache) Get(ctx context.Context, tenantID, templateID uuid.UUID) (*printing.ReceiptTemplate, error) {
	return c.getByKey(ctx, c.templateCacheKey(tenantID, templateID))
}

// GetDefault retrieves a tenant's default template from cache
func (c *RedisTemplateCache) GetDefault(ctx context.Context, tenantID uuid.UUID) (*printing.ReceiptTemplate, error) {
	return c.getByKey(ctx, c.defaultCacheKey(tenantID))
}

func (c *RedisTemplateCache) getByKey(ctx context.Context, cacheKey string) (*printing.ReceiptTemplate, error) {
	data, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == redis.Nil {
		// Cache miss
		c.logger.Debug("Cache miss for template", zap.String("key", cacheKey))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Failed to get template from cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return nil, fmt.Errorf("failed to get template from cache: %w", err)
	}

	var template printing.ReceiptTemplate
	if err := json.Unmarshal(data, &template); err != nil {
		c.logger.Error("Failed to unmarshal template",
			zap.String("key", cacheKey),
			zap.Error(err))
		// Delete corrupted cache entry
		_ = c.client.Del(ctx, cacheKey)
		return nil, fmt.Errorf("failed to unmarshal template: %w", err)
	}

	c.logger.Debug("Cache hit for template", zap.String("key", cacheKey))
	return &template, nil
}

// Set stores a template in cache
func (c *RedisTemplateCache) Set(ctx context.Context, template *printing.ReceiptTemplate, ttl time.Duration) error {
	if template == nil {
		return nil
	}
	return c.setByKey(ctx, c.templateCacheKey(template.TenantID, template.ID), template, ttl)
}

// SetDefault stores a tenant's default template in cache
func (c *RedisTemplateCache) SetDefault(ctx context.Context, template *printing.ReceiptTemplate, ttl time.Duration) error {
	if template == nil {
		return nil
	}
	return c.setByKey(ctx, c.defaultCacheKey(template.TenantID), template, ttl)
}

func (c *RedisTemplateCache) setByKey(ctx context.Context, cacheKey string, template *printing.ReceiptTemplate, ttl time.Duration) error {
	if ttl == 0 {
		ttl = c.config.TemplateTTL
	}

	data, err := json.Marshal(template)
	if err != nil {
		c.logger.Error("Failed to marshal template",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to marshal template: %w", err)
	}

	if err := c.client.Set(ctx, cacheKey, data, ttl).Err(); err != nil {
		c.logger.Error("Failed to set template in cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to set template in cache: %w", err)
	}

	c.logger.Debug("Cached template",
		zap.String("key", cacheKey),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a template from cache
func (c *RedisTemplateCache) Delete(ctx context.Context, tenantID, templateID uuid.UUID) error {
	return c.deleteByKey(ctx, c.templateCacheKey(tenantID, templateID))
}

// DeleteDefault removes a tenant's default template from cache
func (c *RedisTemplateCache) DeleteDefault(ctx context.Context, tenantID uuid.UUID) error {
	return c.deleteByKey(ctx, c.defaultCacheKey(tenantID))
}

func (c *RedisTemplateCache) deleteByKey(ctx context.Context, cacheKey string) error {
	if err := c.client.Del(ctx, cacheKey).Err(); err != nil {
		c.logger.Error("Failed to delete template from cache",
			zap.String("key", cacheKey),
			zap.Error(err))
		return fmt.Errorf("failed to delete template from cache: %w", err)
	}

	c.logger.Debug("Deleted template from cache", zap.String("key", cacheKey))
	return nil
}

// InvalidateAll removes all cached templates
func (c *RedisTemplateCache) InvalidateAll(ctx context.Context) error {
	// Use SCAN to find all template keys to avoid blocking Redis with KEYS command
	var cursor uint64
	var deletedCount int64

	for {
		var keys []string
		var err error
		keys, cursor, err = c.client.Scan(ctx, cursor, "receipt_template:*", defaultScanBatchSize).Result()
		if err != nil {
			c.logger.Error("Failed to scan template keys", zap.Error(err))
			return fmt.Errorf("failed to scan cache keys: %w", err)
		}

		if len(keys) > 0 {
			deleted, err := c.client.Del(ctx, keys...).Result()
			if err != nil {
				c.logger.Error("Failed to delete template keys", zap.Error(err))
				return fmt.Errorf("failed to delete cache keys: %w", err)
			}
			deletedCount += deleted
		}

		if cursor == 0 {
			break
		}
	}

	c.logger.Info("Invalidated all template cache",
		zap.Int64("deleted_count", deletedCount))
	return nil
}

// Close releases any resources held by the cache
func (c *RedisTemplateCache) Close() error {
	// Only close client if we own it
	if c.ownsClient {
		return c.client.Close()
	}
	return nil
}

// GetClient returns the underlying Redis client (for testing/monitoring)
func (c *RedisTemplateCache) GetClient() *redis.Client {
	return c.client
}

// Ensure RedisTemplateCache implements TemplateCache
var _ printing.TemplateCache = (*RedisTemplateCache)(nil)

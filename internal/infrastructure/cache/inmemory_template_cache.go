package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Constants for in-memory cache configuration
const (
	defaultCleanupInterval = 30 * time.Second
)

// InMemoryTemplateCache implements TemplateCache using in-memory storage
// This is designed to be used as L1 cache in front of Redis
type InMemoryTemplateCache struct {
	templates sync.Map // map[string]*cacheEntry[printing.ReceiptTemplate]
	defaults  sync.Map // map[string]*cacheEntry[printing.ReceiptTemplate]
	config    printing.CacheConfig
	logger    *zap.Logger
	stopCh    chan struct{} // Channel to stop the cleanup goroutine
	stopped   int32         // Atomic flag to track if cache is stopped

	// Stats for monitoring
	hits   int64
	misses int64
}

// cacheEntry wraps a cached value with expiration time
type cacheEntry[T any] struct {
	value     *T
	expiresAt time.Time
}

// isExpired checks if the cache entry has expired
func (e *cacheEntry[T]) isExpired() bool {
	return time.Now().After(e.expiresAt)
}

// InMemoryTemplateCacheOption is a functional option for configuring the cache
type InMemoryTemplateCacheOption func(*InMemoryTemplateCache)

// WithInMemoryConfig sets the cache configuration
func WithInMemoryConfig(config printing.CacheConfig) InMemoryTemplateCacheOption {
	return func(c *InMemoryTemplateCache) {
		c.config = config
	}
}

// WithInMemoryLogger sets the logger for the cache
func WithInMemoryLogger(logger *zap.Logger) InMemoryTemplateCacheOption {
	return func(c *InMemoryTemplateCache) {
		c.logger = logger
	}
}

// NewInMemoryTemplateCache creates a new in-memory template cache
func NewInMemoryTemplateCache(opts ...InMemoryTemplateCacheOption) *InMemoryTemplateCache {
	cache := &InMemoryTemplateCache{
		config: printing.DefaultCacheConfig(),
		logger: zap.NewNop(),
		stopCh: make(chan struct{}),
	}

	for _, opt := range opts {
		opt(cache)
	}

	// Start background cleanup goroutine
	go cache.cleanupExpired()

	return cache
}

// templateCacheKey generates the cache key for a template
func (c *InMemoryTemplateCache) templateCacheKey(tenantID, templateID uuid.UUID) string {
	return "template:" + tenantID.String() + ":" + templateID.String()
}

// defaultCacheKey generates the cache key for a tenant's default template
func (c *InMemoryTemplateCache) defaultCacheKey(tenantID uuid.UUID) string {
	return "default:" + tenantID.String()
}

// Get retrieves a template from cache
func (c *InMemoryTemplateCache) Get(ctx context.Context, tenantID, templateID uuid.UUID) (*printing.ReceiptTemplate, error) {
	cacheKey := c.templateCacheKey(tenantID, templateID)

	if value, ok := c.templates.Load(cacheKey); ok {
		entry := value.(*cacheEntry[printing.ReceiptTemplate])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("L1 cache hit for template", zap.String("key", cacheKey))
			return entry.value, nil
		}
		// Expired, remove from cache
		c.templates.Delete(cacheKey)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("L1 cache miss for template", zap.String("key", cacheKey))
	return nil, nil
}

// Set stores a template in cache
func (c *InMemoryTemplateCache) Set(ctx context.Context, template *printing.ReceiptTemplate, ttl time.Duration) error {
	if template == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.L1TTL
	}

	cacheKey := c.templateCacheKey(template.TenantID, template.ID)
	entry := &cacheEntry[printing.ReceiptTemplate]{
		value:     template,
		expiresAt: time.Now().Add(ttl),
	}

	c.templates.Store(cacheKey, entry)
	c.logger.Debug("Cached template in L1",
		zap.String("key", cacheKey),
		zap.Duration("ttl", ttl))
	return nil
}

// Delete removes a template from cache
func (c *InMemoryTemplateCache) Delete(ctx context.Context, tenantID, templateID uuid.UUID) error {
	cacheKey := c.templateCacheKey(tenantID, templateID)
	c.templates.Delete(cacheKey)
	c.logger.Debug("Deleted template from L1 cache", zap.String("key", cacheKey))
	return nil
}

// GetDefault retrieves a tenant's default template from cache
func (c *InMemoryTemplateCache) GetDefault(ctx context.Context, tenantID uuid.UUID) (*printing.ReceiptTemplate, error) {
	cacheKey := c.defaultCacheKey(tenantID)

	if value, ok := c.defaults.Load(cacheKey); ok {
		entry := value.(*cacheEntry[printing.ReceiptTemplate])
		if !entry.isExpired() {
			atomic.AddInt64(&c.hits, 1)
			c.logger.Debug("L1 cache hit for default template",
				zap.String("tenant_id", tenantID.String()))
			return entry.value, nil
		}
		// Expired, remove from cache
		c.defaults.Delete(cacheKey)
	}

	atomic.AddInt64(&c.misses, 1)
	c.logger.Debug("L1 cache miss for default template",
		zap.String("tenant_id", tenantID.String()))
	return nil, nil
}

// SetDefault stores a tenant's default template in cache
func (c *InMemoryTemplateCache) SetDefault(ctx context.Context, template *printing.ReceiptTemplate, ttl time.Duration) error {
	if template == nil {
		return nil
	}

	if ttl == 0 {
		ttl = c.config.L1TTL
	}

	cacheKey := c.defaultCacheKey(template.TenantID)
	entry := &cacheEntry[printing.ReceiptTemplate]{
		value:     template,
		expiresAt: time.Now().Add(ttl),
	}

	c.defaults.Store(cacheKey, entry)
	c.logger.Debug("Cached default template in L1",
		zap.String("tenant_id", template.TenantID.String()),
		zap.Duration("ttl", ttl))
	return nil
}

// DeleteDefault removes a tenant's default template from cache
func (c *InMemoryTemplateCache) DeleteDefault(ctx context.Context, tenantID uuid.UUID) error {
	cacheKey := c.defaultCacheKey(tenantID)
	c.defaults.Delete(cacheKey)
	c.logger.Debug("Deleted default template from L1 cache",
		zap.String("tenant_id", tenantID.String()))
	return nil
}

// InvalidateAll removes all cached templates
func (c *InMemoryTemplateCache) InvalidateAll(ctx context.Context) error {
	// Clear all entries
	c.templates.Range(func(key, _ any) bool {
		c.templates.Delete(key)
		return true
	})
	c.defaults.Range(func(key, _ any) bool {
		c.defaults.Delete(key)
		return true
	})

	c.logger.Info("Invalidated all L1 template cache")
	return nil
}

// Close releases any resources held by the cache
func (c *InMemoryTemplateCache) Close() error {
	// Only close once
	if atomic.CompareAndSwapInt32(&c.stopped, 0, 1) {
		close(c.stopCh)
	}
	return nil
}

// GetStats returns cache statistics
func (c *InMemoryTemplateCache) GetStats() (hits, misses int64) {
	return atomic.LoadInt64(&c.hits), atomic.LoadInt64(&c.misses)
}

// ResetStats resets the cache statistics
func (c *InMemoryTemplateCache) ResetStats() {
	atomic.StoreInt64(&c.hits, 0)
	atomic.StoreInt64(&c.misses, 0)
}

// Count returns the number of entries in the cache
func (c *InMemoryTemplateCache) Count() (templates, defaults int) {
	c.templates.Range(func(_, _ any) bool {
		templates++
		return true
	})
	c.defaults.Range(func(_, _ any) bool {
		defaults++
		return true
	})
	return templates, defaults
}

// cleanupExpired periodically removes expired entries from the cache
func (c *InMemoryTemplateCache) cleanupExpired() {
	ticker := time.NewTicker(defaultCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopCh:
			return
		case <-ticker.C:
			func() {
				defer func() {
					if r := recover(); r != nil {
						c.logger.Error("Panic in cache cleanup",
							zap.Any("panic", r))
					}
				}()
				c.doCleanup()
			}()
		}
	}
}

// doCleanup removes expired entries from both caches
func (c *InMemoryTemplateCache) doCleanup() {
	var templatesRemoved, defaultsRemoved int

	c.templates.Range(func(key, value any) bool {
		entry := value.(*cacheEntry[printing.ReceiptTemplate])
		if entry.isExpired() {
			c.templates.Delete(key)
			templatesRemoved++
		}
		return true
	})

	c.defaults.Range(func(key, value any) bool {
		entry := value.(*cacheEntry[printing.ReceiptTemplate])
		if entry.isExpired() {
			c.defaults.Delete(key)
			defaultsRemoved++
		}
		return true
	})

	if templatesRemoved > 0 || defaultsRemoved > 0 {
		c.logger.Debug("Cleaned up expired L1 cache entries",
			zap.Int("templates_removed", templatesRemoved),
			zap.Int("defaults_removed", defaultsRemoved))
	}
}

// Ensure InMemoryTemplateCache implements TemplateCache
var _ printing.TemplateCache = (*InMemoryTemplateCache)(nil)

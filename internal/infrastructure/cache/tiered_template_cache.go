package cache

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TieredTemplateCache implements a two-tier caching strategy
// L1: Local in-memory cache (fast, but local to instance)
// L2: Redis cache (slower, but shared across instances)
// This follows a read-through pattern with Pub/Sub invalidation
type TieredTemplateCache struct {
	l1Cache     *InMemoryTemplateCache
	l2Cache     *RedisTemplateCache
	invalidator *RedisTemplateCacheInvalidator
	config      printing.CacheConfig
	logger      *zap.Logger

	// Stats for monitoring
	l1Hits   int64
	l1Misses int64
	l2Hits   int64
	l2Misses int64
}

// TieredTemplateCacheOption is a functional option for configuring the cache
type TieredTemplateCacheOption func(*TieredTemplateCache)

// WithTieredConfig sets the cache configuration
func WithTieredConfig(config printing.CacheConfig) TieredTemplateCacheOption {
	return func(c *TieredTemplateCache) {
		c.config = config
	}
}

// WithTieredLogger sets the logger for the cache
func WithTieredLogger(logger *zap.Logger) TieredTemplateCacheOption {
	return func(c *TieredTemplateCache) {
		c.logger = logger
	}
}

// NewTieredTemplateCache creates a new tiered template cache
func NewTieredTemplateCache(
	l1Cache *InMemoryTemplateCache,
	l2Cache *RedisTemplateCache,
	invalidator *RedisTemplateCacheInvalidator,
	opts ...TieredTemplateCacheOption,
) *TieredTemplateCache {
	cache := &TieredTemplateCache{
		l1Cache:     l1Cache,
		l2Cache:     l2Cache,
		invalidator: invalidator,
		config:      printing.DefaultCacheConfig(),
		logger:      zap.NewNop(),
	}

	for _, opt := range opts {
		opt(cache)
	}

	return cache
}

// StartInvalidationSubscription starts listening for cache invalidation messages
// This should be called after creating the cache, typically in a goroutine
func (c *TieredTemplateCache) StartInvalidationSubscription(ctx context.Context) error {
	if c.invalidator == nil {
		return nil
	}

	return c.invalidator.Subscribe(ctx, func(msg printing.CacheUpdateMessage) {
		c.handleInvalidationMessage(msg)
	})
}

// handleInvalidationMessage processes cache invalidation messages
func (c *TieredTemplateCache) handleInvalidationMessage(msg printing.CacheUpdateMessage) {
	ctx := context.Background()

	switch msg.Action {
	case printing.CacheUpdateActionUpdated, printing.CacheUpdateActionDeleted:
		tenantID, err := uuid.Parse(msg.TenantID)
		if err != nil {
			c.logger.Error("Failed to parse tenant ID in invalidation message",
				zap.String("tenant_id", msg.TenantID),
				zap.Error(err))
			return
		}
		templateID, err := uuid.Parse(msg.TemplateID)
		if err != nil {
			c.logger.Error("Failed to parse template ID in invalidation message",
				zap.String("template_id", msg.TemplateID),
				zap.Error(err))
			return
		}
		if err := c.l1Cache.Delete(ctx, tenantID, templateID); err != nil {
			c.logger.Error("Failed to invalidate L1 cache for template",
				zap.String("template_id", msg.TemplateID),
				zap.Error(err))
		}
		// The changed template may have been the tenant's default
		if err := c.l1Cache.DeleteDefault(ctx, tenantID); err != nil {
			c.logger.Error("Failed to invalidate L1 default cache",
				zap.String("tenant_id", msg.TenantID),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 cache for template",
			zap.String("action", string(msg.Action)),
			zap.String("template_id", msg.TemplateID))

	case printing.CacheUpdateActionDefaultChanged:
		tenantID, err := uuid.Parse(msg.TenantID)
		if err != nil {
			c.logger.Error("Failed to parse tenant ID in invalidation message",
				zap.String("tenant_id", msg.TenantID),
				zap.Error(err))
			return
		}
		if err := c.l1Cache.DeleteDefault(ctx, tenantID); err != nil {
			c.logger.Error("Failed to invalidate L1 default cache",
				zap.String("tenant_id", msg.TenantID),
				zap.Error(err))
		}
		c.logger.Debug("Invalidated L1 default cache",
			zap.String("tenant_id", msg.TenantID))

	case printing.CacheUpdateActionInvalidateAll:
		if err := c.l1Cache.InvalidateAll(ctx); err != nil {
			c.logger.Error("Failed to invalidate all L1 cache", zap.Error(err))
		}
		c.logger.Info("Invalidated all L1 cache")
	}
}

// Get retrieves a template from cache (L1 -> L2)
func (c *TieredTemplateCache) Get(ctx context.Context, tenantID, templateID uuid.UUID) (*printing.ReceiptTemplate, error) {
	// Try L1 first
	template, err := c.l1Cache.Get(ctx, tenantID, templateID)
	if err != nil {
		c.logger.Warn("L1 cache error", zap.String("template_id", templateID.String()), zap.Error(err))
	}
	if template != nil {
		atomic.AddInt64(&c.l1Hits, 1)
		return template, nil
	}
	atomic.AddInt64(&c.l1Misses, 1)

	// Try L2
	template, err = c.l2Cache.Get(ctx, tenantID, templateID)
	if err != nil {
		return nil, err
	}
	if template != nil {
		atomic.AddInt64(&c.l2Hits, 1)
		// Populate L1 cache
		if err := c.l1Cache.Set(ctx, template, c.config.L1TTL); err != nil {
			c.logger.Warn("Failed to populate L1 cache",
				zap.String("template_id", templateID.String()), zap.Error(err))
		}
		return template, nil
	}
	atomic.AddInt64(&c.l2Misses, 1)

	return nil, nil
}

// Set stores a template in cache (both tiers) and notifies other instances
func (c *TieredTemplateCache) Set(ctx context.Context, template *printing.ReceiptTemplate, ttl time.Duration) error {
	// Set in L2
	if err := c.l2Cache.Set(ctx, template, ttl); err != nil {
		return err
	}

	// Also set in L1 for immediate local access
	if err := c.l1Cache.Set(ctx, template, c.config.L1TTL); err != nil {
		c.logger.Warn("Failed to set L1 cache",
			zap.String("template_id", template.ID.String()), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishTemplateUpdate(ctx, template.TenantID.String(), template.ID.String()); err != nil {
			c.logger.Warn("Failed to publish template update",
				zap.String("template_id", template.ID.String()), zap.Error(err))
		}
	}

	return nil
}

// Delete removes a template from cache (both L1 and L2)
func (c *TieredTemplateCache) Delete(ctx context.Context, tenantID, templateID uuid.UUID) error {
	// Delete from L2
	if err := c.l2Cache.Delete(ctx, tenantID, templateID); err != nil {
		return err
	}

	// Delete from L1
	if err := c.l1Cache.Delete(ctx, tenantID, templateID); err != nil {
		c.logger.Warn("Failed to delete from L1 cache",
			zap.String("template_id", templateID.String()), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishTemplateDelete(ctx, tenantID.String(), templateID.String()); err != nil {
			c.logger.Warn("Failed to publish template delete",
				zap.String("template_id", templateID.String()), zap.Error(err))
		}
	}

	return nil
}

// GetDefault retrieves a tenant's default template from cache (L1 -> L2)
func (c *TieredTemplateCache) GetDefault(ctx context.Context, tenantID uuid.UUID) (*printing.ReceiptTemplate, error) {
	// Try L1 first
	template, err := c.l1Cache.GetDefault(ctx, tenantID)
	if err != nil {
		c.logger.Warn("L1 cache error for default template",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}
	if template != nil {
		atomic.AddInt64(&c.l1Hits, 1)
		return template, nil
	}
	atomic.AddInt64(&c.l1Misses, 1)

	// Try L2
	template, err = c.l2Cache.GetDefault(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if template != nil {
		atomic.AddInt64(&c.l2Hits, 1)
		// Populate L1 cache
		if err := c.l1Cache.SetDefault(ctx, template, c.config.L1TTL); err != nil {
			c.logger.Warn("Failed to populate L1 cache for default template",
				zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
		return template, nil
	}
	atomic.AddInt64(&c.l2Misses, 1)

	return nil, nil
}

// SetDefault stores a tenant's default template in cache
func (c *TieredTemplateCache) SetDefault(ctx context.Context, template *printing.ReceiptTemplate, ttl time.Duration) error {
	// Set in L2
	if err := c.l2Cache.SetDefault(ctx, template, ttl); err != nil {
		return err
	}

	// Also set in L1 for immediate local access
	if err := c.l1Cache.SetDefault(ctx, template, c.config.L1TTL); err != nil {
		c.logger.Warn("Failed to set L1 cache for default template",
			zap.String("tenant_id", template.TenantID.String()), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishDefaultChanged(ctx, template.TenantID.String()); err != nil {
			c.logger.Warn("Failed to publish default change",
				zap.String("tenant_id", template.TenantID.String()), zap.Error(err))
		}
	}

	return nil
}

// DeleteDefault removes a tenant's default template from cache
func (c *TieredTemplateCache) DeleteDefault(ctx context.Context, tenantID uuid.UUID) error {
	// Delete from L2
	if err := c.l2Cache.DeleteDefault(ctx, tenantID); err != nil {
		return err
	}

	// Delete from L1
	if err := c.l1Cache.DeleteDefault(ctx, tenantID); err != nil {
		c.logger.Warn("Failed to delete default from L1 cache",
			zap.String("tenant_id", tenantID.String()), zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishDefaultChanged(ctx, tenantID.String()); err != nil {
			c.logger.Warn("Failed to publish default change",
				zap.String("tenant_id", tenantID.String()), zap.Error(err))
		}
	}

	return nil
}

// InvalidateAll removes all cached templates
func (c *TieredTemplateCache) InvalidateAll(ctx context.Context) error {
	// Invalidate L2
	if err := c.l2Cache.InvalidateAll(ctx); err != nil {
		return err
	}

	// Invalidate L1
	if err := c.l1Cache.InvalidateAll(ctx); err != nil {
		c.logger.Warn("Failed to invalidate L1 cache", zap.Error(err))
	}

	// Publish invalidation for other instances
	if c.invalidator != nil {
		if err := c.invalidator.PublishInvalidateAll(ctx); err != nil {
			c.logger.Warn("Failed to publish invalidate all", zap.Error(err))
		}
	}

	return nil
}

// Close releases any resources held by the cache
func (c *TieredTemplateCache) Close() error {
	var lastErr error

	if c.invalidator != nil {
		if err := c.invalidator.Close(); err != nil {
			lastErr = err
		}
	}

	if err := c.l2Cache.Close(); err != nil {
		lastErr = err
	}

	if err := c.l1Cache.Close(); err != nil {
		lastErr = err
	}

	return lastErr
}

// InvalidateL1 removes an entry from the L1 (local) cache only
func (c *TieredTemplateCache) InvalidateL1(ctx context.Context, tenantID, templateID uuid.UUID) error {
	return c.l1Cache.Delete(ctx, tenantID, templateID)
}

// GetCacheStats returns statistics about cache hits, misses, and other metrics
func (c *TieredTemplateCache) GetCacheStats(ctx context.Context) printing.CacheStats {
	l1Hits := atomic.LoadInt64(&c.l1Hits)
	l1Misses := atomic.LoadInt64(&c.l1Misses)
	l2Hits := atomic.LoadInt64(&c.l2Hits)
	l2Misses := atomic.LoadInt64(&c.l2Misses)

	totalHits := l1Hits + l2Hits
	totalMisses := l2Misses // Only count final misses

	var hitRatio float64
	totalRequests := totalHits + totalMisses
	if totalRequests > 0 {
		hitRatio = float64(totalHits) / float64(totalRequests)
	}

	templateCount, defaultCount := c.l1Cache.Count()

	return printing.CacheStats{
		L1Hits:       l1Hits,
		L1Misses:     l1Misses,
		L2Hits:       l2Hits,
		L2Misses:     l2Misses,
		TotalHits:    totalHits,
		TotalMisses:  totalMisses,
		HitRatio:     hitRatio,
		CacheEntries: int64(templateCount + defaultCount),
	}
}

// ResetStats resets the cache statistics
func (c *TieredTemplateCache) ResetStats() {
	atomic.StoreInt64(&c.l1Hits, 0)
	atomic.StoreInt64(&c.l1Misses, 0)
	atomic.StoreInt64(&c.l2Hits, 0)
	atomic.StoreInt64(&c.l2Misses, 0)
	c.l1Cache.ResetStats()
}

// Ensure TieredTemplateCache implements both TemplateCache and TieredTemplateCache
var _ printing.TemplateCache = (*TieredTemplateCache)(nil)
var _ printing.TieredTemplateCache = (*TieredTemplateCache)(nil)

package printing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TemplateCache defines the interface for caching receipt templates.
// Implementations may use Redis, in-memory storage, or a tiered combination.
//
// Cache misses return (nil, nil) so callers can distinguish "not cached"
// from infrastructure errors.
type TemplateCache interface {
	// Get retrieves a template by tenant and template ID, nil on miss
	Get(ctx context.Context, tenantID, templateID uuid.UUID) (*ReceiptTemplate, error)

	// Set stores a template with the given TTL (0 = use default TTL)
	Set(ctx context.Context, template *ReceiptTemplate, ttl time.Duration) error

	// Delete removes a template from the cache
	Delete(ctx context.Context, tenantID, templateID uuid.UUID) error

	// GetDefault retrieves the tenant's default template, nil on miss
	GetDefault(ctx context.Context, tenantID uuid.UUID) (*ReceiptTemplate, error)

	// SetDefault stores the tenant's default template with the given TTL
	SetDefault(ctx context.Context, template *ReceiptTemplate, ttl time.Duration) error

	// DeleteDefault removes the tenant's default template entry
	DeleteDefault(ctx context.Context, tenantID uuid.UUID) error

	// InvalidateAll removes all cached templates
	InvalidateAll(ctx context.Context) error

	// Close releases any resources held by the cache
	Close() error
}

// CacheUpdateAction represents the type of cache update notification
type CacheUpdateAction string

const (
	// CacheUpdateActionUpdated indicates a template was created or updated
	CacheUpdateActionUpdated CacheUpdateAction = "updated"
	// CacheUpdateActionDeleted indicates a template was deleted
	CacheUpdateActionDeleted CacheUpdateAction = "deleted"
	// CacheUpdateActionDefaultChanged indicates the tenant's default template changed
	CacheUpdateActionDefaultChanged CacheUpdateAction = "default_changed"
	// CacheUpdateActionInvalidateAll indicates all cache should be cleared
	CacheUpdateActionInvalidateAll CacheUpdateAction = "invalidate_all"
)

// CacheUpdateMessage represents a cache invalidation message
// published between instances when templates change.
type CacheUpdateMessage struct {
	Action     CacheUpdateAction `json:"action"`
	TenantID   string            `json:"tenant_id,omitempty"`
	TemplateID string            `json:"template_id,omitempty"`
	Timestamp  int64             `json:"timestamp"`
}

// CacheInvalidator publishes and receives cache invalidation messages
// so local caches stay consistent across instances.
type CacheInvalidator interface {
	// Publish sends a cache update notification to all subscribers
	Publish(ctx context.Context, msg CacheUpdateMessage) error

	// Subscribe starts listening for cache update notifications.
	// The callback is invoked for each received message. Blocks until the
	// context is cancelled.
	Subscribe(ctx context.Context, callback func(msg CacheUpdateMessage)) error

	// Close releases any resources held by the invalidator
	Close() error
}

// TieredTemplateCache extends TemplateCache with direct access to the
// local (L1) tier and cache statistics.
type TieredTemplateCache interface {
	TemplateCache

	// InvalidateL1 removes a template from the local tier only
	InvalidateL1(ctx context.Context, tenantID, templateID uuid.UUID) error

	// GetCacheStats returns statistics about cache hits, misses, and other metrics.
	GetCacheStats(ctx context.Context) CacheStats
}

// CacheStats holds cache performance statistics
type CacheStats struct {
	L1Hits       int64   `json:"l1_hits"`
	L1Misses     int64   `json:"l1_misses"`
	L2Hits       int64   `json:"l2_hits"`
	L2Misses     int64   `json:"l2_misses"`
	TotalHits    int64   `json:"total_hits"`
	TotalMisses  int64   `json:"total_misses"`
	HitRatio     float64 `json:"hit_ratio"`
	CacheEntries int64   `json:"cache_entries"`
}

// CacheConfig holds configuration for the template cache
type CacheConfig struct {
	// TemplateTTL is how long templates stay in the shared (L2) cache
	TemplateTTL time.Duration

	// L1TTL is how long templates stay in the local (L1) cache
	L1TTL time.Duration

	// PubSubChannel is the Redis Pub/Sub channel name (default: "receipt_template:updates")
	PubSubChannel string
}

// DefaultCacheConfig returns the default cache configuration
func DefaultCacheConfig() CacheConfig {
	return CacheConfig{
		TemplateTTL:   5 * time.Minute,
		L1TTL:         30 * time.Second,
		PubSubChannel: "receipt_template:updates",
	}
}

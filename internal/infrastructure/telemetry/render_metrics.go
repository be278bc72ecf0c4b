// Package telemetry provides OpenTelemetry integration for metrics collection.
package telemetry

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// RenderMetrics provides metrics for receipt rendering activity.
// It tracks render volume, render latency, skipped sections, and
// template cache effectiveness.
type RenderMetrics struct {
	meter  metric.Meter
	logger *zap.Logger

	renderTotal          *Counter
	renderDuration       *Histogram
	skippedSectionsTotal *Counter
	cacheHitTotal        *Counter
	cacheMissTotal       *Counter
}

// RenderMetricsConfig holds configuration for render metrics.
type RenderMetricsConfig struct {
	Meter  metric.Meter
	Logger *zap.Logger
}

// NewRenderMetrics creates a new RenderMetrics instance.
func NewRenderMetrics(cfg RenderMetricsConfig) (*RenderMetrics, error) {
	if cfg.Meter == nil {
		return nil, ErrMeterNil
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	rm := &RenderMetrics{
		meter:  cfg.Meter,
		logger: logger,
	}

	var err error

	rm.renderTotal, err = NewCounter(
		cfg.Meter,
		"ledger_receipt_render_total",
		"Total number of receipts rendered",
		"{renders}",
	)
	if err != nil {
		return nil, err
	}

	rm.renderDuration, err = NewHistogram(cfg.Meter, HistogramOpts{
		Name:        "ledger_receipt_render_duration_seconds",
		Description: "Time spent composing and writing a receipt document",
		Unit:        "s",
		Boundaries:  SmallDurationBuckets,
	})
	if err != nil {
		return nil, err
	}

	rm.skippedSectionsTotal, err = NewCounter(
		cfg.Meter,
		"ledger_receipt_skipped_sections_total",
		"Total number of template sections skipped during rendering",
		"{sections}",
	)
	if err != nil {
		return nil, err
	}

	rm.cacheHitTotal, err = NewCounter(
		cfg.Meter,
		"ledger_template_cache_hit_total",
		"Total number of template cache hits",
		"{hits}",
	)
	if err != nil {
		return nil, err
	}

	rm.cacheMissTotal, err = NewCounter(
		cfg.Meter,
		"ledger_template_cache_miss_total",
		"Total number of template cache misses",
		"{misses}",
	)
	if err != nil {
		return nil, err
	}

	return rm, nil
}

// RecordRender records a completed render with its duration.
// This should be called from the application layer after a document is composed.
func (rm *RenderMetrics) RecordRender(ctx context.Context, tenantID, templateID uuid.UUID, paperSize string, duration time.Duration) {
	rm.renderTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrTemplateID.String(templateID.String()),
		AttrPaperSize.String(paperSize),
	)
	rm.renderDuration.RecordDuration(ctx, duration,
		AttrTenantID.String(tenantID.String()),
		AttrPaperSize.String(paperSize),
	)
}

// RecordSkippedSections records sections that produced no output during a render.
func (rm *RenderMetrics) RecordSkippedSections(ctx context.Context, tenantID uuid.UUID, count int) {
	if count <= 0 {
		return
	}
	rm.skippedSectionsTotal.Add(ctx, int64(count),
		AttrTenantID.String(tenantID.String()),
	)
}

// RecordCacheHit records a template cache hit.
func (rm *RenderMetrics) RecordCacheHit(ctx context.Context, tenantID uuid.UUID) {
	rm.cacheHitTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrCacheResult.String("hit"),
	)
}

// RecordCacheMiss records a template cache miss.
func (rm *RenderMetrics) RecordCacheMiss(ctx context.Context, tenantID uuid.UUID) {
	rm.cacheMissTotal.Inc(ctx,
		AttrTenantID.String(tenantID.String()),
		AttrCacheResult.String("miss"),
	)
}

// =============================================================================
// Error Types
// =============================================================================

// ErrMeterNil is returned when meter is nil.
var ErrMeterNil = &MetricsError{Op: "NewRenderMetrics", Err: "meter cannot be nil"}

// MetricsError represents a metrics-related error.
type MetricsError struct {
	Op  string
	Err string
}

func (e *MetricsError) Error() string {
	return e.Op + ": " + e.Err
}

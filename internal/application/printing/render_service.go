package printing

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/bizledger/backend/internal/domain/shared"
	infra "github.com/bizledger/backend/internal/infrastructure/printing"
	"github.com/bizledger/backend/internal/infrastructure/telemetry"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// RenderService composes receipt documents from templates and transaction
// data. Template resolution is cache first, repository second, built-in
// preset last, so a render request never fails for lack of a template.
// Cache, archive and metrics are optional dependencies.
type RenderService struct {
	templateRepo printing.ReceiptTemplateRepository
	cache        printing.TemplateCache
	composer     *infra.Composer
	writer       *infra.HTMLWriter
	archive      infra.HTMLArchive
	metrics      *telemetry.RenderMetrics
	logger       *zap.Logger
}

// RenderServiceOption configures optional dependencies of the render service
type RenderServiceOption func(*RenderService)

// WithTemplateCache sets the template cache
func WithTemplateCache(cache printing.TemplateCache) RenderServiceOption {
	return func(s *RenderService) {
		s.cache = cache
	}
}

// WithArchive sets the archive used to persist rendered HTML on request
func WithArchive(archive infra.HTMLArchive) RenderServiceOption {
	return func(s *RenderService) {
		s.archive = archive
	}
}

// WithRenderMetrics sets the telemetry recorder for render activity
func WithRenderMetrics(metrics *telemetry.RenderMetrics) RenderServiceOption {
	return func(s *RenderService) {
		s.metrics = metrics
	}
}

// NewRenderService creates a new RenderService
func NewRenderService(
	templateRepo printing.ReceiptTemplateRepository,
	composer *infra.Composer,
	writer *infra.HTMLWriter,
	logger *zap.Logger,
	opts ...RenderServiceOption,
) *RenderService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &RenderService{
		templateRepo: templateRepo,
		composer:     composer,
		writer:       writer,
		logger:       logger,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RenderReceipt composes the receipt document for the given transaction data
// and returns both the document tree and its HTML serialization
func (s *RenderService) RenderReceipt(ctx context.Context, tenantID uuid.UUID, req RenderReceiptRequest) (*RenderReceiptResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "RenderService", "RenderReceipt")
	defer span.End()

	template, err := s.resolveTemplate(ctx, tenantID, req.TemplateID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}

	telemetry.SetAttributes(span,
		telemetry.SpanAttrTemplateID, template.ID.String(),
		telemetry.SpanAttrTemplateName, template.Name,
		telemetry.SpanAttrPaperSize, string(template.PaperSize),
		telemetry.SpanAttrReceiptNumber, req.Receipt.ReceiptNumber,
		telemetry.SpanAttrSectionCount, len(template.Sections),
	)

	start := time.Now()
	doc := s.composer.Compose(template, req.Company, req.Receipt)
	html := s.writer.Write(doc)
	elapsed := time.Since(start)

	if doc.SkippedSections > 0 {
		telemetry.SetAttribute(span, telemetry.SpanAttrSkippedSections, doc.SkippedSections)
		s.logger.Warn("render skipped unknown sections",
			zap.String("templateId", template.ID.String()),
			zap.Int("skipped", doc.SkippedSections))
	}

	if s.metrics != nil {
		s.metrics.RecordRender(ctx, tenantID, template.ID, string(template.PaperSize), elapsed)
		s.metrics.RecordSkippedSections(ctx, tenantID, doc.SkippedSections)
	}

	resp := &RenderReceiptResponse{
		TemplateID:      template.ID.String(),
		TemplateName:    template.Name,
		PaperSize:       string(template.PaperSize),
		Document:        doc,
		HTML:            html,
		SkippedSections: doc.SkippedSections,
	}

	if req.Archive && s.archive != nil {
		renderID := uuid.New()
		telemetry.SetAttribute(span, telemetry.SpanAttrRenderID, renderID.String())
		result, err := s.archive.Store(ctx, &infra.ArchiveRequest{
			TenantID: tenantID,
			RenderID: renderID,
			HTML:     html,
		})
		if err != nil {
			// Archival is best effort; the render itself already succeeded
			s.logger.Error("failed to archive rendered receipt",
				zap.String("receiptNumber", req.Receipt.ReceiptNumber),
				zap.Error(err))
		} else {
			resp.ArchiveURL = result.URL
		}
	}

	s.logger.Debug("receipt rendered",
		zap.String("templateId", template.ID.String()),
		zap.String("receiptNumber", req.Receipt.ReceiptNumber),
		zap.Duration("elapsed", elapsed))

	telemetry.SetOK(span)
	return resp, nil
}

// GetArchivedRender streams a previously archived render. Archive paths
// embed the owning tenant, so renders of other tenants are invisible to the
// caller rather than forbidden.
func (s *RenderService) GetArchivedRender(ctx context.Context, tenantID uuid.UUID, path string) (io.ReadCloser, error) {
	if s.archive == nil {
		return nil, shared.ErrNotFound
	}
	if !strings.HasPrefix(path, tenantID.String()+"/") {
		return nil, shared.ErrNotFound
	}

	reader, err := s.archive.Get(ctx, path)
	if err != nil {
		s.logger.Warn("archived render lookup failed",
			zap.String("path", path),
			zap.Error(err))
		return nil, shared.ErrNotFound
	}
	return reader, nil
}

// resolveTemplate loads the requested template, falling back to the tenant
// default and finally the built-in preset. Only infrastructure failures are
// returned as errors; a missing template is not a render failure.
func (s *RenderService) resolveTemplate(ctx context.Context, tenantID uuid.UUID, templateID *uuid.UUID) (*printing.ReceiptTemplate, error) {
	if templateID != nil {
		template, err := s.lookupByID(ctx, tenantID, *templateID)
		if err != nil {
			return nil, err
		}
		if template != nil && template.IsActive() {
			return template, nil
		}
		if template != nil {
			s.logger.Warn("requested template is inactive, falling back to default",
				zap.String("templateId", templateID.String()))
		}
	}

	template, err := s.lookupDefault(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if template != nil {
		return template, nil
	}

	// No tenant template at all; render with the built-in preset
	preset, err := infra.DefaultPreset().BuildTemplate(tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to build preset template: %w", err)
	}
	return preset, nil
}

func (s *RenderService) lookupByID(ctx context.Context, tenantID, templateID uuid.UUID) (*printing.ReceiptTemplate, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, tenantID, templateID)
		if err != nil {
			s.logger.Warn("template cache lookup failed", zap.Error(err))
		} else if cached != nil {
			if s.metrics != nil {
				s.metrics.RecordCacheHit(ctx, tenantID)
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss(ctx, tenantID)
		}
	}

	template, err := s.templateRepo.FindByID(ctx, tenantID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load template: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, template, 0); err != nil {
			s.logger.Warn("failed to cache template", zap.Error(err))
		}
	}
	return template, nil
}

func (s *RenderService) lookupDefault(ctx context.Context, tenantID uuid.UUID) (*printing.ReceiptTemplate, error) {
	if s.cache != nil {
		cached, err := s.cache.GetDefault(ctx, tenantID)
		if err != nil {
			s.logger.Warn("default template cache lookup failed", zap.Error(err))
		} else if cached != nil {
			if s.metrics != nil {
				s.metrics.RecordCacheHit(ctx, tenantID)
			}
			return cached, nil
		}
		if s.metrics != nil {
			s.metrics.RecordCacheMiss(ctx, tenantID)
		}
	}

	template, err := s.templateRepo.FindDefault(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to load default template: %w", err)
	}
	if template == nil {
		return nil, nil
	}

	if s.cache != nil {
		if err := s.cache.SetDefault(ctx, template, 0); err != nil {
			s.logger.Warn("failed to cache default template", zap.Error(err))
		}
	}
	return template, nil
}

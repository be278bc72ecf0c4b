package printing

import (
	"context"
	"errors"
	"fmt"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/bizledger/backend/internal/domain/shared"
	infra "github.com/bizledger/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// TemplateService handles receipt template management.
// The cache is optional; a nil cache turns invalidation into a no-op so the
// service works identically in cacheless deployments and tests.
type TemplateService struct {
	templateRepo printing.ReceiptTemplateRepository
	cache        printing.TemplateCache
	logger       *zap.Logger
}

// NewTemplateService creates a new TemplateService
func NewTemplateService(
	templateRepo printing.ReceiptTemplateRepository,
	cache printing.TemplateCache,
	logger *zap.Logger,
) *TemplateService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TemplateService{
		templateRepo: templateRepo,
		cache:        cache,
		logger:       logger,
	}
}

// CreateTemplate creates a new receipt template
func (s *TemplateService) CreateTemplate(ctx context.Context, tenantID uuid.UUID, req CreateTemplateRequest) (*TemplateResponse, error) {
	exists, err := s.templateRepo.ExistsByName(ctx, tenantID, req.Name, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to check template existence: %w", err)
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this name already exists")
	}

	paperSize := printing.PaperSize(req.PaperSize)
	if !paperSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_INPUT", "Invalid paper size")
	}

	accentColor := req.AccentColor
	if accentColor == "" {
		accentColor = printing.DefaultAccentColor
	}

	template, err := printing.NewReceiptTemplate(
		tenantID,
		req.Name,
		accentColor,
		paperSize,
		toDomainSections(req.Sections),
	)
	if err != nil {
		return nil, err
	}

	if req.Description != "" {
		if err := template.Update(req.Name, req.Description); err != nil {
			return nil, err
		}
	}

	if req.Border != nil {
		border, err := printing.NewDocumentBorder(
			req.Border.Enabled,
			req.Border.Width,
			req.Border.Style,
			req.Border.Color,
			req.Border.Radius,
			req.Border.Margin,
		)
		if err != nil {
			return nil, err
		}
		template.SetBorder(border)
	}

	if req.IsDefault {
		if err := s.templateRepo.UnsetDefaultForTenant(ctx, tenantID); err != nil {
			return nil, fmt.Errorf("failed to clear existing default: %w", err)
		}
		if err := template.SetAsDefault(); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	if req.IsDefault {
		s.invalidateDefault(ctx, tenantID)
	}

	s.logger.Info("receipt template created",
		zap.String("id", template.ID.String()),
		zap.String("name", template.Name),
		zap.String("tenantId", tenantID.String()))

	return toTemplateResponse(template), nil
}

// GetTemplate retrieves a template by ID
func (s *TemplateService) GetTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, tenantID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	return toTemplateResponse(template), nil
}

// ListTemplates retrieves a paginated list of templates
func (s *TemplateService) ListTemplates(ctx context.Context, tenantID uuid.UUID, req ListTemplatesRequest) (*ListTemplatesResponse, error) {
	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	if req.Status != "" {
		filter.Filters = map[string]interface{}{"status": req.Status}
	}

	templates, err := s.templateRepo.FindAll(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list templates: %w", err)
	}

	total, err := s.templateRepo.Count(ctx, tenantID, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to count templates: %w", err)
	}

	items := make([]TemplateResponse, len(templates))
	for i, t := range templates {
		items[i] = *toTemplateResponse(&t)
	}

	return &ListTemplatesResponse{
		Items: items,
		Total: total,
		Page:  req.Page,
		Size:  req.PageSize,
	}, nil
}

// UpdateTemplate updates an existing template
func (s *TemplateService) UpdateTemplate(ctx context.Context, tenantID, templateID uuid.UUID, req UpdateTemplateRequest) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, tenantID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if req.Name != nil && *req.Name != template.Name {
		exists, err := s.templateRepo.ExistsByName(ctx, tenantID, *req.Name, &templateID)
		if err != nil {
			return nil, fmt.Errorf("failed to check template existence: %w", err)
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Template with this name already exists")
		}
	}

	if req.Name != nil || req.Description != nil {
		name := template.Name
		if req.Name != nil {
			name = *req.Name
		}
		description := template.Description
		if req.Description != nil {
			description = *req.Description
		}
		if err := template.Update(name, description); err != nil {
			return nil, err
		}
	}

	if req.AccentColor != nil {
		if err := template.SetAccentColor(*req.AccentColor); err != nil {
			return nil, err
		}
	}

	if req.PaperSize != nil {
		if err := template.SetPaperSize(printing.PaperSize(*req.PaperSize)); err != nil {
			return nil, err
		}
	}

	if req.Border != nil {
		border, err := printing.NewDocumentBorder(
			req.Border.Enabled,
			req.Border.Width,
			req.Border.Style,
			req.Border.Color,
			req.Border.Radius,
			req.Border.Margin,
		)
		if err != nil {
			return nil, err
		}
		template.SetBorder(border)
	}

	if req.Sections != nil {
		if err := template.UpdateSections(toDomainSections(*req.Sections)); err != nil {
			return nil, err
		}
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.invalidateTemplate(ctx, tenantID, templateID, template.IsDefault)

	s.logger.Info("receipt template updated",
		zap.String("id", template.ID.String()),
		zap.String("name", template.Name))

	return toTemplateResponse(template), nil
}

// DeleteTemplate deletes a template
func (s *TemplateService) DeleteTemplate(ctx context.Context, tenantID, templateID uuid.UUID) error {
	template, err := s.templateRepo.FindByID(ctx, tenantID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return fmt.Errorf("failed to get template: %w", err)
	}

	// Deleting the default would leave renders without a tenant template
	if template.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Cannot delete default template. Set another template as default first.")
	}

	if err := s.templateRepo.Delete(ctx, tenantID, templateID); err != nil {
		return fmt.Errorf("failed to delete template: %w", err)
	}

	s.invalidateTemplate(ctx, tenantID, templateID, false)

	s.logger.Info("receipt template deleted",
		zap.String("id", templateID.String()))

	return nil
}

// SetDefaultTemplate sets a template as the tenant's default
func (s *TemplateService) SetDefaultTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, tenantID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := s.templateRepo.UnsetDefaultForTenant(ctx, tenantID); err != nil {
		return nil, fmt.Errorf("failed to clear existing default: %w", err)
	}

	if err := template.SetAsDefault(); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.invalidateDefault(ctx, tenantID)

	s.logger.Info("receipt template set as default",
		zap.String("id", template.ID.String()),
		zap.String("tenantId", tenantID.String()))

	return toTemplateResponse(template), nil
}

// ActivateTemplate activates a template
func (s *TemplateService) ActivateTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	return s.transition(ctx, tenantID, templateID, (*printing.ReceiptTemplate).Activate)
}

// DeactivateTemplate deactivates a template
func (s *TemplateService) DeactivateTemplate(ctx context.Context, tenantID, templateID uuid.UUID) (*TemplateResponse, error) {
	return s.transition(ctx, tenantID, templateID, (*printing.ReceiptTemplate).Deactivate)
}

func (s *TemplateService) transition(ctx context.Context, tenantID, templateID uuid.UUID, op func(*printing.ReceiptTemplate) error) (*TemplateResponse, error) {
	template, err := s.templateRepo.FindByID(ctx, tenantID, templateID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Template not found")
		}
		return nil, fmt.Errorf("failed to get template: %w", err)
	}

	if err := op(template); err != nil {
		return nil, err
	}

	if err := s.templateRepo.Save(ctx, template); err != nil {
		return nil, fmt.Errorf("failed to save template: %w", err)
	}

	s.invalidateTemplate(ctx, tenantID, templateID, template.IsDefault)

	return toTemplateResponse(template), nil
}

// GetPresets returns all built-in receipt layouts
func (s *TemplateService) GetPresets() []PresetResponse {
	presets := infra.GetPresetTemplates()
	result := make([]PresetResponse, len(presets))
	for i, p := range presets {
		result[i] = PresetResponse{
			Key:         p.Key,
			Name:        p.Name,
			Description: p.Description,
			AccentColor: p.AccentColor,
			PaperSize:   string(p.PaperSize),
			IsDefault:   p.IsDefault,
			Sections:    toSectionDTOs(p.Sections),
		}
	}
	return result
}

// GetSectionTypes returns all renderable section types
func (s *TemplateService) GetSectionTypes() []SectionTypeResponse {
	types := printing.AllSectionTypes()
	result := make([]SectionTypeResponse, len(types))
	for i, st := range types {
		result[i] = SectionTypeResponse{
			Code:        string(st),
			DisplayName: st.DisplayName(),
		}
	}
	return result
}

// GetPaperSizes returns all available paper sizes
func (s *TemplateService) GetPaperSizes() []PaperSizeResponse {
	sizes := printing.AllPaperSizes()
	result := make([]PaperSizeResponse, len(sizes))
	for i, ps := range sizes {
		result[i] = PaperSizeResponse{
			Code:  string(ps),
			Width: ps.WidthPoints(),
		}
	}
	return result
}

// invalidateTemplate drops the cached copy of a template after a mutation.
// Cache failures are logged, never surfaced; the database remains the source
// of truth and stale entries expire on their own TTL.
func (s *TemplateService) invalidateTemplate(ctx context.Context, tenantID, templateID uuid.UUID, wasDefault bool) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, tenantID, templateID); err != nil {
		s.logger.Warn("failed to invalidate template cache",
			zap.String("templateId", templateID.String()),
			zap.Error(err))
	}
	if wasDefault {
		s.invalidateDefault(ctx, tenantID)
	}
}

func (s *TemplateService) invalidateDefault(ctx context.Context, tenantID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteDefault(ctx, tenantID); err != nil {
		s.logger.Warn("failed to invalidate default template cache",
			zap.String("tenantId", tenantID.String()),
			zap.Error(err))
	}
}

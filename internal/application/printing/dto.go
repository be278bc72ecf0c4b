package printing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
	infra "github.com/bizledger/backend/internal/infrastructure/printing"
	"github.com/google/uuid"
)

// =============================================================================
// Template DTOs
// =============================================================================

// SectionDTO is the wire form of one template section
type SectionDTO struct {
	ID    string         `json:"id" binding:"required"`
	Type  string         `json:"type" binding:"required"`
	Props map[string]any `json:"props"`
}

// BorderDTO is the wire form of the document border
type BorderDTO struct {
	Enabled bool    `json:"enabled"`
	Width   float64 `json:"width" binding:"min=0,max=20"`
	Style   string  `json:"style" binding:"omitempty,oneof=solid dashed dotted"`
	Color   string  `json:"color"`
	Radius  float64 `json:"radius" binding:"min=0"`
	Margin  float64 `json:"margin" binding:"min=0"`
}

// CreateTemplateRequest represents a request to create a new receipt template
type CreateTemplateRequest struct {
	Name        string       `json:"name" binding:"required,min=1,max=100"`
	Description string       `json:"description" binding:"max=500"`
	AccentColor string       `json:"accent_color" binding:"omitempty,hexcolor"`
	PaperSize   string       `json:"paper_size" binding:"required"`
	Border      *BorderDTO   `json:"border"`
	Sections    []SectionDTO `json:"sections"`
	IsDefault   bool         `json:"is_default"`
}

// UpdateTemplateRequest represents a request to update a receipt template
type UpdateTemplateRequest struct {
	Name        *string       `json:"name" binding:"omitempty,min=1,max=100"`
	Description *string       `json:"description" binding:"omitempty,max=500"`
	AccentColor *string       `json:"accent_color" binding:"omitempty,hexcolor"`
	PaperSize   *string       `json:"paper_size"`
	Border      *BorderDTO    `json:"border"`
	Sections    *[]SectionDTO `json:"sections"`
}

// ListTemplatesRequest represents a request to list templates
type ListTemplatesRequest struct {
	Page     int    `form:"page" binding:"min=0"`
	PageSize int    `form:"page_size" binding:"min=0,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

// TemplateResponse represents a receipt template in API responses
type TemplateResponse struct {
	ID          string       `json:"id"`
	TenantID    string       `json:"tenant_id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	AccentColor string       `json:"accent_color"`
	PaperSize   string       `json:"paper_size"`
	Border      BorderDTO    `json:"border"`
	Sections    []SectionDTO `json:"sections"`
	IsDefault   bool         `json:"is_default"`
	Status      string       `json:"status"`
	Version     int          `json:"version"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ListTemplatesResponse represents a paginated list of templates
type ListTemplatesResponse struct {
	Items []TemplateResponse `json:"items"`
	Total int64              `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// PresetResponse represents a built-in receipt layout
type PresetResponse struct {
	Key         string       `json:"key"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	AccentColor string       `json:"accent_color"`
	PaperSize   string       `json:"paper_size"`
	IsDefault   bool         `json:"is_default"`
	Sections    []SectionDTO `json:"sections"`
}

// SectionTypeResponse represents one renderable section type
type SectionTypeResponse struct {
	Code        string `json:"code"`
	DisplayName string `json:"display_name"`
}

// PaperSizeResponse represents an available paper size with its width in points
type PaperSizeResponse struct {
	Code  string  `json:"code"`
	Width float64 `json:"width"`
}

// =============================================================================
// Render DTOs
// =============================================================================

// RenderReceiptRequest represents a request to render a receipt document.
// TemplateID is optional; without it the tenant's default template is used,
// falling back to the built-in preset when no default exists.
type RenderReceiptRequest struct {
	TemplateID *uuid.UUID        `json:"template_id"`
	Company    infra.CompanyInfo `json:"company"`
	Receipt    infra.ReceiptData `json:"receipt"`
	Archive    bool              `json:"archive"`
}

// RenderReceiptResponse carries the composed document tree and its HTML form
type RenderReceiptResponse struct {
	TemplateID      string          `json:"template_id"`
	TemplateName    string          `json:"template_name"`
	PaperSize       string          `json:"paper_size"`
	Document        *infra.Document `json:"document"`
	HTML            string          `json:"html"`
	SkippedSections int             `json:"skipped_sections"`
	ArchiveURL      string          `json:"archive_url,omitempty"`
}

// =============================================================================
// Mapping helpers
// =============================================================================

func toSectionDTOs(sections printing.Sections) []SectionDTO {
	out := make([]SectionDTO, len(sections))
	for i, s := range sections {
		out[i] = SectionDTO{
			ID:    s.ID,
			Type:  string(s.Type),
			Props: s.Props,
		}
	}
	return out
}

func toDomainSections(sections []SectionDTO) printing.Sections {
	out := make(printing.Sections, len(sections))
	for i, s := range sections {
		out[i] = printing.Section{
			ID:    s.ID,
			Type:  printing.SectionType(s.Type),
			Props: s.Props,
		}
	}
	return out
}

func toTemplateResponse(t *printing.ReceiptTemplate) *TemplateResponse {
	return &TemplateResponse{
		ID:          t.ID.String(),
		TenantID:    t.TenantID.String(),
		Name:        t.Name,
		Description: t.Description,
		AccentColor: t.AccentColor,
		PaperSize:   string(t.PaperSize),
		Border: BorderDTO{
			Enabled: t.Border.Enabled,
			Width:   t.Border.Width,
			Style:   t.Border.Style,
			Color:   t.Border.Color,
			Radius:  t.Border.Radius,
			Margin:  t.Border.Margin,
		},
		Sections:  toSectionDTOs(t.Sections),
		IsDefault: t.IsDefault,
		Status:    string(t.Status),
		Version:   t.Version,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

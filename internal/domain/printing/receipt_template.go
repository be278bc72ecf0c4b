package printing

import (
	"regexp"
	"strings"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// DefaultAccentColor is used when a template does not carry a base color.
const DefaultAccentColor = "#667eea"

var hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ReceiptTemplate is the aggregate root for a customizable receipt layout:
// a single accent color, an optional document border and an ordered list of
// typed sections. The rendering engine interprets it together with company
// and transaction data to produce a printable document.
type ReceiptTemplate struct {
	shared.TenantAggregateRoot
	Name        string
	Description string
	AccentColor string // base hex color, resolution target for accent tokens
	PaperSize   PaperSize
	Border      DocumentBorder
	Sections    Sections
	IsDefault   bool
	Status      TemplateStatus
}

// NewReceiptTemplate creates a new receipt template
func NewReceiptTemplate(
	tenantID uuid.UUID,
	name string,
	accentColor string,
	paperSize PaperSize,
	sections Sections,
) (*ReceiptTemplate, error) {
	if err := validateTemplateName(name); err != nil {
		return nil, err
	}
	if err := validateAccentColor(accentColor); err != nil {
		return nil, err
	}
	if !paperSize.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAPER_SIZE", "Invalid paper size")
	}
	if err := sections.Validate(); err != nil {
		return nil, err
	}

	template := &ReceiptTemplate{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Name:                strings.TrimSpace(name),
		AccentColor:         accentColor,
		PaperSize:           paperSize,
		Border:              DisabledBorder(),
		Sections:            sections,
		IsDefault:           false,
		Status:              TemplateStatusActive,
	}

	template.AddDomainEvent(NewReceiptTemplateCreatedEvent(template))

	return template, nil
}

// Update updates the template's basic information
func (t *ReceiptTemplate) Update(name, description string) error {
	if err := validateTemplateName(name); err != nil {
		return err
	}

	t.Name = strings.TrimSpace(name)
	t.Description = strings.TrimSpace(description)
	t.touch()

	t.AddDomainEvent(NewReceiptTemplateUpdatedEvent(t))

	return nil
}

// UpdateSections replaces the ordered section list
func (t *ReceiptTemplate) UpdateSections(sections Sections) error {
	if err := sections.Validate(); err != nil {
		return err
	}

	t.Sections = sections
	t.touch()

	t.AddDomainEvent(NewReceiptTemplateUpdatedEvent(t))

	return nil
}

// SetAccentColor sets the template's base color
func (t *ReceiptTemplate) SetAccentColor(color string) error {
	if err := validateAccentColor(color); err != nil {
		return err
	}

	t.AccentColor = color
	t.touch()

	return nil
}

// SetPaperSize sets the target receipt paper size
func (t *ReceiptTemplate) SetPaperSize(paperSize PaperSize) error {
	if !paperSize.IsValid() {
		return shared.NewDomainError("INVALID_PAPER_SIZE", "Invalid paper size")
	}

	t.PaperSize = paperSize
	t.touch()

	return nil
}

// SetBorder sets the document-level border
func (t *ReceiptTemplate) SetBorder(border DocumentBorder) {
	t.Border = border
	t.touch()

	t.AddDomainEvent(NewReceiptTemplateUpdatedEvent(t))
}

// SetAsDefault marks this template as the tenant's default.
// The caller must ensure only one template is default per tenant.
func (t *ReceiptTemplate) SetAsDefault() error {
	if t.Status != TemplateStatusActive {
		return shared.NewDomainError("INVALID_STATE", "Cannot set inactive template as default")
	}

	if t.IsDefault {
		return nil
	}

	t.IsDefault = true
	t.touch()

	t.AddDomainEvent(NewReceiptTemplateSetAsDefaultEvent(t))

	return nil
}

// UnsetDefault removes the default flag from this template
func (t *ReceiptTemplate) UnsetDefault() {
	if !t.IsDefault {
		return
	}

	t.IsDefault = false
	t.touch()
}

// Activate activates the template
func (t *ReceiptTemplate) Activate() error {
	if t.Status == TemplateStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Template is already active")
	}

	t.Status = TemplateStatusActive
	t.touch()

	return nil
}

// Deactivate deactivates the template
func (t *ReceiptTemplate) Deactivate() error {
	if t.Status == TemplateStatusInactive {
		return shared.NewDomainError("ALREADY_INACTIVE", "Template is already inactive")
	}

	if t.IsDefault {
		return shared.NewDomainError("INVALID_STATE", "Cannot deactivate a default template. Set another template as default first.")
	}

	t.Status = TemplateStatusInactive
	t.touch()

	return nil
}

// IsActive returns true if the template is active
func (t *ReceiptTemplate) IsActive() bool {
	return t.Status == TemplateStatusActive
}

// IsEmpty returns true when the template has no sections at all; the engine
// renders a fallback notice for such templates instead of failing.
func (t *ReceiptTemplate) IsEmpty() bool {
	return len(t.Sections) == 0
}

func (t *ReceiptTemplate) touch() {
	t.BaseEntity.Touch()
	t.IncrementVersion()
}

// Validation functions

func validateTemplateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot be empty")
	}
	if len(trimmed) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Template name cannot exceed 100 characters")
	}
	return nil
}

func validateAccentColor(color string) error {
	if !hexColorPattern.MatchString(color) {
		return shared.NewDomainError("INVALID_COLOR", "Accent color must be a 3- or 6-digit hex color")
	}
	return nil
}

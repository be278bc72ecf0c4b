package printing

import (
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Event types for receipt template lifecycle
const (
	EventReceiptTemplateCreated      = "receipt_template.created"
	EventReceiptTemplateUpdated      = "receipt_template.updated"
	EventReceiptTemplateDeleted      = "receipt_template.deleted"
	EventReceiptTemplateSetAsDefault = "receipt_template.set_as_default"
)

const aggregateTypeReceiptTemplate = "ReceiptTemplate"

// ReceiptTemplateCreatedEvent is raised when a new template is created
type ReceiptTemplateCreatedEvent struct {
	shared.BaseDomainEvent
	Name         string    `json:"name"`
	AccentColor  string    `json:"accent_color"`
	PaperSize    PaperSize `json:"paper_size"`
	SectionCount int       `json:"section_count"`
}

// NewReceiptTemplateCreatedEvent creates a ReceiptTemplateCreatedEvent
func NewReceiptTemplateCreatedEvent(t *ReceiptTemplate) *ReceiptTemplateCreatedEvent {
	return &ReceiptTemplateCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReceiptTemplateCreated, aggregateTypeReceiptTemplate, t.ID, t.TenantID),
		Name:            t.Name,
		AccentColor:     t.AccentColor,
		PaperSize:       t.PaperSize,
		SectionCount:    len(t.Sections),
	}
}

// ReceiptTemplateUpdatedEvent is raised when a template's content changes
type ReceiptTemplateUpdatedEvent struct {
	shared.BaseDomainEvent
	Name         string `json:"name"`
	SectionCount int    `json:"section_count"`
	Version      int    `json:"version"`
}

// NewReceiptTemplateUpdatedEvent creates a ReceiptTemplateUpdatedEvent
func NewReceiptTemplateUpdatedEvent(t *ReceiptTemplate) *ReceiptTemplateUpdatedEvent {
	return &ReceiptTemplateUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReceiptTemplateUpdated, aggregateTypeReceiptTemplate, t.ID, t.TenantID),
		Name:            t.Name,
		SectionCount:    len(t.Sections),
		Version:         t.Version,
	}
}

// ReceiptTemplateDeletedEvent is raised when a template is removed
type ReceiptTemplateDeletedEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewReceiptTemplateDeletedEvent creates a ReceiptTemplateDeletedEvent
func NewReceiptTemplateDeletedEvent(tenantID, templateID uuid.UUID, name string) *ReceiptTemplateDeletedEvent {
	return &ReceiptTemplateDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReceiptTemplateDeleted, aggregateTypeReceiptTemplate, templateID, tenantID),
		Name:            name,
	}
}

// ReceiptTemplateSetAsDefaultEvent is raised when a template becomes the tenant default
type ReceiptTemplateSetAsDefaultEvent struct {
	shared.BaseDomainEvent
	Name string `json:"name"`
}

// NewReceiptTemplateSetAsDefaultEvent creates a ReceiptTemplateSetAsDefaultEvent
func NewReceiptTemplateSetAsDefaultEvent(t *ReceiptTemplate) *ReceiptTemplateSetAsDefaultEvent {
	return &ReceiptTemplateSetAsDefaultEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventReceiptTemplateSetAsDefault, aggregateTypeReceiptTemplate, t.ID, t.TenantID),
		Name:            t.Name,
	}
}

package printing

import (
	"context"

	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// ReceiptTemplateRepository defines persistence operations for receipt templates
type ReceiptTemplateRepository interface {
	// FindByID finds a template by ID within a tenant
	FindByID(ctx context.Context, tenantID, id uuid.UUID) (*ReceiptTemplate, error)
	// FindAll finds all templates for a tenant with optional filtering
	FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]ReceiptTemplate, error)
	// FindDefault finds the tenant's default template; returns nil, nil when none is set
	FindDefault(ctx context.Context, tenantID uuid.UUID) (*ReceiptTemplate, error)
	// ExistsByName checks whether a template with the given name exists,
	// optionally excluding one template ID (for renames)
	ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error)
	// Save creates or updates a template
	Save(ctx context.Context, template *ReceiptTemplate) error
	// UnsetDefaultForTenant clears the default flag on every template of the tenant
	UnsetDefaultForTenant(ctx context.Context, tenantID uuid.UUID) error
	// Delete removes a template
	Delete(ctx context.Context, tenantID, id uuid.UUID) error
	// Count counts templates for a tenant
	Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}

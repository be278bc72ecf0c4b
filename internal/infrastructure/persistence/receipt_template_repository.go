package persistence

import (
	"context"
	"errors"

	"github.com/bizledger/backend/internal/domain/printing"
	"github.com/bizledger/backend/internal/domain/shared"
	"github.com/bizledger/backend/internal/infrastructure/persistence/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReceiptTemplateSortFields defines allowed sort fields for receipt templates
var ReceiptTemplateSortFields = map[string]bool{
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"paper_size": true,
	"status":     true,
	"is_default": true,
}

// GormReceiptTemplateRepository implements ReceiptTemplateRepository using GORM
type GormReceiptTemplateRepository struct {
	db *gorm.DB
}

// NewGormReceiptTemplateRepository creates a new GormReceiptTemplateRepository
func NewGormReceiptTemplateRepository(db *gorm.DB) *GormReceiptTemplateRepository {
	return &GormReceiptTemplateRepository{db: db}
}

// FindByID finds a template by ID within a tenant
func (r *GormReceiptTemplateRepository) FindByID(ctx context.Context, tenantID, id uuid.UUID) (*printing.ReceiptTemplate, error) {
	var model models.ReceiptTemplateModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all templates for a tenant with optional filtering
func (r *GormReceiptTemplateRepository) FindAll(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]printing.ReceiptTemplate, error) {
	var templateModels []models.ReceiptTemplateModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ReceiptTemplateModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&templateModels).Error; err != nil {
		return nil, err
	}

	templates := make([]printing.ReceiptTemplate, len(templateModels))
	for i, model := range templateModels {
		templates[i] = *model.ToDomain()
	}
	return templates, nil
}

// FindDefault finds the tenant's default template
func (r *GormReceiptTemplateRepository) FindDefault(ctx context.Context, tenantID uuid.UUID) (*printing.ReceiptTemplate, error) {
	var model models.ReceiptTemplateModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // No default template, return nil without error
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// ExistsByName checks if a template with the given name exists within a tenant
func (r *GormReceiptTemplateRepository) ExistsByName(ctx context.Context, tenantID uuid.UUID, name string, excludeID *uuid.UUID) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).
		Model(&models.ReceiptTemplateModel{}).
		Where("tenant_id = ? AND name = ?", tenantID, name)

	if excludeID != nil {
		query = query.Where("id != ?", *excludeID)
	}

	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Save saves a template (insert or update)
func (r *GormReceiptTemplateRepository) Save(ctx context.Context, template *printing.ReceiptTemplate) error {
	model := models.ReceiptTemplateModelFromDomain(template)
	return r.db.WithContext(ctx).Save(model).Error
}

// UnsetDefaultForTenant clears the default flag on every template of the tenant
func (r *GormReceiptTemplateRepository) UnsetDefaultForTenant(ctx context.Context, tenantID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&models.ReceiptTemplateModel{}).
		Where("tenant_id = ? AND is_default = ?", tenantID, true).
		Update("is_default", false).Error
}

// Delete deletes a template by ID within a tenant
func (r *GormReceiptTemplateRepository) Delete(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Delete(&models.ReceiptTemplateModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count returns the total count of templates for a tenant matching the filter
func (r *GormReceiptTemplateRepository) Count(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ReceiptTemplateModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// applyFilter applies filter options to the query
func (r *GormReceiptTemplateRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	// Apply pagination
	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	// Apply ordering
	if filter.OrderBy != "" {
		sortField := ValidateSortField(filter.OrderBy, ReceiptTemplateSortFields, "")
		if sortField != "" {
			sortOrder := ValidateSortOrder(filter.OrderDir)
			query = query.Order(sortField + " " + sortOrder)
		} else {
			query = query.Order("created_at DESC")
		}
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReceiptTemplateRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	// Apply search
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR description ILIKE ?", searchPattern, searchPattern)
	}

	// Apply additional filters
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "is_default":
			query = query.Where("is_default = ?", value)
		case "paper_size":
			query = query.Where("paper_size = ?", value)
		}
	}

	return query
}

// Ensure GormReceiptTemplateRepository implements ReceiptTemplateRepository
var _ printing.ReceiptTemplateRepository = (*GormReceiptTemplateRepository)(nil)

package models

import (
	"encoding/json"

	"github.com/bizledger/backend/internal/domain/printing"
	"go.uber.org/zap"
)

// logger for model conversion errors (silent failures are logged for debugging)
var printingModelLogger = zap.L().Named("printing.models")

// ReceiptTemplateModel is the GORM model for receipt_templates table.
// Sections and the document border are stored as JSON columns since their
// shape is interpreted by the rendering engine rather than queried.
type ReceiptTemplateModel struct {
	TenantAggregateModel
	Name         string `gorm:"type:varchar(100);not null"`
	Description  string `gorm:"type:text"`
	AccentColor  string `gorm:"column:accent_color;type:varchar(7);not null;default:'#667eea'"`
	PaperSize    string `gorm:"column:paper_size;type:varchar(20);not null;default:'RECEIPT_80MM'"`
	BorderJSON   string `gorm:"column:border;type:jsonb;default:'{}'"`
	SectionsJSON string `gorm:"column:sections;type:jsonb;not null;default:'[]'"`
	IsDefault    bool   `gorm:"column:is_default;not null;default:false"`
	Status       string `gorm:"type:varchar(20);not null;default:'ACTIVE'"`
}

// TableName returns the table name for ReceiptTemplateModel
func (ReceiptTemplateModel) TableName() string {
	return "receipt_templates"
}

// ToDomain converts ReceiptTemplateModel to domain ReceiptTemplate
func (m *ReceiptTemplateModel) ToDomain() *printing.ReceiptTemplate {
	template := &printing.ReceiptTemplate{
		Name:        m.Name,
		Description: m.Description,
		AccentColor: m.AccentColor,
		PaperSize:   printing.PaperSize(m.PaperSize),
		Border:      printing.DisabledBorder(),
		Sections:    printing.Sections{},
		IsDefault:   m.IsDefault,
		Status:      printing.TemplateStatus(m.Status),
	}
	m.PopulateTenantAggregateRoot(&template.TenantAggregateRoot)

	// Parse border from JSON
	if m.BorderJSON != "" && m.BorderJSON != "{}" {
		var border printing.DocumentBorder
		if err := json.Unmarshal([]byte(m.BorderJSON), &border); err != nil {
			printingModelLogger.Warn("failed to parse border JSON",
				zap.String("template_id", m.ID.String()),
				zap.String("raw_json", m.BorderJSON),
				zap.Error(err))
		} else {
			template.Border = border
		}
	}

	// Parse sections from JSON
	if m.SectionsJSON != "" && m.SectionsJSON != "[]" {
		sections, err := printing.ParseSections([]byte(m.SectionsJSON))
		if err != nil {
			printingModelLogger.Warn("failed to parse sections JSON",
				zap.String("template_id", m.ID.String()),
				zap.String("raw_json", m.SectionsJSON),
				zap.Error(err))
		} else {
			template.Sections = sections
		}
	}

	return template
}

// ReceiptTemplateModelFromDomain creates a ReceiptTemplateModel from domain ReceiptTemplate
func ReceiptTemplateModelFromDomain(t *printing.ReceiptTemplate) *ReceiptTemplateModel {
	m := &ReceiptTemplateModel{
		Name:        t.Name,
		Description: t.Description,
		AccentColor: t.AccentColor,
		PaperSize:   string(t.PaperSize),
		IsDefault:   t.IsDefault,
		Status:      string(t.Status),
	}
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)

	// Serialize border to JSON
	if jsonBytes, err := json.Marshal(t.Border); err == nil {
		m.BorderJSON = string(jsonBytes)
	} else {
		m.BorderJSON = "{}"
	}

	// Serialize sections to JSON (nil serializes as [])
	if jsonBytes, err := json.Marshal(t.Sections); err == nil {
		m.SectionsJSON = string(jsonBytes)
	} else {
		m.SectionsJSON = "[]"
	}

	return m
}

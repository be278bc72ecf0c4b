package printing

import (
	"github.com/google/uuid"

	"github.com/bizledger/backend/internal/domain/printing"
)

// PresetTemplate is a built-in receipt layout. Presets seed new tenants with
// usable templates and back the render fallback when a tenant has no default
// template of its own.
type PresetTemplate struct {
	Key         string
	Name        string
	Description string
	AccentColor string
	PaperSize   printing.PaperSize
	Sections    printing.Sections
	IsDefault   bool // default preset used for fallback rendering
}

// GetPresetTemplates returns all built-in receipt layouts
func GetPresetTemplates() []PresetTemplate {
	return []PresetTemplate{
		{
			Key:         "classic",
			Name:        "Classic",
			Description: "Traditional receipt with a centered header, full item table and payment summary",
			AccentColor: printing.DefaultAccentColor,
			PaperSize:   printing.PaperSizeReceipt80MM,
			IsDefault:   true,
			Sections: printing.Sections{
				{ID: "header", Type: printing.SectionHeader, Props: map[string]any{
					"align": "center", "showLogo": true, "logoSize": "lg",
				}},
				{ID: "company", Type: printing.SectionCompanyInfo, Props: map[string]any{
					"align": "center", "fontSize": "sm",
				}},
				{ID: "divider-top", Type: printing.SectionDivider, Props: map[string]any{
					"style": "solid", "thickness": 1,
				}},
				{ID: "details", Type: printing.SectionReceiptDetails, Props: map[string]any{
					"layout": "horizontal", "showTime": true,
				}},
				{ID: "items", Type: printing.SectionItemsTable, Props: map[string]any{
					"headerBackground": "accent", "showBorders": true,
				}},
				{ID: "totals", Type: printing.SectionTotals, Props: map[string]any{}},
				{ID: "payment", Type: printing.SectionPaymentInfo, Props: map[string]any{
					"layout": "stacked",
				}},
				{ID: "divider-bottom", Type: printing.SectionDivider, Props: map[string]any{
					"style": "dashed", "thickness": 1,
				}},
				{ID: "footer", Type: printing.SectionCustomText, Props: map[string]any{
					"text": "Thank you for your patronage!", "align": "center", "fontSize": "sm",
				}},
			},
		},
		{
			Key:         "modern",
			Name:        "Modern",
			Description: "Accent-heavy layout with a highlighted receipt number and zebra item rows",
			AccentColor: printing.DefaultAccentColor,
			PaperSize:   printing.PaperSizeReceipt80MM,
			Sections: printing.Sections{
				{ID: "header", Type: printing.SectionHeader, Props: map[string]any{
					"align": "center", "showLogo": true, "logoSize": "xl",
					"backgroundColor": "accent", "padding": 3,
				}},
				{ID: "details", Type: printing.SectionReceiptDetails, Props: map[string]any{
					"layout": "grid", "gridCols": 2, "showTime": true,
					"numberBackground": "accentLight", "numberPadding": 1, "numberRadius": 3,
				}},
				{ID: "items", Type: printing.SectionItemsTable, Props: map[string]any{
					"headerBackground": "accent", "zebraStripes": true, "showBorders": false,
				}},
				{ID: "totals", Type: printing.SectionTotals, Props: map[string]any{
					"totalFontSize": "xl",
				}},
				{ID: "payment", Type: printing.SectionPaymentInfo, Props: map[string]any{
					"layout": "horizontal",
				}},
				{ID: "footer", Type: printing.SectionCustomText, Props: map[string]any{
					"text": "Powered by {companyName}", "align": "center", "fontSize": "xs", "italic": true,
				}},
			},
		},
		{
			Key:         "minimal",
			Name:        "Minimal",
			Description: "Compact monochrome layout for narrow thermal rolls",
			AccentColor: "#222222",
			PaperSize:   printing.PaperSizeReceipt80MM,
			Sections: printing.Sections{
				{ID: "header", Type: printing.SectionHeader, Props: map[string]any{
					"align": "center", "showLogo": false, "fontSize": "lg",
				}},
				{ID: "details", Type: printing.SectionReceiptDetails, Props: map[string]any{
					"layout": "inline", "showLabels": false,
				}},
				{ID: "divider-top", Type: printing.SectionDivider, Props: map[string]any{
					"style": "dashed", "thickness": 0.5, "color": "#999999",
				}},
				{ID: "items", Type: printing.SectionItemsTable, Props: map[string]any{
					"headerBackground": "transparent", "showBorders": false,
				}},
				{ID: "divider-mid", Type: printing.SectionDivider, Props: map[string]any{
					"style": "dashed", "thickness": 0.5, "color": "#999999",
				}},
				{ID: "totals", Type: printing.SectionTotals, Props: map[string]any{
					"showSubtotal": false, "showTax": false, "totalBorderWidth": 0,
				}},
			},
		},
	}
}

// GetPresetByKey finds a preset by its stable key
func GetPresetByKey(key string) *PresetTemplate {
	for _, p := range GetPresetTemplates() {
		if p.Key == key {
			return &p
		}
	}
	return nil
}

// DefaultPreset returns the preset used when a tenant has no template
func DefaultPreset() PresetTemplate {
	for _, p := range GetPresetTemplates() {
		if p.IsDefault {
			return p
		}
	}
	return GetPresetTemplates()[0]
}

// BuildTemplate materializes a preset into a tenant-owned template aggregate
func (p PresetTemplate) BuildTemplate(tenantID uuid.UUID) (*printing.ReceiptTemplate, error) {
	template, err := printing.NewReceiptTemplate(tenantID, p.Name, p.AccentColor, p.PaperSize, p.Sections)
	if err != nil {
		return nil, err
	}
	template.Description = p.Description
	return template, nil
}

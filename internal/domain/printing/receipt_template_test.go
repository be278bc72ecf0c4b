package printing

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSections() Sections {
	return Sections{
		{ID: "s1", Type: SectionHeader, Props: map[string]any{}},
		{ID: "s2", Type: SectionTotals, Props: map[string]any{"showTax": true}},
	}
}

func TestNewReceiptTemplate(t *testing.T) {
	tenantID := uuid.New()

	tests := []struct {
		name         string
		templateName string
		accentColor  string
		paperSize    PaperSize
		sections     Sections
		expectError  bool
		errorMsg     string
	}{
		{
			name:         "valid template",
			templateName: "Store Receipt",
			accentColor:  "#667eea",
			paperSize:    PaperSizeReceipt80MM,
			sections:     validSections(),
			expectError:  false,
		},
		{
			name:         "valid wide template with no sections",
			templateName: "Wide",
			accentColor:  "#000000",
			paperSize:    PaperSizeReceipt100MM,
			sections:     Sections{},
			expectError:  false,
		},
		{
			name:         "short hex accent",
			templateName: "Short hex",
			accentColor:  "#fff",
			paperSize:    PaperSizeReceipt80MM,
			sections:     nil,
			expectError:  false,
		},
		{
			name:         "empty name",
			templateName: "   ",
			accentColor:  "#667eea",
			paperSize:    PaperSizeReceipt80MM,
			sections:     validSections(),
			expectError:  true,
			errorMsg:     "name cannot be empty",
		},
		{
			name:         "name too long",
			templateName: strings.Repeat("a", 101),
			accentColor:  "#667eea",
			paperSize:    PaperSizeReceipt80MM,
			sections:     validSections(),
			expectError:  true,
			errorMsg:     "cannot exceed 100",
		},
		{
			name:         "invalid accent color",
			templateName: "Bad color",
			accentColor:  "purple",
			paperSize:    PaperSizeReceipt80MM,
			sections:     validSections(),
			expectError:  true,
			errorMsg:     "hex color",
		},
		{
			name:         "invalid paper size",
			templateName: "Bad paper",
			accentColor:  "#667eea",
			paperSize:    PaperSize("A4"),
			sections:     validSections(),
			expectError:  true,
			errorMsg:     "paper size",
		},
		{
			name:         "duplicate section ids",
			templateName: "Dup",
			accentColor:  "#667eea",
			paperSize:    PaperSizeReceipt80MM,
			sections: Sections{
				{ID: "a", Type: SectionHeader},
				{ID: "a", Type: SectionDivider},
			},
			expectError: true,
			errorMsg:    "Duplicate section id",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			template, err := NewReceiptTemplate(tenantID, tt.templateName, tt.accentColor, tt.paperSize, tt.sections)
			if tt.expectError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tenantID, template.TenantID)
			assert.Equal(t, strings.TrimSpace(tt.templateName), template.Name)
			assert.Equal(t, TemplateStatusActive, template.Status)
			assert.False(t, template.IsDefault)
			assert.Len(t, template.GetDomainEvents(), 1)
			assert.Equal(t, EventReceiptTemplateCreated, template.GetDomainEvents()[0].EventType())
		})
	}
}

func TestReceiptTemplate_UpdateSections(t *testing.T) {
	template, err := NewReceiptTemplate(uuid.New(), "T", "#667eea", PaperSizeReceipt80MM, validSections())
	require.NoError(t, err)
	template.ClearDomainEvents()
	initialVersion := template.Version

	// Unknown section types are allowed; older or partial templates must load.
	newSections := Sections{
		{ID: "x", Type: SectionType("qrCode"), Props: map[string]any{"value": "abc"}},
		{ID: "y", Type: SectionDivider},
	}
	require.NoError(t, template.UpdateSections(newSections))
	assert.Equal(t, newSections, template.Sections)
	assert.Equal(t, initialVersion+1, template.Version)
	assert.Equal(t, 1, template.Sections.KnownCount())

	// Structural validation still applies.
	err = template.UpdateSections(Sections{{ID: "", Type: SectionHeader}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "id cannot be empty")
}

func TestReceiptTemplate_DefaultLifecycle(t *testing.T) {
	template, err := NewReceiptTemplate(uuid.New(), "T", "#667eea", PaperSizeReceipt80MM, validSections())
	require.NoError(t, err)

	require.NoError(t, template.SetAsDefault())
	assert.True(t, template.IsDefault)

	// Setting default twice is a no-op.
	version := template.Version
	require.NoError(t, template.SetAsDefault())
	assert.Equal(t, version, template.Version)

	// A default template cannot be deactivated.
	err = template.Deactivate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "default")

	template.UnsetDefault()
	require.NoError(t, template.Deactivate())
	assert.False(t, template.IsActive())

	// An inactive template cannot become the default.
	err = template.SetAsDefault()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "inactive")

	require.NoError(t, template.Activate())
	assert.True(t, template.IsActive())
}

func TestReceiptTemplate_IsEmpty(t *testing.T) {
	template, err := NewReceiptTemplate(uuid.New(), "Empty", "#667eea", PaperSizeReceipt80MM, Sections{})
	require.NoError(t, err)
	assert.True(t, template.IsEmpty())

	require.NoError(t, template.UpdateSections(validSections()))
	assert.False(t, template.IsEmpty())
}

package printing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSections_PreservesOrder(t *testing.T) {
	payload := []byte(`[
		{"id":"a","type":"header","props":{"showLogo":true}},
		{"id":"b","type":"futureWidget","props":{}},
		{"id":"c","type":"divider","props":{"style":"double"}}
	]`)

	sections, err := ParseSections(payload)
	require.NoError(t, err)
	require.Len(t, sections, 3)
	assert.Equal(t, "a", sections[0].ID)
	assert.Equal(t, SectionHeader, sections[0].Type)
	assert.Equal(t, "b", sections[1].ID)
	assert.False(t, sections[1].Type.IsValid())
	assert.Equal(t, SectionDivider, sections[2].Type)
	assert.Equal(t, 2, sections.KnownCount())
}

func TestParseSections_Empty(t *testing.T) {
	sections, err := ParseSections(nil)
	require.NoError(t, err)
	assert.Empty(t, sections)

	sections, err = ParseSections([]byte("[]"))
	require.NoError(t, err)
	assert.Empty(t, sections)
}

func TestParseSections_InvalidJSON(t *testing.T) {
	_, err := ParseSections([]byte("{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not valid JSON")
}

func TestSections_MarshalNilAsEmptyArray(t *testing.T) {
	var s Sections
	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSections_Validate(t *testing.T) {
	tests := []struct {
		name     string
		sections Sections
		errorMsg string
	}{
		{"valid", Sections{{ID: "a", Type: SectionHeader}}, ""},
		{"unknown type allowed", Sections{{ID: "a", Type: SectionType("barcode")}}, ""},
		{"missing id", Sections{{Type: SectionHeader}}, "id cannot be empty"},
		{"missing type", Sections{{ID: "a"}}, "type cannot be empty"},
		{"duplicate id", Sections{{ID: "a", Type: SectionHeader}, {ID: "a", Type: SectionTotals}}, "Duplicate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.sections.Validate()
			if tt.errorMsg == "" {
				assert.NoError(t, err)
			} else {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
			}
		})
	}
}

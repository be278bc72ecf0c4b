package printing

import (
	"encoding/json"

	"github.com/bizledger/backend/internal/domain/shared"
)

// Section is one typed, styleable block within a template. Props is a free
// configuration map; its keys and value types depend on the section type and
// are resolved by the rendering engine, not validated here. Unknown section
// types are kept as-is so that templates saved by newer builders still load.
type Section struct {
	ID    string         `json:"id"`
	Type  SectionType    `json:"type"`
	Props map[string]any `json:"props"`
}

// Sections is the ordered list of sections of a template. Order is the
// top-to-bottom order of the printed document and must be preserved.
type Sections []Section

// Validate checks structural requirements: every section needs an id and a
// non-empty type string. Unknown type values are allowed by design.
func (s Sections) Validate() error {
	seen := make(map[string]bool, len(s))
	for _, sec := range s {
		if sec.ID == "" {
			return shared.NewDomainError("INVALID_SECTION", "Section id cannot be empty")
		}
		if sec.Type == "" {
			return shared.NewDomainError("INVALID_SECTION", "Section type cannot be empty")
		}
		if seen[sec.ID] {
			return shared.NewDomainError("INVALID_SECTION", "Duplicate section id: "+sec.ID)
		}
		seen[sec.ID] = true
	}
	return nil
}

// KnownCount returns the number of sections whose type the engine can render
func (s Sections) KnownCount() int {
	n := 0
	for _, sec := range s {
		if sec.Type.IsValid() {
			n++
		}
	}
	return n
}

// MarshalJSON keeps a nil list serializing as an empty array so that the
// stored column is always valid JSON.
func (s Sections) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]Section(s))
}

// ParseSections decodes a JSON section list. An empty input yields an empty
// list rather than an error.
func ParseSections(data []byte) (Sections, error) {
	if len(data) == 0 {
		return Sections{}, nil
	}
	var out Sections
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, shared.NewDomainError("INVALID_SECTIONS", "Sections payload is not valid JSON")
	}
	return out, nil
}

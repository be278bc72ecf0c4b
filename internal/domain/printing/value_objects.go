package printing

import "github.com/bizledger/backend/internal/domain/shared"

// DocumentBorder describes an optional border drawn once around the whole
// assembled document, not per section.
type DocumentBorder struct {
	Enabled bool    `json:"enabled"`
	Width   float64 `json:"width"`  // border width in points
	Style   string  `json:"style"`  // solid, dashed, dotted
	Color   string  `json:"color"`  // hex or color token
	Radius  float64 `json:"radius"` // corner radius in points
	Margin  float64 `json:"margin"` // gap between page edge and border in points
}

// NewDocumentBorder creates a validated DocumentBorder value object
func NewDocumentBorder(enabled bool, width float64, style, color string, radius, margin float64) (DocumentBorder, error) {
	if width < 0 || radius < 0 || margin < 0 {
		return DocumentBorder{}, shared.NewDomainError("INVALID_BORDER", "Border dimensions cannot be negative")
	}
	if width > 20 {
		return DocumentBorder{}, shared.NewDomainError("INVALID_BORDER", "Border width cannot exceed 20pt")
	}
	return DocumentBorder{
		Enabled: enabled,
		Width:   width,
		Style:   style,
		Color:   color,
		Radius:  radius,
		Margin:  margin,
	}, nil
}

// DisabledBorder returns the zero border used when a template has none
func DisabledBorder() DocumentBorder {
	return DocumentBorder{}
}

// IsZero returns true when the border is disabled and carries no styling
func (b DocumentBorder) IsZero() bool {
	return !b.Enabled && b.Width == 0 && b.Radius == 0 && b.Margin == 0
}

// Equals checks if two DocumentBorder values are equal
func (b DocumentBorder) Equals(other DocumentBorder) bool {
	return b == other
}

package printing

import (
	"encoding/json"
	"strconv"
	"strings"
)

// Props is the raw configuration map of a section as stored in a template.
// Values arrive JSON-decoded: numbers as float64, booleans as bool, strings
// as string. The accessors below resolve missing or mistyped values to the
// caller's default, so renderers only ever see fully-resolved values.
type Props map[string]any

// Str returns a string prop or the default
func (p Props) Str(key, def string) string {
	if v, ok := p[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return def
}

// Bool returns a boolean prop or the default
func (p Props) Bool(key string, def bool) bool {
	if v, ok := p[key]; ok {
		switch b := v.(type) {
		case bool:
			return b
		case string:
			if parsed, err := strconv.ParseBool(b); err == nil {
				return parsed
			}
		}
	}
	return def
}

// Float returns a numeric prop or the default. String-encoded numbers are
// accepted; anything unparseable falls back to the default.
func (p Props) Float(key string, def float64) float64 {
	v, ok := p[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	case json.Number:
		if f, err := n.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f
		}
	}
	return def
}

// Int returns an integer prop or the default
func (p Props) Int(key string, def int) int {
	return int(p.Float(key, float64(def)))
}

// BaseStyleProps is the normalized styling record shared by all sections.
// It is resolved once per section, before rendering.
type BaseStyleProps struct {
	Padding         int
	Align           Alignment
	BackgroundColor string
	TextColor       string
	BorderWidth     float64
	BorderColor     string
	BorderStyle     string
	BorderRadius    float64
	FontSize        string
	FontWeight      string
}

// normalizeBase resolves the common style props of a section with their
// documented defaults.
func normalizeBase(p Props) BaseStyleProps {
	return BaseStyleProps{
		Padding:         p.Int("padding", 2),
		Align:           ParseAlignment(p.Str("align", "left")),
		BackgroundColor: p.Str("backgroundColor", ""),
		TextColor:       p.Str("textColor", ""),
		BorderWidth:     p.Float("borderWidth", 0),
		BorderColor:     p.Str("borderColor", ColorAccent),
		BorderStyle:     p.Str("borderStyle", "solid"),
		BorderRadius:    p.Float("borderRadius", 0),
		FontSize:        p.Str("fontSize", "md"),
		FontWeight:      p.Str("fontWeight", "normal"),
	}
}

package printing

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color tokens understood by the resolver
const (
	ColorAccent      = "accent"
	ColorAccentLight = "accentLight"
	ColorTransparent = "transparent"
)

// Alignment of text within a block
type Alignment string

const (
	AlignLeft   Alignment = "left"
	AlignCenter Alignment = "center"
	AlignRight  Alignment = "right"
)

// Anchor is the cross-axis anchor used by container layouts
type Anchor string

const (
	AnchorStart  Anchor = "start"
	AnchorCenter Anchor = "center"
	AnchorEnd    Anchor = "end"
)

// fontSizes maps symbolic size tokens to point sizes
var fontSizes = map[string]float64{
	"xs":   8,
	"sm":   9,
	"md":   10,
	"base": 10,
	"lg":   12,
	"xl":   14,
	"2xl":  16,
	"3xl":  20,
	"4xl":  24,
}

// paddings maps symbolic padding steps to points
var paddings = map[int]float64{
	0: 0,
	1: 4,
	2: 8,
	3: 12,
	4: 16,
	5: 20,
	6: 24,
	8: 32,
}

// fontWeights maps symbolic weight tokens to numeric weights
var fontWeights = map[string]int{
	"light":    300,
	"normal":   400,
	"medium":   500,
	"semibold": 600,
	"bold":     700,
}

// Resolver resolves symbolic style tokens against a template's accent color.
// It is pure and deterministic; one instance is created per render and shared
// by every section renderer.
type Resolver struct {
	accent string
}

// NewResolver creates a style resolver for the given accent color
func NewResolver(accent string) *Resolver {
	if accent == "" {
		accent = defaultAccent
	}
	return &Resolver{accent: accent}
}

const defaultAccent = "#667eea"

// Accent returns the resolver's base color
func (r *Resolver) Accent() string {
	return r.accent
}

// ResolveColor resolves a symbolic color token to a concrete CSS color.
//   - "accent" resolves to the template's base color
//   - "accentLight" resolves to the base color lightened toward white
//   - a 6-digit hex with a 10/20/30 suffix resolves to the base hex at
//     10/20/30 percent alpha
//   - "transparent" and anything unrecognized pass through unchanged
func (r *Resolver) ResolveColor(token string) string {
	switch token {
	case "", ColorAccent:
		return r.accent
	case ColorAccentLight:
		return Lighten(r.accent, 0.9)
	case ColorTransparent:
		return ColorTransparent
	}

	if base, alpha, ok := splitAlphaSuffix(token); ok {
		if red, green, blue, ok := parseHex(base); ok {
			return fmt.Sprintf("rgba(%d, %d, %d, %s)", red, green, blue, alpha)
		}
	}

	return token
}

// splitAlphaSuffix recognizes the template builder's alpha convention: a
// 6-digit hex color with a trailing "10", "20" or "30" meaning 10/20/30%
// alpha. Only those three magic suffixes are recognized; any other 8-digit
// string passes through untouched.
func splitAlphaSuffix(token string) (base, alpha string, ok bool) {
	if len(token) != 9 || !strings.HasPrefix(token, "#") {
		return "", "", false
	}
	switch token[7:] {
	case "10":
		return token[:7], "0.1", true
	case "20":
		return token[:7], "0.2", true
	case "30":
		return token[:7], "0.3", true
	}
	return "", "", false
}

// Lighten blends a hex color toward white: each channel moves by
// amount*(255-channel). Amount 0 is the identity, amount 1 yields white.
// Non-hex input is returned unchanged.
func Lighten(color string, amount float64) string {
	red, green, blue, ok := parseHex(color)
	if !ok {
		return color
	}
	amount = math.Max(0, math.Min(1, amount))
	blend := func(c int) int {
		return int(math.Round(float64(c) + (255-float64(c))*amount))
	}
	return fmt.Sprintf("#%02x%02x%02x", blend(red), blend(green), blend(blue))
}

// IsDarkBackground reports whether white text should be used on the given
// background. The token is resolved first; luminance below 0.6 is dark.
// Transparent and unparseable values are never dark.
func (r *Resolver) IsDarkBackground(color string) bool {
	resolved := r.ResolveColor(color)
	red, green, blue, ok := parseHex(resolved)
	if !ok {
		return false
	}
	luminance := (0.299*float64(red) + 0.587*float64(green) + 0.114*float64(blue)) / 255
	return luminance < 0.6
}

// FontSize maps a symbolic size token to points; unmapped tokens resolve to 10
func (r *Resolver) FontSize(token string) float64 {
	if size, ok := fontSizes[token]; ok {
		return size
	}
	return 10
}

// Padding maps a symbolic padding step to points; unmapped steps resolve to 8
func (r *Resolver) Padding(step int) float64 {
	if pad, ok := paddings[step]; ok {
		return pad
	}
	return 8
}

// FontWeight maps a symbolic weight token to a numeric weight; default 400
func (r *Resolver) FontWeight(token string) int {
	if weight, ok := fontWeights[token]; ok {
		return weight
	}
	return 400
}

// ParseAlignment maps an alignment token to a layout alignment; default left
func ParseAlignment(token string) Alignment {
	switch Alignment(token) {
	case AlignCenter, AlignRight:
		return Alignment(token)
	default:
		return AlignLeft
	}
}

// AnchorFor maps a text alignment to the cross-axis anchor of container layouts
func AnchorFor(align Alignment) Anchor {
	switch align {
	case AlignCenter:
		return AnchorCenter
	case AlignRight:
		return AnchorEnd
	default:
		return AnchorStart
	}
}

// SectionBaseStyle computes the container style shared by every section:
// equal padding on all sides, text alignment and anchor, resolved background
// with luminance-based auto contrast, and border/radius only when positive.
// Precedence for the text color, highest first: explicit textColor prop,
// auto-contrast white on dark backgrounds, inherited default.
func (r *Resolver) SectionBaseStyle(base BaseStyleProps) ContainerStyle {
	style := ContainerStyle{
		Padding: r.Padding(base.Padding),
		Align:   base.Align,
		Anchor:  AnchorFor(base.Align),
	}

	if base.BackgroundColor != "" {
		style.Background = r.ResolveColor(base.BackgroundColor)
		if r.IsDarkBackground(base.BackgroundColor) {
			style.TextColor = "#ffffff"
		}
	}
	if base.TextColor != "" {
		style.TextColor = r.ResolveColor(base.TextColor)
	}
	if base.BorderWidth > 0 {
		style.Border = &BorderSpec{
			Width: base.BorderWidth,
			Color: r.ResolveColor(base.BorderColor),
			Style: base.BorderStyle,
		}
	}
	if base.BorderRadius > 0 {
		style.Radius = base.BorderRadius
	}

	return style
}

// parseHex parses #rgb and #rrggbb colors into channels
func parseHex(color string) (red, green, blue int, ok bool) {
	if !strings.HasPrefix(color, "#") {
		return 0, 0, 0, false
	}
	hex := color[1:]
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return 0, 0, 0, false
	}
	value, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, 0, 0, false
	}
	return int(value >> 16), int(value >> 8 & 0xff), int(value & 0xff), true
}

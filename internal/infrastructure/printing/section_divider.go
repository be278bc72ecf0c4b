package printing

import (
	"strconv"
	"strings"

	"github.com/bizledger/backend/internal/domain/printing"
)

// dividerProps is the normalized configuration of a divider section
type dividerProps struct {
	Style     printing.DividerStyle
	Thickness float64
	Color     string
	WidthPct  float64
	Centered  bool
}

// normalizeDivider resolves the divider props. Width accepts a percentage
// ("50%" or a number up to 100) or a fixed point width, which is converted
// to a percentage of the content width.
func normalizeDivider(p Props, contentWidth float64) dividerProps {
	style := printing.DividerStyle(p.Str("style", "solid"))
	if !style.IsValid() {
		style = printing.DividerSolid
	}

	thickness := p.Float("thickness", 1)
	if thickness <= 0 {
		thickness = 1
	}

	widthPct := 100.0
	if raw, ok := p["width"]; ok {
		switch w := raw.(type) {
		case string:
			if parsed, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(w), "%"), 64); err == nil {
				widthPct = parsed
			}
		default:
			value := p.Float("width", 100)
			if value > 100 && contentWidth > 0 {
				value = value / contentWidth * 100
			}
			widthPct = value
		}
	}
	if widthPct <= 0 || widthPct > 100 {
		widthPct = 100
	}

	return dividerProps{
		Style:     style,
		Thickness: thickness,
		Color:     p.Str("color", ColorAccent),
		WidthPct:  widthPct,
		Centered:  p.Bool("centered", false),
	}
}

const doubleDividerGap = 2.0

// renderDivider renders a solid, dashed or double horizontal rule. Partial
// width dividers are wrapped in a full-width container whose anchor follows
// the centered flag, so they can sit centered instead of left-aligned.
func renderDivider(rc *renderContext, p Props) []Block {
	props := normalizeDivider(p, rc.width)
	color := rc.style.ResolveColor(props.Color)

	var bars []Block
	switch props.Style {
	case printing.DividerDouble:
		top := NewBarBlock(props.Thickness, color, 100)
		bottom := NewBarBlock(props.Thickness, color, 100)
		bars = []Block{top, NewSpacerBlock(doubleDividerGap), bottom}
	case printing.DividerDashed:
		bar := NewBarBlock(props.Thickness, color, 100)
		bar.Dashed = true
		bars = []Block{bar}
	default:
		bars = []Block{NewBarBlock(props.Thickness, color, 100)}
	}

	anchor := AnchorStart
	if props.Centered {
		anchor = AnchorCenter
	}
	wrapper := ContainerStyle{Anchor: anchor, WidthPct: props.WidthPct}
	return []Block{NewContainerBlock(wrapper, bars...)}
}

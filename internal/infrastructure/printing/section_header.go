package printing

import "github.com/bizledger/backend/internal/domain/printing"

// headerProps is the normalized configuration of a header section
type headerProps struct {
	BaseStyleProps
	ShowLogo bool
	LogoSize printing.LogoSize
}

func normalizeHeader(p Props) headerProps {
	base := normalizeBase(p)
	base.Align = ParseAlignment(p.Str("align", "center"))
	base.FontSize = p.Str("fontSize", "xl")
	base.FontWeight = p.Str("fontWeight", "bold")
	return headerProps{
		BaseStyleProps: base,
		ShowLogo:       p.Bool("showLogo", true),
		LogoSize:       printing.LogoSize(p.Str("logoSize", "lg")),
	}
}

// renderHeader prints the company name, with the logo above it when enabled
// and available. A missing logo never aborts the section; the name simply
// renders alone.
func renderHeader(rc *renderContext, p Props) []Block {
	props := normalizeHeader(p)
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)

	var children []Block
	if props.ShowLogo && rc.company.Logo != "" {
		logo := NewImageBlock(rc.company.Logo, props.LogoSize.Points())
		logo.Anchor = style.Anchor
		children = append(children, logo)
	}
	if rc.company.Name != "" {
		children = append(children, textIn(style,
			rc.company.Name,
			rc.style.FontSize(props.FontSize),
			rc.style.FontWeight(props.FontWeight)))
	}

	return sectionContainer(rc, props.BaseStyleProps, children...)
}

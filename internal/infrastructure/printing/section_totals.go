package printing

// totalsProps is the normalized configuration of a totals section
type totalsProps struct {
	BaseStyleProps
	ShowSubtotal bool
	ShowDiscount bool
	ShowTax      bool
	TaxLabel     string

	// The grand total row carries its own border and font-size overrides.
	TotalBorderWidth float64
	TotalBorderColor string
	TotalFontSize    string
}

func normalizeTotals(p Props) totalsProps {
	base := normalizeBase(p)
	base.FontSize = p.Str("fontSize", "sm")
	return totalsProps{
		BaseStyleProps:   base,
		ShowSubtotal:     p.Bool("showSubtotal", true),
		ShowDiscount:     p.Bool("showDiscount", true),
		ShowTax:          p.Bool("showTax", true),
		TaxLabel:         p.Str("taxLabel", "Tax"),
		TotalBorderWidth: p.Float("totalBorderWidth", 1),
		TotalBorderColor: p.Str("totalBorderColor", ColorAccent),
		TotalFontSize:    p.Str("totalFontSize", "lg"),
	}
}

const discountColor = "#e53e3e"

// totalRow builds one label/value line, space-between
func totalRow(label, value string, size float64, weight int, color string) Block {
	return NewRowBlock("space-between",
		NewTextBlock(label, TextStyle{Size: size, Weight: weight, Color: color, Align: AlignLeft}),
		NewTextBlock(value, TextStyle{Size: size, Weight: weight, Color: color, Align: AlignRight}),
	)
}

// renderTotals renders subtotal, discount, tax and the grand total row.
// The discount line appears only when enabled and the discount is positive;
// the grand total always reads "TOTAL PAID" and prints the amount paid when
// present, else the total.
func renderTotals(rc *renderContext, p Props) []Block {
	props := normalizeTotals(p)
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)
	currency := rc.receipt.Currency

	var children []Block
	if props.ShowSubtotal {
		children = append(children,
			totalRow("Subtotal", FormatAmount(rc.receipt.Subtotal, currency), size, 400, style.TextColor))
	}
	if props.ShowDiscount {
		discount := amountOrZero(rc.receipt.Discount)
		if discount.IsPositive() {
			value := "-" + FormatAmount(&discount, currency)
			children = append(children, totalRow("Discount", value, size, 400, discountColor))
		}
	}
	if props.ShowTax {
		children = append(children,
			totalRow(props.TaxLabel, FormatAmount(rc.receipt.Tax, currency), size, 400, style.TextColor))
	}

	grandColor := style.TextColor
	if grandColor == "" {
		grandColor = rc.style.Accent()
	}
	paid := rc.receipt.PaidOrTotal()
	grand := totalRow("TOTAL PAID",
		FormatAmount(&paid, currency),
		rc.style.FontSize(props.TotalFontSize),
		rc.style.FontWeight("bold"),
		grandColor)

	grandStyle := ContainerStyle{Align: style.Align, Anchor: style.Anchor}
	if props.TotalBorderWidth > 0 {
		grandStyle.BorderTop = &BorderSpec{
			Width: props.TotalBorderWidth,
			Color: rc.style.ResolveColor(props.TotalBorderColor),
			Style: "solid",
		}
	}
	children = append(children, NewContainerBlock(grandStyle, grand))

	return sectionContainer(rc, props.BaseStyleProps, children...)
}

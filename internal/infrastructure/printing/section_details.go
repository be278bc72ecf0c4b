package printing

import (
	"strings"

	"github.com/bizledger/backend/internal/domain/printing"
)

// detailsProps is the normalized configuration of a receiptDetails section
type detailsProps struct {
	BaseStyleProps
	Layout            printing.DetailsLayout
	ShowTitle         bool
	Title             string
	ShowLabels        bool
	ShowReceiptNumber bool
	ShowDate          bool
	ShowTime          bool
	GridCols          int

	// The receipt-number line may carry its own background styling,
	// independent of the section's own background.
	NumberBackground string
	NumberPadding    int
	NumberRadius     float64
}

func normalizeDetails(p Props) detailsProps {
	base := normalizeBase(p)
	base.FontSize = p.Str("fontSize", "sm")

	layout := printing.DetailsLayout(p.Str("layout", "stacked"))
	if !layout.IsValid() {
		layout = printing.DetailsLayoutStacked
	}
	gridCols := p.Int("gridCols", 2)
	if gridCols != 1 {
		gridCols = 2
	}

	return detailsProps{
		BaseStyleProps:    base,
		Layout:            layout,
		ShowTitle:         p.Bool("showTitle", false),
		Title:             p.Str("title", "Receipt Details"),
		ShowLabels:        p.Bool("showLabels", true),
		ShowReceiptNumber: p.Bool("showReceiptNumber", true),
		ShowDate:          p.Bool("showDate", true),
		ShowTime:          p.Bool("showTime", false),
		GridCols:          gridCols,
		NumberBackground:  p.Str("numberBackground", ""),
		NumberPadding:     p.Int("numberPadding", 0),
		NumberRadius:      p.Float("numberRadius", 0),
	}
}

// detailField is one resolved receipt-details field. isNumber marks the
// receipt-number field, which can carry its own line styling.
type detailField struct {
	label    string
	value    string
	isNumber bool
}

// detailFields resolves the shown fields with their fallbacks: a missing
// receipt number becomes "N/A", missing date/time use the render clock.
// A shown field never renders blank.
func detailFields(rc *renderContext, props detailsProps) []detailField {
	var fields []detailField
	if props.ShowReceiptNumber {
		number := rc.receipt.ReceiptNumber
		if number == "" {
			number = "N/A"
		}
		fields = append(fields, detailField{label: "Receipt No", value: number, isNumber: true})
	}
	if props.ShowDate {
		fields = append(fields, detailField{label: "Date", value: rc.issuedAt().Format(dateFormat)})
	}
	if props.ShowTime {
		fields = append(fields, detailField{label: "Time", value: rc.issuedAt().Format(timeFormat)})
	}
	return fields
}

// detailsLayouts is the strategy table for the five mutually exclusive
// receiptDetails layouts.
var detailsLayouts = map[printing.DetailsLayout]func(rc *renderContext, props detailsProps, fields []detailField) []Block{
	printing.DetailsLayoutStacked:    detailsStacked,
	printing.DetailsLayoutCentered:   detailsCentered,
	printing.DetailsLayoutHorizontal: detailsHorizontal,
	printing.DetailsLayoutGrid:       detailsGrid,
	printing.DetailsLayoutInline:     detailsInline,
}

// renderReceiptDetails renders the receipt number, date and time in one of
// five layouts selected by the layout prop.
func renderReceiptDetails(rc *renderContext, p Props) []Block {
	props := normalizeDetails(p)
	fields := detailFields(rc, props)
	if len(fields) == 0 && !props.ShowTitle {
		return nil
	}
	return detailsLayouts[props.Layout](rc, props, fields)
}

// fieldLine renders "label: value" or just the value per showLabels
func fieldLine(props detailsProps, f detailField) string {
	if props.ShowLabels {
		return f.label + ": " + f.value
	}
	return f.value
}

func detailsStacked(rc *renderContext, props detailsProps, fields []detailField) []Block {
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)

	var children []Block
	if props.ShowTitle {
		children = append(children, textIn(style, props.Title, size+1, rc.style.FontWeight("semibold")))
	}
	for _, f := range fields {
		line := textIn(style, fieldLine(props, f), size, 400)
		if f.isNumber && props.NumberBackground != "" {
			numberStyle := ContainerStyle{
				Padding:    rc.style.Padding(props.NumberPadding),
				Background: rc.style.ResolveColor(props.NumberBackground),
				Radius:     props.NumberRadius,
				Align:      style.Align,
				Anchor:     style.Anchor,
			}
			if rc.style.IsDarkBackground(props.NumberBackground) {
				line.Style.Color = "#ffffff"
			}
			children = append(children, NewContainerBlock(numberStyle, line))
			continue
		}
		children = append(children, line)
	}
	return sectionContainer(rc, props.BaseStyleProps, children...)
}

// detailsCentered is the stacked layout forced to center alignment
func detailsCentered(rc *renderContext, props detailsProps, fields []detailField) []Block {
	props.Align = AlignCenter
	return detailsStacked(rc, props, fields)
}

// detailsHorizontal puts receipt number and date on one row, space-between,
// with the time (if shown) on its own row below.
func detailsHorizontal(rc *renderContext, props detailsProps, fields []detailField) []Block {
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)

	var topCells []Block
	var below []Block
	for _, f := range fields {
		text := textIn(style, fieldLine(props, f), size, 400)
		if f.label == "Time" {
			below = append(below, text)
			continue
		}
		topCells = append(topCells, text)
	}

	var children []Block
	if props.ShowTitle {
		children = append(children, textIn(style, props.Title, size+1, rc.style.FontWeight("semibold")))
	}
	if len(topCells) > 0 {
		children = append(children, NewRowBlock("space-between", topCells...))
	}
	children = append(children, below...)
	return sectionContainer(rc, props.BaseStyleProps, children...)
}

// detailsGrid arranges the fields into a 1- or 2-column grid. Every cell
// shows a small caption label above its value regardless of showLabels.
func detailsGrid(rc *renderContext, props detailsProps, fields []detailField) []Block {
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)

	cellWidthPct := 48.0
	if props.GridCols == 1 {
		cellWidthPct = 100.0
	}

	cells := make([]Block, 0, len(fields))
	for _, f := range fields {
		caption := NewTextBlock(f.label, TextStyle{Size: size - 2, Weight: 400, Color: "#666666", Align: style.Align})
		value := textIn(style, f.value, size, rc.style.FontWeight("medium"))
		cells = append(cells, NewContainerBlock(ContainerStyle{WidthPct: cellWidthPct}, caption, value))
	}

	var children []Block
	if props.ShowTitle {
		children = append(children, textIn(style, props.Title, size+1, rc.style.FontWeight("semibold")))
	}
	if len(cells) > 0 {
		children = append(children, NewGridBlock(props.GridCols, cellWidthPct, cells...))
	}
	return sectionContainer(rc, props.BaseStyleProps, children...)
}

// detailsInline joins all shown fields on a single line
func detailsInline(rc *renderContext, props detailsProps, fields []detailField) []Block {
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fieldLine(props, f))
	}

	var children []Block
	if props.ShowTitle {
		children = append(children, textIn(style, props.Title, size+1, rc.style.FontWeight("semibold")))
	}
	if len(parts) > 0 {
		children = append(children, textIn(style, strings.Join(parts, " | "), size, 400))
	}
	return sectionContainer(rc, props.BaseStyleProps, children...)
}

package printing

import "github.com/shopspring/decimal"

// itemsTableProps is the normalized configuration of an itemsTable section
type itemsTableProps struct {
	BaseStyleProps
	HeaderBackground string
	ZebraStripes     bool
	ShowBorders      bool
}

func normalizeItemsTable(p Props) itemsTableProps {
	base := normalizeBase(p)
	base.FontSize = p.Str("fontSize", "sm")
	return itemsTableProps{
		BaseStyleProps:   base,
		HeaderBackground: p.Str("headerBackground", ColorAccent),
		ZebraStripes:     p.Bool("zebraStripes", false),
		ShowBorders:      p.Bool("showBorders", true),
	}
}

// itemsColumns are the fixed column proportions of the items table.
// Only the item name column wraps; the numeric columns never break.
var itemsColumns = []TableColumn{
	{Title: "Item", WidthPct: 40, Align: AlignLeft, Wrap: true},
	{Title: "Qty", WidthPct: 15, Align: AlignCenter},
	{Title: "Price", WidthPct: 20, Align: AlignRight},
	{Title: "Total", WidthPct: 25, Align: AlignRight},
}

const zebraRowColor = "#f5f5f5"

// renderItemsTable renders the line items as a header row plus one row per
// item. The header defaults to the accent background with white text; an
// explicitly transparent header gets black text instead, so the header can
// never end up invisible-on-invisible.
func renderItemsTable(rc *renderContext, p Props) []Block {
	props := normalizeItemsTable(p)
	size := rc.style.FontSize(props.FontSize)

	headerBackground := rc.style.ResolveColor(props.HeaderBackground)
	headerText := "#ffffff"
	if headerBackground == ColorTransparent {
		headerText = "#000000"
	}
	header := TableRowStyle{
		Background: headerBackground,
		TextColor:  headerText,
		FontSize:   size,
		Weight:     rc.style.FontWeight("semibold"),
	}

	rows := make([]TableRow, 0, len(rc.receipt.Items))
	for i, item := range rc.receipt.Items {
		row := TableRow{Cells: []string{
			item.Name,
			formatQuantity(item.Quantity),
			FormatAmount(&item.UnitPrice, rc.receipt.Currency),
			FormatAmount(&item.Total, rc.receipt.Currency),
		}}
		if props.ZebraStripes && i%2 == 1 {
			row.Background = zebraRowColor
		}
		if props.ShowBorders {
			row.BorderBottom = &BorderSpec{Width: 0.5, Color: "#e2e2e2", Style: "solid"}
		}
		rows = append(rows, row)
	}

	table := NewTableBlock(itemsColumns, header, rows, size)
	return sectionContainer(rc, props.BaseStyleProps, table)
}

// formatQuantity prints whole quantities without decimals
func formatQuantity(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.String()
	}
	return q.StringFixed(2)
}

package printing

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
)

// pageTemplate is the self-contained HTML shell around a rendered document.
// The engine produces print-ready markup; pagination is left to the print
// medium via the fixed page width and auto height.
const pageTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<style>
  @page { size: {{printf "%.2f" .PageWidth}}pt auto; margin: 0; }
  body { margin: 0; font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; }
  .receipt { width: {{printf "%.2f" .PageWidth}}pt; padding: {{printf "%.2f" .Margin}}pt; box-sizing: border-box; }
  .receipt * { box-sizing: border-box; }
</style>
</head>
<body>
<div class="receipt">{{if .BorderCSS}}<div style="{{.BorderCSS}}">{{end}}{{.Body}}{{if .BorderCSS}}</div>{{end}}</div>
</body>
</html>
`

var compiledPageTemplate = template.Must(template.New("receipt-page").Parse(pageTemplate))

// HTMLWriter serializes a Document into self-contained HTML for previews.
// It is stateless and safe for concurrent use.
type HTMLWriter struct{}

// NewHTMLWriter creates an HTML writer
func NewHTMLWriter() *HTMLWriter {
	return &HTMLWriter{}
}

// Write renders the document tree to an HTML page string
func (w *HTMLWriter) Write(doc *Document) string {
	var body strings.Builder
	for _, block := range doc.Blocks {
		writeBlock(&body, block)
	}

	borderCSS := ""
	if doc.Border != nil {
		borderCSS = fmt.Sprintf("border:%.2fpt %s %s;", doc.Border.Width, cssBorderStyle(doc.Border.Style), doc.Border.Color)
		if doc.BorderRadius > 0 {
			borderCSS += fmt.Sprintf("border-radius:%.2fpt;", doc.BorderRadius)
		}
		if doc.BorderMargin > 0 {
			borderCSS += fmt.Sprintf("margin:%.2fpt;padding:%.2fpt;", doc.BorderMargin, doc.BorderMargin)
		}
	}

	var out bytes.Buffer
	err := compiledPageTemplate.Execute(&out, map[string]any{
		"PageWidth": doc.PageWidth,
		"Margin":    doc.Margin,
		"BorderCSS": template.CSS(borderCSS),
		"Body":      template.HTML(body.String()),
	})
	if err != nil {
		// The shell template is static and the data map is complete, so
		// execution cannot fail; keep the body renderable regardless.
		return body.String()
	}
	return out.String()
}

func writeBlock(b *strings.Builder, block Block) {
	switch v := block.(type) {
	case *TextBlock:
		writeText(b, v)
	case *ImageBlock:
		writeImage(b, v)
	case *RowBlock:
		writeRow(b, v)
	case *GridBlock:
		writeGrid(b, v)
	case *TableBlock:
		writeTable(b, v)
	case *BarBlock:
		writeBar(b, v)
	case *ContainerBlock:
		writeContainer(b, v)
	case *SpacerBlock:
		fmt.Fprintf(b, `<div style="height:%.2fpt"></div>`, v.Gap)
	}
}

func writeText(b *strings.Builder, t *TextBlock) {
	style := fmt.Sprintf("font-size:%.1fpt;font-weight:%d;line-height:%.2f;", t.Style.Size, t.Style.Weight, lineHeightFactor)
	if t.Style.Color != "" {
		style += "color:" + t.Style.Color + ";"
	}
	if t.Style.Align != "" {
		style += "text-align:" + string(t.Style.Align) + ";"
	}
	if t.Style.Italic {
		style += "font-style:italic;"
	}
	fmt.Fprintf(b, `<div style="%s">%s</div>`, style, template.HTMLEscapeString(t.Text))
}

func writeImage(b *strings.Builder, img *ImageBlock) {
	style := fmt.Sprintf("width:%.1fpt;height:%.1fpt;display:block;", img.Size, img.Size)
	switch img.Anchor {
	case AnchorCenter:
		style += "margin:0 auto;"
	case AnchorEnd:
		style += "margin-left:auto;"
	}
	fmt.Fprintf(b, `<img src="%s" style="%s">`, template.HTMLEscapeString(img.Ref), style)
}

func writeRow(b *strings.Builder, row *RowBlock) {
	justify := "flex-start"
	if row.Justify == "space-between" {
		justify = "space-between"
	}
	fmt.Fprintf(b, `<div style="display:flex;justify-content:%s;gap:4pt;">`, justify)
	for _, cell := range row.Cells {
		writeBlock(b, cell)
	}
	b.WriteString("</div>")
}

func writeGrid(b *strings.Builder, grid *GridBlock) {
	b.WriteString(`<div style="display:flex;flex-wrap:wrap;gap:4%;">`)
	for _, cell := range grid.Cells {
		writeBlock(b, cell)
	}
	b.WriteString("</div>")
}

func writeTable(b *strings.Builder, table *TableBlock) {
	fmt.Fprintf(b, `<table style="width:100%%;border-collapse:collapse;font-size:%.1fpt;">`, table.CellFontSize)

	headerStyle := fmt.Sprintf("font-size:%.1fpt;font-weight:%d;padding:2pt;", table.Header.FontSize, table.Header.Weight)
	if table.Header.Background != "" && table.Header.Background != ColorTransparent {
		headerStyle += "background:" + table.Header.Background + ";"
	}
	if table.Header.TextColor != "" {
		headerStyle += "color:" + table.Header.TextColor + ";"
	}
	b.WriteString("<thead><tr>")
	for _, col := range table.Columns {
		fmt.Fprintf(b, `<th style="%swidth:%.0f%%;text-align:%s;">%s</th>`,
			headerStyle, col.WidthPct, col.Align, template.HTMLEscapeString(col.Title))
	}
	b.WriteString("</tr></thead><tbody>")

	for _, row := range table.Rows {
		rowStyle := ""
		if row.Background != "" {
			rowStyle = "background:" + row.Background + ";"
		}
		fmt.Fprintf(b, `<tr style="%s">`, rowStyle)
		for i, cell := range row.Cells {
			cellStyle := "padding:2pt;"
			if i < len(table.Columns) {
				cellStyle += "text-align:" + string(table.Columns[i].Align) + ";"
				if !table.Columns[i].Wrap {
					cellStyle += "white-space:nowrap;"
				}
			}
			if row.BorderBottom != nil {
				cellStyle += fmt.Sprintf("border-bottom:%.2fpt %s %s;",
					row.BorderBottom.Width, cssBorderStyle(row.BorderBottom.Style), row.BorderBottom.Color)
			}
			fmt.Fprintf(b, `<td style="%s">%s</td>`, cellStyle, template.HTMLEscapeString(cell))
		}
		b.WriteString("</tr>")
	}
	b.WriteString("</tbody></table>")
}

func writeBar(b *strings.Builder, bar *BarBlock) {
	if bar.Dashed {
		fmt.Fprintf(b, `<div style="border-top:%.2fpt dashed %s;width:%.0f%%;"></div>`,
			bar.Thickness, bar.Color, bar.WidthPct)
		return
	}
	fmt.Fprintf(b, `<div style="height:%.2fpt;background:%s;width:%.0f%%;"></div>`,
		bar.Thickness, bar.Color, bar.WidthPct)
}

func writeContainer(b *strings.Builder, c *ContainerBlock) {
	style := ""
	if c.Style.Padding > 0 {
		style += fmt.Sprintf("padding:%.2fpt;", c.Style.Padding)
	}
	if c.Style.Background != "" && c.Style.Background != ColorTransparent {
		style += "background:" + c.Style.Background + ";"
	}
	if c.Style.TextColor != "" {
		style += "color:" + c.Style.TextColor + ";"
	}
	if c.Style.Align != "" {
		style += "text-align:" + string(c.Style.Align) + ";"
	}
	if c.Style.Border != nil {
		style += fmt.Sprintf("border:%.2fpt %s %s;", c.Style.Border.Width, cssBorderStyle(c.Style.Border.Style), c.Style.Border.Color)
	}
	if c.Style.BorderTop != nil {
		style += fmt.Sprintf("border-top:%.2fpt %s %s;padding-top:2pt;margin-top:2pt;",
			c.Style.BorderTop.Width, cssBorderStyle(c.Style.BorderTop.Style), c.Style.BorderTop.Color)
	}
	if c.Style.Radius > 0 {
		style += fmt.Sprintf("border-radius:%.2fpt;", c.Style.Radius)
	}
	if c.Style.WidthPct > 0 && c.Style.WidthPct < 100 {
		style += fmt.Sprintf("width:%.0f%%;", c.Style.WidthPct)
		switch c.Style.Anchor {
		case AnchorCenter:
			style += "margin-left:auto;margin-right:auto;"
		case AnchorEnd:
			style += "margin-left:auto;"
		}
	}
	fmt.Fprintf(b, `<div style="%s">`, style)
	for _, child := range c.Children {
		writeBlock(b, child)
	}
	b.WriteString("</div>")
}

// cssBorderStyle keeps border styles within the understood set
func cssBorderStyle(style string) string {
	switch style {
	case "dashed", "dotted":
		return style
	default:
		return "solid"
	}
}

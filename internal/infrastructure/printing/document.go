package printing

import (
	"math"
	"unicode/utf8"
)

// BlockKind tags the concrete type of a block in the document tree
type BlockKind string

const (
	BlockText      BlockKind = "text"
	BlockImage     BlockKind = "image"
	BlockRow       BlockKind = "row"
	BlockGrid      BlockKind = "grid"
	BlockTable     BlockKind = "table"
	BlockBar       BlockKind = "bar"
	BlockContainer BlockKind = "container"
	BlockSpacer    BlockKind = "spacer"
)

// lineHeightFactor and charWidthFactor drive the deterministic height
// estimator used for pagination. They approximate the metrics of the
// monospaced-ish receipt fonts the print service targets.
const (
	lineHeightFactor = 1.4
	charWidthFactor  = 0.55
)

// Block is one renderable node of the document tree
type Block interface {
	// BlockKind returns the tag identifying the concrete block type
	BlockKind() BlockKind
	// Height estimates the rendered height in points at the given width
	Height(width float64) float64
}

// BorderSpec describes a border line
type BorderSpec struct {
	Width float64 `json:"width"`
	Color string  `json:"color"`
	Style string  `json:"style"` // solid, dashed, dotted
}

// TextStyle is the resolved styling of a text block
type TextStyle struct {
	Size   float64   `json:"size"`
	Weight int       `json:"weight"`
	Color  string    `json:"color,omitempty"`
	Align  Alignment `json:"align,omitempty"`
	Italic bool      `json:"italic,omitempty"`
}

// TextBlock is a single line of styled text that wraps when too wide
type TextBlock struct {
	Kind  BlockKind `json:"kind"`
	Text  string    `json:"text"`
	Style TextStyle `json:"style"`
}

// NewTextBlock creates a text block
func NewTextBlock(text string, style TextStyle) *TextBlock {
	if style.Size == 0 {
		style.Size = 10
	}
	if style.Weight == 0 {
		style.Weight = 400
	}
	return &TextBlock{Kind: BlockText, Text: text, Style: style}
}

// BlockKind returns the block tag
func (b *TextBlock) BlockKind() BlockKind { return BlockText }

// Height estimates wrapped text height
func (b *TextBlock) Height(width float64) float64 {
	lines := estimateLines(b.Text, b.Style.Size, width)
	return float64(lines) * b.Style.Size * lineHeightFactor
}

// ImageBlock references a square image (the header logo) placed in the flow
type ImageBlock struct {
	Kind   BlockKind `json:"kind"`
	Ref    string    `json:"ref"`
	Size   float64   `json:"size"` // square edge length in points
	Anchor Anchor    `json:"anchor,omitempty"`
}

// NewImageBlock creates an image block
func NewImageBlock(ref string, size float64) *ImageBlock {
	return &ImageBlock{Kind: BlockImage, Ref: ref, Size: size}
}

// BlockKind returns the block tag
func (b *ImageBlock) BlockKind() BlockKind { return BlockImage }

// Height returns the fixed image height
func (b *ImageBlock) Height(width float64) float64 { return b.Size }

// RowBlock lays out its cells horizontally
type RowBlock struct {
	Kind    BlockKind `json:"kind"`
	Cells   []Block   `json:"cells"`
	Justify string    `json:"justify,omitempty"` // start, space-between
}

// NewRowBlock creates a row block
func NewRowBlock(justify string, cells ...Block) *RowBlock {
	return &RowBlock{Kind: BlockRow, Cells: cells, Justify: justify}
}

// BlockKind returns the block tag
func (b *RowBlock) BlockKind() BlockKind { return BlockRow }

// Height is the tallest cell at an even width split
func (b *RowBlock) Height(width float64) float64 {
	if len(b.Cells) == 0 {
		return 0
	}
	cellWidth := width / float64(len(b.Cells))
	max := 0.0
	for _, cell := range b.Cells {
		if h := cell.Height(cellWidth); h > max {
			max = h
		}
	}
	return max
}

// GridBlock arranges cells into fixed-width columns
type GridBlock struct {
	Kind         BlockKind `json:"kind"`
	Columns      int       `json:"columns"`
	CellWidthPct float64   `json:"cellWidthPct"`
	Cells        []Block   `json:"cells"`
}

// NewGridBlock creates a grid block
func NewGridBlock(columns int, cellWidthPct float64, cells ...Block) *GridBlock {
	if columns < 1 {
		columns = 1
	}
	return &GridBlock{Kind: BlockGrid, Columns: columns, CellWidthPct: cellWidthPct, Cells: cells}
}

// BlockKind returns the block tag
func (b *GridBlock) BlockKind() BlockKind { return BlockGrid }

// Height sums per-row maxima
func (b *GridBlock) Height(width float64) float64 {
	if len(b.Cells) == 0 {
		return 0
	}
	cellWidth := width * b.CellWidthPct / 100
	total := 0.0
	for i := 0; i < len(b.Cells); i += b.Columns {
		rowMax := 0.0
		for j := i; j < i+b.Columns && j < len(b.Cells); j++ {
			if h := b.Cells[j].Height(cellWidth); h > rowMax {
				rowMax = h
			}
		}
		total += rowMax
	}
	return total
}

// TableColumn describes one column of an items table
type TableColumn struct {
	Title    string    `json:"title"`
	WidthPct float64   `json:"widthPct"`
	Align    Alignment `json:"align"`
	Wrap     bool      `json:"wrap"` // only wrapping columns break long content
}

// TableRowStyle is the resolved style of the table header row
type TableRowStyle struct {
	Background string  `json:"background,omitempty"`
	TextColor  string  `json:"textColor,omitempty"`
	FontSize   float64 `json:"fontSize"`
	Weight     int     `json:"weight"`
}

// TableRow is one body row of a table
type TableRow struct {
	Cells        []string    `json:"cells"`
	Background   string      `json:"background,omitempty"`
	BorderBottom *BorderSpec `json:"borderBottom,omitempty"`
}

// TableBlock renders a header row and body rows at fixed column proportions
type TableBlock struct {
	Kind         BlockKind     `json:"kind"`
	Columns      []TableColumn `json:"columns"`
	Header       TableRowStyle `json:"header"`
	Rows         []TableRow    `json:"rows"`
	CellFontSize float64       `json:"cellFontSize"`
}

// NewTableBlock creates a table block
func NewTableBlock(columns []TableColumn, header TableRowStyle, rows []TableRow, cellFontSize float64) *TableBlock {
	return &TableBlock{Kind: BlockTable, Columns: columns, Header: header, Rows: rows, CellFontSize: cellFontSize}
}

// BlockKind returns the block tag
func (b *TableBlock) BlockKind() BlockKind { return BlockTable }

// Height estimates header plus body rows; wrapping columns may span lines
func (b *TableBlock) Height(width float64) float64 {
	total := b.Header.FontSize * lineHeightFactor * 1.3 // header padding
	for _, row := range b.Rows {
		maxLines := 1
		for i, cell := range row.Cells {
			if i >= len(b.Columns) || !b.Columns[i].Wrap {
				continue
			}
			colWidth := width * b.Columns[i].WidthPct / 100
			if lines := estimateLines(cell, b.CellFontSize, colWidth); lines > maxLines {
				maxLines = lines
			}
		}
		total += float64(maxLines) * b.CellFontSize * lineHeightFactor
	}
	return total
}

// BarBlock is a filled horizontal bar, the building block of dividers
type BarBlock struct {
	Kind      BlockKind `json:"kind"`
	Thickness float64   `json:"thickness"`
	Color     string    `json:"color"`
	WidthPct  float64   `json:"widthPct"`
	Dashed    bool      `json:"dashed,omitempty"`
}

// NewBarBlock creates a bar block spanning the given width percentage
func NewBarBlock(thickness float64, color string, widthPct float64) *BarBlock {
	return &BarBlock{Kind: BlockBar, Thickness: thickness, Color: color, WidthPct: widthPct}
}

// BlockKind returns the block tag
func (b *BarBlock) BlockKind() BlockKind { return BlockBar }

// Height is the bar thickness
func (b *BarBlock) Height(width float64) float64 { return b.Thickness }

// ContainerStyle is the resolved visual style of a container
type ContainerStyle struct {
	Padding    float64     `json:"padding,omitempty"`
	Background string      `json:"background,omitempty"`
	TextColor  string      `json:"textColor,omitempty"`
	Align      Alignment   `json:"align,omitempty"`
	Anchor     Anchor      `json:"anchor,omitempty"`
	Border     *BorderSpec `json:"border,omitempty"`
	BorderTop  *BorderSpec `json:"borderTop,omitempty"`
	Radius     float64     `json:"radius,omitempty"`
	WidthPct   float64     `json:"widthPct,omitempty"` // 0 means full width
}

// ContainerBlock groups children under a shared style
type ContainerBlock struct {
	Kind     BlockKind      `json:"kind"`
	Style    ContainerStyle `json:"style"`
	Children []Block        `json:"children"`
}

// NewContainerBlock creates a container block
func NewContainerBlock(style ContainerStyle, children ...Block) *ContainerBlock {
	return &ContainerBlock{Kind: BlockContainer, Style: style, Children: children}
}

// BlockKind returns the block tag
func (b *ContainerBlock) BlockKind() BlockKind { return BlockContainer }

// Height sums children inside the padded content width
func (b *ContainerBlock) Height(width float64) float64 {
	inner := width - 2*b.Style.Padding
	if b.Style.WidthPct > 0 {
		inner = width*b.Style.WidthPct/100 - 2*b.Style.Padding
	}
	if inner < 1 {
		inner = 1
	}
	total := 0.0
	for _, child := range b.Children {
		total += child.Height(inner)
	}
	return total + 2*b.Style.Padding
}

// SpacerBlock inserts vertical whitespace
type SpacerBlock struct {
	Kind BlockKind `json:"kind"`
	Gap  float64   `json:"gap"`
}

// NewSpacerBlock creates a spacer block
func NewSpacerBlock(gap float64) *SpacerBlock {
	return &SpacerBlock{Kind: BlockSpacer, Gap: gap}
}

// BlockKind returns the block tag
func (b *SpacerBlock) BlockKind() BlockKind { return BlockSpacer }

// Height is the spacer gap
func (b *SpacerBlock) Height(width float64) float64 { return b.Gap }

// Page is one page of a paginated document
type Page struct {
	Blocks []Block `json:"blocks"`
}

// Document is the assembled output of a render: an ordered vertical flow of
// blocks at a fixed page width, with an optional document-level border that
// wraps the whole flow once.
type Document struct {
	PageWidth    float64     `json:"pageWidth"`
	Margin       float64     `json:"margin"`
	Border       *BorderSpec `json:"border,omitempty"`
	BorderRadius float64     `json:"borderRadius,omitempty"`
	BorderMargin float64     `json:"borderMargin,omitempty"`
	Blocks       []Block     `json:"blocks"`

	// SkippedSections counts template sections whose type the engine did
	// not recognize; they are silently omitted from the flow.
	SkippedSections int `json:"-"`
}

// ContentWidth is the width available to blocks inside the page margin
func (d *Document) ContentWidth() float64 {
	width := d.PageWidth - 2*d.Margin
	if d.Border != nil {
		width -= 2 * (d.BorderMargin + d.Border.Width)
	}
	return width
}

// Height estimates the total flow height in points
func (d *Document) Height() float64 {
	width := d.ContentWidth()
	total := 0.0
	for _, block := range d.Blocks {
		total += block.Height(width)
	}
	return total
}

// Paginate splits the flow into pages of at most pageHeight points. A block
// taller than a whole page gets a page of its own; blocks are never split.
func (d *Document) Paginate(pageHeight float64) []Page {
	if pageHeight <= 0 || len(d.Blocks) == 0 {
		return []Page{{Blocks: d.Blocks}}
	}

	width := d.ContentWidth()
	pages := []Page{}
	current := Page{}
	used := 0.0

	for _, block := range d.Blocks {
		h := block.Height(width)
		if used > 0 && used+h > pageHeight {
			pages = append(pages, current)
			current = Page{}
			used = 0
		}
		current.Blocks = append(current.Blocks, block)
		used += h
	}
	if len(current.Blocks) > 0 {
		pages = append(pages, current)
	}
	return pages
}

// estimateLines approximates how many lines a text occupies at a width
func estimateLines(text string, fontSize, width float64) int {
	if text == "" || width <= 0 {
		return 1
	}
	textWidth := float64(utf8.RuneCountInString(text)) * fontSize * charWidthFactor
	return int(math.Max(1, math.Ceil(textWidth/width)))
}

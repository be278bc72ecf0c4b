package printing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
)

// Default page metrics for composed receipts, in points
const (
	defaultPageMargin = 12.0
	fallbackNotice    = "No custom template configured"
)

// Composer assembles a receipt template and its data context into a
// Document. It holds no per-render state and is safe for concurrent use.
type Composer struct {
	clock func() time.Time
}

// ComposerOption configures the composer
type ComposerOption func(*Composer)

// WithClock overrides the time source used for missing date/time fields.
// Renders become fully reproducible under a fixed clock.
func WithClock(clock func() time.Time) ComposerOption {
	return func(c *Composer) {
		c.clock = clock
	}
}

// NewComposer creates a composer with default configuration
func NewComposer(opts ...ComposerOption) *Composer {
	c := &Composer{clock: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Compose renders the template against the company and transaction data in
// a single pass: sections are dispatched in template order and their blocks
// concatenated into one vertical flow. Compose never fails; a nil or empty
// template yields a minimal fallback document, unknown section types are
// skipped, and malformed props degrade to their defaults inside the
// renderers.
func (c *Composer) Compose(template *printing.ReceiptTemplate, company CompanyInfo, receipt ReceiptData) *Document {
	doc := &Document{
		PageWidth: printing.PaperSizeReceipt80MM.WidthPoints(),
		Margin:    defaultPageMargin,
	}

	accent := printing.DefaultAccentColor
	if template != nil {
		doc.PageWidth = template.PaperSize.WidthPoints()
		if template.AccentColor != "" {
			accent = template.AccentColor
		}
		if template.Border.Enabled {
			doc.Border = &BorderSpec{
				Width: template.Border.Width,
				Color: template.Border.Color,
				Style: template.Border.Style,
			}
			doc.BorderRadius = template.Border.Radius
			doc.BorderMargin = template.Border.Margin
		}
	}

	resolver := NewResolver(accent)
	if doc.Border != nil {
		doc.Border.Color = resolver.ResolveColor(doc.Border.Color)
	}

	if template == nil || template.IsEmpty() {
		doc.Blocks = []Block{NewTextBlock(fallbackNotice, TextStyle{
			Size:   10,
			Weight: 400,
			Color:  "#666666",
			Align:  AlignCenter,
		})}
		return doc
	}

	rc := &renderContext{
		style:   resolver,
		company: company,
		receipt: receipt,
		width:   doc.ContentWidth(),
		now:     c.clock(),
	}

	for _, section := range template.Sections {
		render, ok := sectionRenderers[section.Type]
		if !ok {
			doc.SkippedSections++
			continue
		}
		doc.Blocks = append(doc.Blocks, render(rc, Props(section.Props))...)
	}

	return doc
}

package printing

import (
	"time"

	"github.com/bizledger/backend/internal/domain/printing"
)

// Date and time formats used for receipt fields and placeholders
const (
	dateFormat = "02/01/2006"
	timeFormat = "3:04 PM"
)

// renderContext carries the immutable inputs of one render pass. It is
// created by the Composer and shared read-only by all section renderers.
type renderContext struct {
	style   *Resolver
	company CompanyInfo
	receipt ReceiptData
	width   float64 // content width in points
	now     time.Time
}

// issuedAt returns the transaction timestamp, falling back to the render
// time so date/time fields are never blank when shown.
func (rc *renderContext) issuedAt() time.Time {
	if rc.receipt.IssuedAt != nil {
		return *rc.receipt.IssuedAt
	}
	return rc.now
}

// renderFunc renders one section into zero or more blocks. Renderers are
// pure: they read the context and normalized props and never touch state
// outside their return value, so sections are order-independent.
type renderFunc func(rc *renderContext, props Props) []Block

// sectionRenderers is the strategy table dispatching on the closed section
// type enum. Types absent from the table are skipped by the Composer; that
// default arm is the deliberate permissive-parsing behavior that lets older
// or partial templates degrade instead of failing a print job.
var sectionRenderers = map[printing.SectionType]renderFunc{
	printing.SectionHeader:         renderHeader,
	printing.SectionCompanyInfo:    renderCompanyInfo,
	printing.SectionCustomerInfo:   renderCustomerInfo,
	printing.SectionReceiptDetails: renderReceiptDetails,
	printing.SectionItemsTable:     renderItemsTable,
	printing.SectionTotals:         renderTotals,
	printing.SectionPaymentInfo:    renderPaymentInfo,
	printing.SectionCustomText:     renderCustomText,
	printing.SectionDivider:        renderDivider,
}

// sectionContainer wraps rendered children in the section's base container
func sectionContainer(rc *renderContext, base BaseStyleProps, children ...Block) []Block {
	if len(children) == 0 {
		return nil
	}
	return []Block{NewContainerBlock(rc.style.SectionBaseStyle(base), children...)}
}

// textIn builds a text block inheriting the container's resolved text
// styling (alignment and auto-contrast color).
func textIn(style ContainerStyle, text string, size float64, weight int) *TextBlock {
	return NewTextBlock(text, TextStyle{
		Size:   size,
		Weight: weight,
		Color:  style.TextColor,
		Align:  style.Align,
	})
}

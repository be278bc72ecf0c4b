package printing

import "github.com/bizledger/backend/internal/domain/printing"

// paymentProps is the normalized configuration of a paymentInfo section
type paymentProps struct {
	BaseStyleProps
	Layout         printing.PaymentLayout
	ShowMethod     bool
	ShowStatus     bool
	ShowAmountPaid bool
	ShowChange     bool
}

func normalizePayment(p Props) paymentProps {
	base := normalizeBase(p)
	base.FontSize = p.Str("fontSize", "sm")

	layout := printing.PaymentLayout(p.Str("layout", "stacked"))
	if !layout.IsValid() {
		layout = printing.PaymentLayoutStacked
	}

	return paymentProps{
		BaseStyleProps: base,
		Layout:         layout,
		ShowMethod:     p.Bool("showMethod", true),
		ShowStatus:     p.Bool("showStatus", true),
		ShowAmountPaid: p.Bool("showAmountPaid", true),
		ShowChange:     p.Bool("showChange", true),
	}
}

// paymentEntry is one resolved label/value pair of the payment section
type paymentEntry struct {
	label string
	value string
}

// paymentEntries resolves the shown entries. Change is additionally gated
// on a positive value: a change of zero is never printed, even when the
// showChange toggle is on.
func paymentEntries(rc *renderContext, props paymentProps) []paymentEntry {
	var entries []paymentEntry
	if props.ShowMethod && rc.receipt.PaymentMethod != "" {
		entries = append(entries, paymentEntry{"Payment Method", rc.receipt.PaymentMethod})
	}
	if props.ShowStatus && rc.receipt.Status != "" {
		entries = append(entries, paymentEntry{"Status", rc.receipt.Status})
	}
	if props.ShowAmountPaid {
		entries = append(entries, paymentEntry{"Amount Paid", FormatAmount(rc.receipt.AmountPaid, rc.receipt.Currency)})
	}
	if props.ShowChange {
		change := amountOrZero(rc.receipt.Change)
		if change.IsPositive() {
			entries = append(entries, paymentEntry{"Change", FormatAmount(&change, rc.receipt.Currency)})
		}
	}
	return entries
}

// renderPaymentInfo renders the payment method, status, amount paid and
// change in a stacked or horizontal layout. The customer name appears only
// in the stacked layout, and only when present.
func renderPaymentInfo(rc *renderContext, p Props) []Block {
	props := normalizePayment(p)
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)
	entries := paymentEntries(rc, props)

	if props.Layout == printing.PaymentLayoutHorizontal {
		if len(entries) == 0 {
			return nil
		}
		cells := make([]Block, 0, len(entries))
		for _, e := range entries {
			caption := NewTextBlock(e.label, TextStyle{Size: size - 2, Weight: 400, Color: "#666666", Align: style.Align})
			value := textIn(style, e.value, size, rc.style.FontWeight("medium"))
			cells = append(cells, NewContainerBlock(ContainerStyle{}, caption, value))
		}
		return sectionContainer(rc, props.BaseStyleProps, NewRowBlock("space-between", cells...))
	}

	var children []Block
	for _, e := range entries {
		children = append(children, textIn(style, e.label+": "+e.value, size, 400))
	}
	if rc.receipt.Customer != nil && rc.receipt.Customer.Name != "" {
		children = append(children, textIn(style, "Customer: "+rc.receipt.Customer.Name, size, 400))
	}
	return sectionContainer(rc, props.BaseStyleProps, children...)
}

package printing

import (
	"time"

	"github.com/shopspring/decimal"
)

// CompanyInfo contains the issuing company's details for rendering.
// All fields are optional; empty values are simply omitted from the output.
type CompanyInfo struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Logo    string `json:"logo"` // URL or base64 image reference
}

// FullAddress joins address, city and state, skipping empty parts
func (c CompanyInfo) FullAddress() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{c.Address, c.City, c.State} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += ", "
		}
		out += p
	}
	return out
}

// CustomerInfo is the optional customer record attached to a transaction
type CustomerInfo struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email"`
}

// InvoiceRef is an optional reference to a linked invoice
type InvoiceRef struct {
	Number string `json:"number"`
}

// ReceiptItem is one line item of the transaction
type ReceiptItem struct {
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Total     decimal.Decimal `json:"total"`
}

// ReceiptData is the immutable transaction context supplied by the caller.
// Monetary fields are pointers so that absent values can be distinguished
// from zero; the engine treats nil as zero everywhere.
type ReceiptData struct {
	ReceiptNumber string           `json:"receiptNumber"`
	IssuedAt      *time.Time       `json:"issuedAt"`
	Currency      string           `json:"currency"`
	Items         []ReceiptItem    `json:"items"`
	Subtotal      *decimal.Decimal `json:"subtotal"`
	Discount      *decimal.Decimal `json:"discount"`
	Tax           *decimal.Decimal `json:"tax"`
	Total         *decimal.Decimal `json:"total"`
	AmountPaid    *decimal.Decimal `json:"amountPaid"`
	Change        *decimal.Decimal `json:"change"`
	PaymentMethod string           `json:"paymentMethod"`
	Status        string           `json:"status"`
	Customer      *CustomerInfo    `json:"customer"`
	Invoice       *InvoiceRef      `json:"invoice"`
	Notes         string           `json:"notes"`
}

// PaidOrTotal returns the amount actually paid when present, else the total.
// The grand total row always prints this value.
func (r ReceiptData) PaidOrTotal() decimal.Decimal {
	if r.AmountPaid != nil {
		return *r.AmountPaid
	}
	return amountOrZero(r.Total)
}

// amountOrZero treats a missing monetary field as zero
func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

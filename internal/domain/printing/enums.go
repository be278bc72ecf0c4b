package printing

// SectionType identifies one kind of renderable block inside a receipt
// template. The set is closed: templates may carry unknown type strings
// (older builders, partial saves), but the engine only dispatches on the
// values below and skips everything else.
type SectionType string

const (
	SectionHeader         SectionType = "header"
	SectionCompanyInfo    SectionType = "companyInfo"
	SectionCustomerInfo   SectionType = "customerInfo"
	SectionReceiptDetails SectionType = "receiptDetails"
	SectionItemsTable     SectionType = "itemsTable"
	SectionTotals         SectionType = "totals"
	SectionPaymentInfo    SectionType = "paymentInfo"
	SectionCustomText     SectionType = "customText"
	SectionDivider        SectionType = "divider"
)

// IsValid checks if the SectionType is a valid value
func (s SectionType) IsValid() bool {
	switch s {
	case SectionHeader, SectionCompanyInfo, SectionCustomerInfo, SectionReceiptDetails,
		SectionItemsTable, SectionTotals, SectionPaymentInfo, SectionCustomText, SectionDivider:
		return true
	}
	return false
}

// String returns the string representation of SectionType
func (s SectionType) String() string {
	return string(s)
}

// DisplayName returns a human readable name for the section type
func (s SectionType) DisplayName() string {
	switch s {
	case SectionHeader:
		return "Header"
	case SectionCompanyInfo:
		return "Company Info"
	case SectionCustomerInfo:
		return "Customer Info"
	case SectionReceiptDetails:
		return "Receipt Details"
	case SectionItemsTable:
		return "Items Table"
	case SectionTotals:
		return "Totals"
	case SectionPaymentInfo:
		return "Payment Info"
	case SectionCustomText:
		return "Custom Text"
	case SectionDivider:
		return "Divider"
	default:
		return string(s)
	}
}

// AllSectionTypes returns all valid SectionType values
func AllSectionTypes() []SectionType {
	return []SectionType{
		SectionHeader, SectionCompanyInfo, SectionCustomerInfo, SectionReceiptDetails,
		SectionItemsTable, SectionTotals, SectionPaymentInfo, SectionCustomText, SectionDivider,
	}
}

// DetailsLayout selects one of the mutually exclusive layouts of the
// receiptDetails section.
type DetailsLayout string

const (
	DetailsLayoutStacked    DetailsLayout = "stacked"
	DetailsLayoutCentered   DetailsLayout = "centered"
	DetailsLayoutHorizontal DetailsLayout = "horizontal"
	DetailsLayoutGrid       DetailsLayout = "grid"
	DetailsLayoutInline     DetailsLayout = "inline"
)

// IsValid checks if the DetailsLayout is a valid value
func (l DetailsLayout) IsValid() bool {
	switch l {
	case DetailsLayoutStacked, DetailsLayoutCentered, DetailsLayoutHorizontal,
		DetailsLayoutGrid, DetailsLayoutInline:
		return true
	}
	return false
}

// String returns the string representation of DetailsLayout
func (l DetailsLayout) String() string {
	return string(l)
}

// PaymentLayout selects the layout of the paymentInfo section.
type PaymentLayout string

const (
	PaymentLayoutStacked    PaymentLayout = "stacked"
	PaymentLayoutHorizontal PaymentLayout = "horizontal"
)

// IsValid checks if the PaymentLayout is a valid value
func (l PaymentLayout) IsValid() bool {
	return l == PaymentLayoutStacked || l == PaymentLayoutHorizontal
}

// String returns the string representation of PaymentLayout
func (l PaymentLayout) String() string {
	return string(l)
}

// DividerStyle selects how a divider section is drawn.
type DividerStyle string

const (
	DividerSolid  DividerStyle = "solid"
	DividerDashed DividerStyle = "dashed"
	DividerDouble DividerStyle = "double"
)

// IsValid checks if the DividerStyle is a valid value
func (d DividerStyle) IsValid() bool {
	return d == DividerSolid || d == DividerDashed || d == DividerDouble
}

// String returns the string representation of DividerStyle
func (d DividerStyle) String() string {
	return string(d)
}

// LogoSize is the symbolic size token for the header logo.
type LogoSize string

const (
	LogoSizeSM LogoSize = "sm"
	LogoSizeMD LogoSize = "md"
	LogoSizeLG LogoSize = "lg"
	LogoSizeXL LogoSize = "xl"
)

// Points returns the square logo edge length in points.
// Unmapped values fall back to the lg size.
func (s LogoSize) Points() float64 {
	switch s {
	case LogoSizeSM:
		return 32
	case LogoSizeMD:
		return 40
	case LogoSizeLG:
		return 48
	case LogoSizeXL:
		return 56
	default:
		return 48
	}
}

// PaperSize represents the receipt paper width a template targets
type PaperSize string

const (
	PaperSizeReceipt80MM  PaperSize = "RECEIPT_80MM"  // standard thermal receipt
	PaperSizeReceipt100MM PaperSize = "RECEIPT_100MM" // wide custom receipt
)

// IsValid checks if the PaperSize is a valid value
func (p PaperSize) IsValid() bool {
	return p == PaperSizeReceipt80MM || p == PaperSizeReceipt100MM
}

// String returns the string representation of PaperSize
func (p PaperSize) String() string {
	return string(p)
}

// WidthPoints returns the printable page width in PDF points (1mm = 2.8346pt).
// Height is variable for receipt paper.
func (p PaperSize) WidthPoints() float64 {
	switch p {
	case PaperSizeReceipt100MM:
		return 283.46
	default:
		return 226.77
	}
}

// AllPaperSizes returns all valid PaperSize values
func AllPaperSizes() []PaperSize {
	return []PaperSize{PaperSizeReceipt80MM, PaperSizeReceipt100MM}
}

// TemplateStatus represents the status of a receipt template
type TemplateStatus string

const (
	TemplateStatusActive   TemplateStatus = "ACTIVE"
	TemplateStatusInactive TemplateStatus = "INACTIVE"
)

// IsValid checks if the TemplateStatus is a valid value
func (s TemplateStatus) IsValid() bool {
	return s == TemplateStatusActive || s == TemplateStatusInactive
}

// String returns the string representation of TemplateStatus
func (s TemplateStatus) String() string {
	return string(s)
}

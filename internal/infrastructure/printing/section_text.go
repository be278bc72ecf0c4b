package printing

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// customTextProps is the normalized configuration of a customText section
type customTextProps struct {
	BaseStyleProps
	Text      string
	Uppercase bool
	Italic    bool
}

func normalizeCustomText(p Props) customTextProps {
	return customTextProps{
		BaseStyleProps: normalizeBase(p),
		Text:           p.Str("text", ""),
		Uppercase:      p.Bool("uppercase", false),
		Italic:         p.Bool("italic", false),
	}
}

// placeholderPattern matches the supported {token} markers, case-insensitively
var placeholderPattern = regexp.MustCompile(`(?i)\{(companyName|companyAddress|companyPhone|companyEmail|customerName|customerEmail|customerPhone|receiptNumber|date|total)\}`)

// substitutePlaceholders replaces every supported placeholder with its live
// value. Unknown markers are left untouched; missing source values become
// empty strings. The total is pre-formatted through the currency formatter.
func substitutePlaceholders(rc *renderContext, text string) string {
	customer := CustomerInfo{}
	if rc.receipt.Customer != nil {
		customer = *rc.receipt.Customer
	}

	return placeholderPattern.ReplaceAllStringFunc(text, func(match string) string {
		token := strings.ToLower(match[1 : len(match)-1])
		switch token {
		case "companyname":
			return rc.company.Name
		case "companyaddress":
			return rc.company.FullAddress()
		case "companyphone":
			return rc.company.Phone
		case "companyemail":
			return rc.company.Email
		case "customername":
			return customer.Name
		case "customeremail":
			return customer.Email
		case "customerphone":
			return customer.Phone
		case "receiptnumber":
			return rc.receipt.ReceiptNumber
		case "date":
			return rc.issuedAt().Format(dateFormat)
		case "total":
			return FormatAmount(rc.receipt.Total, rc.receipt.Currency)
		}
		return match
	})
}

// splitTextLines splits on both accepted escape forms, a literal backslash-n
// and a real line break, dropping blank lines.
func splitTextLines(text string) []string {
	normalized := strings.ReplaceAll(text, `\n`, "\n")
	var lines []string
	for _, line := range strings.Split(normalized, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// renderCustomText renders free text with placeholder substitution, newline
// splitting and optional uppercase/italic transforms. A section that yields
// zero non-blank lines renders nothing at all.
func renderCustomText(rc *renderContext, p Props) []Block {
	props := normalizeCustomText(p)
	style := rc.style.SectionBaseStyle(props.BaseStyleProps)
	size := rc.style.FontSize(props.FontSize)
	weight := rc.style.FontWeight(props.FontWeight)

	lines := splitTextLines(substitutePlaceholders(rc, props.Text))
	if len(lines) == 0 {
		return nil
	}

	upper := cases.Upper(language.English)
	children := make([]Block, 0, len(lines))
	for _, line := range lines {
		if props.Uppercase {
			line = upper.String(line)
		}
		block := textIn(style, line, size, weight)
		block.Style.Italic = props.Italic
		children = append(children, block)
	}
	return sectionContainer(rc, props.BaseStyleProps, children...)
}

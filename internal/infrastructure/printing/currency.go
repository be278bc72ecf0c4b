package printing

import (
	"strings"

	"github.com/shopspring/decimal"
)

// currencySymbols maps ISO currency codes to their printable symbols.
// Codes not in the table print the code itself as the symbol.
var currencySymbols = map[string]string{
	"NGN": "₦",
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"CNY": "¥",
	"INR": "₹",
	"ZAR": "R",
	"KES": "KSh",
	"GHS": "₵",
}

// CurrencySymbol resolves a currency code against the fixed symbol table
func CurrencySymbol(code string) string {
	if sym, ok := currencySymbols[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return sym
	}
	if code == "" {
		return currencySymbols["NGN"]
	}
	return code
}

// FormatAmount formats a monetary amount with its currency symbol, a fixed
// two decimal places and comma thousands grouping. A nil amount is zero.
// Example: 1234.5 NGN -> "₦1,234.50".
func FormatAmount(amount *decimal.Decimal, code string) string {
	return CurrencySymbol(code) + formatAmountRaw(amountOrZero(amount))
}

// formatAmountRaw renders the amount without a symbol: sign, grouped integer
// part, two decimals.
func formatAmountRaw(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	parts := strings.Split(d.StringFixed(2), ".")
	intPart := parts[0]
	decPart := "00"
	if len(parts) > 1 {
		decPart = parts[1]
	}

	var result strings.Builder
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(c)
	}

	return sign + result.String() + "." + decPart
}

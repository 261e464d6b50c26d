package quote

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatINR renders an amount as Indian Rupees with two decimals and
// lakh/crore grouping, e.g. ₹1,23,45,678.90. Presentation only.
func FormatINR(amount decimal.Decimal) string {
	return formatGrouped("₹", amount)
}

// FormatRs is FormatINR for fonts without the rupee glyph.
func FormatRs(amount decimal.Decimal) string {
	return formatGrouped("Rs. ", amount)
}

// FormatPercent trims trailing zeros: 18 -> "18%", 12.50 -> "12.5%".
func FormatPercent(p decimal.Decimal) string {
	return p.String() + "%"
}

func formatGrouped(symbol string, amount decimal.Decimal) string {
	negative := amount.Round(2).IsNegative()
	raw := amount.Abs().StringFixed(2)

	intPart, decPart, _ := strings.Cut(raw, ".")
	out := symbol + applyIndianGrouping(intPart) + "." + decPart
	if negative {
		out = "-" + out
	}
	return out
}

// applyIndianGrouping keeps the last three digits together and groups the
// rest in pairs.
func applyIndianGrouping(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	result := s[n-3:]
	remaining := s[:n-3]
	for len(remaining) > 2 {
		result = remaining[len(remaining)-2:] + "," + result
		remaining = remaining[:len(remaining)-2]
	}
	if len(remaining) > 0 {
		result = remaining + "," + result
	}
	return result
}

package quote

import (
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

var ones = [...]string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = [...]string{
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen",
	"Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = [...]string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

const (
	crore    = 10_000_000
	lakh     = 100_000
	thousand = 1_000
)

// AmountToWords spells n in the Indian numbering system, e.g.
// 1234567 -> "Twelve Lakh Thirty-Four Thousand Five Hundred Sixty-Seven".
// Counts of a hundred crore or more are themselves grouped, so 10^12 is
// "One Lakh Crore".
func AmountToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}
	if n < 0 {
		// -(n+1) cannot overflow.
		return "Minus " + strings.Join(indianWords(uint64(-(n+1))+1), " ")
	}
	return strings.Join(indianWords(uint64(n)), " ")
}

// RupeesInWords is the proposal-value legend. Paise are truncated. The
// rupee part is spelled at any size; it never wraps like an int64 would.
func RupeesInWords(amount decimal.Decimal) string {
	return "Rupees " + IntegerToWords(amount.BigInt()) + " Only"
}

var bigCrore = big.NewInt(crore)

// IntegerToWords is AmountToWords for integers of any size.
func IntegerToWords(n *big.Int) string {
	switch n.Sign() {
	case 0:
		return "Zero"
	case -1:
		return "Minus " + strings.Join(bigIndianWords(new(big.Int).Neg(n)), " ")
	}
	return strings.Join(bigIndianWords(n), " ")
}

func bigIndianWords(n *big.Int) []string {
	if n.IsUint64() {
		return indianWords(n.Uint64())
	}
	q, r := new(big.Int).QuoRem(n, bigCrore, new(big.Int))
	parts := append(bigIndianWords(q), "Crore")
	return append(parts, indianWords(r.Uint64())...)
}

func indianWords(n uint64) []string {
	var parts []string
	if c := n / crore; c > 0 {
		parts = append(parts, indianWords(c)...)
		parts = append(parts, "Crore")
	}
	n %= crore
	if l := n / lakh; l > 0 {
		parts = append(parts, belowThousand(l), "Lakh")
	}
	n %= lakh
	if t := n / thousand; t > 0 {
		parts = append(parts, belowThousand(t), "Thousand")
	}
	if r := n % thousand; r > 0 {
		parts = append(parts, belowThousand(r))
	}
	return parts
}

func belowThousand(n uint64) string {
	hundred, ten, digit := n/100%10, n/10%10, n%10

	var b strings.Builder
	if hundred > 0 {
		b.WriteString(ones[hundred])
		b.WriteString(" Hundred")
		if ten > 0 || digit > 0 {
			b.WriteByte(' ')
		}
	}
	switch {
	case ten > 1:
		b.WriteString(tens[ten])
		if digit > 0 {
			b.WriteByte('-')
			b.WriteString(ones[digit])
		}
	case ten == 1:
		b.WriteString(teens[digit])
	case digit > 0:
		b.WriteString(ones[digit])
	}
	return b.String()
}

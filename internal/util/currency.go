package util

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CurrencySymbol prefixes every displayed amount.
const CurrencySymbol = "₹"

// FormatCurrency renders an amount rounded half away from zero to two decimals, with thousands separators,
// e.g. -1234567.891 becomes "-₹1,234,567.89".
func FormatCurrency(amount float64) string {
	d := decimal.NewFromFloat(amount).Round(2)

	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Abs()
	}

	fixed := d.StringFixed(2)
	integer, fraction, _ := strings.Cut(fixed, ".")
	return sign + CurrencySymbol + groupThousands(integer) + "." + fraction
}

// RoundCurrency rounds an amount to cents.
func RoundCurrency(amount float64) float64 {
	f, _ := decimal.NewFromFloat(amount).Round(2).Float64()
	return f
}

func groupThousands(digits string) string {
	if len(digits) <= 3 {
		return digits
	}
	var b strings.Builder
	head := len(digits) % 3
	if head > 0 {
		b.WriteString(digits[:head])
	}
	for i := head; i < len(digits); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(digits[i : i+3])
	}
	return b.String()
}

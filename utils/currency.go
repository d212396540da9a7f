package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatCurrencyUSD formats an amount the way the dashboard cards show it.
// Example: 1234.5 -> "$1,234.50", -3 -> "-$3.00"
func FormatCurrencyUSD(amount decimal.Decimal) string {
	amount = amount.Round(2)
	neg := amount.IsNegative()
	fixed := amount.Abs().StringFixed(2)

	parts := strings.SplitN(fixed, ".", 2)
	integerPart := parts[0]
	decimalPart := parts[1]

	var b strings.Builder
	for i, r := range integerPart {
		if i > 0 && (len(integerPart)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(r)
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return sign + "$" + b.String() + "." + decimalPart
}

func FormatFloatUSD(amount float64) string {
	return FormatCurrencyUSD(decimal.NewFromFloat(amount))
}

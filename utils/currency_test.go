package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrencyUSD(t *testing.T) {
	tests := []struct {
		name   string
		amount decimal.Decimal
		want   string
	}{
		{"zero", decimal.Zero, "$0.00"},
		{"cents", decimal.RequireFromString("0.5"), "$0.50"},
		{"thousands", decimal.RequireFromString("1234.5"), "$1,234.50"},
		{"millions", decimal.RequireFromString("1234567.891"), "$1,234,567.89"},
		{"negative", decimal.RequireFromString("-3"), "-$3.00"},
		{"rounds to zero", decimal.RequireFromString("-0.001"), "$0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrencyUSD(tt.amount))
		})
	}
}

func TestFormatFloatUSD(t *testing.T) {
	assert.Equal(t, "$51.49", FormatFloatUSD(51.49))
}

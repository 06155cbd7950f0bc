package tuistyles

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rgehrsitz/drawdown/internal/money"
)

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in       int64
		expected string
	}{
		{950, "$950"},
		{12_400, "$12K"},
		{-250_000, "$-250K"},
		{1_250_000, "$1.3M"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, FormatCompact(decimal.NewFromInt(tt.in)))
	}
}

func TestTrendIndicator(t *testing.T) {
	assert.Equal(t, "↑", TrendIndicator(true))
	assert.Equal(t, "↓", TrendIndicator(false))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "$1,234.56", FormatCurrency(money.USD(decimal.RequireFromString("1234.56"))))
}

package utils_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"project-analysis/utils"
)

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "0.00%", utils.FormatPercent(0))
	assert.Equal(t, "16.67%", utils.FormatPercent(1.0/6.0))
	assert.Equal(t, "100.00%", utils.FormatPercent(1))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "0.00", utils.FormatAmount(decimal.Zero))
	assert.Equal(t, "1200.50", utils.FormatAmount(decimal.RequireFromString("1200.5")))
}

func TestFormatCurrency(t *testing.T) {
	assert.Equal(t, "¥0.00", utils.FormatCurrency(decimal.Zero))
	assert.Equal(t, "¥999.99", utils.FormatCurrency(decimal.RequireFromString("999.99")))
	assert.Equal(t, "¥1,500.00", utils.FormatCurrency(decimal.RequireFromString("1500")))
	assert.Equal(t, "¥1,234,567.89", utils.FormatCurrency(decimal.RequireFromString("1234567.89")))
	assert.Equal(t, "¥-1,500.00", utils.FormatCurrency(decimal.RequireFromString("-1500")))
}

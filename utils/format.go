package utils

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FormatPercent 比率格式化为百分比字符串，保留两位小数
func FormatPercent(rate float64) string {
	return fmt.Sprintf("%.2f%%", rate*100)
}

// FormatAmount 金额格式化为字符串，保留两位小数
func FormatAmount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// FormatCurrency 金额格式化为带人民币符号和千分位的字符串
func FormatCurrency(amount decimal.Decimal) string {
	s := amount.StringFixed(2)
	neg := false
	if len(s) > 0 && s[0] == '-' {
		neg = true
		s = s[1:]
	}
	intPart, fracPart := s[:len(s)-3], s[len(s)-2:]
	var b []byte
	for i, c := range []byte(intPart) {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b = append(b, ',')
		}
		b = append(b, c)
	}
	sign := ""
	if neg {
		sign = "-"
	}
	return "¥" + sign + string(b) + "." + fracPart
}

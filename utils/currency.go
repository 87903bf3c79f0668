package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatPrice renders an amount with two decimals and thousands separators.
// Example: 1234.5 -> "1,234.50"
func FormatPrice(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	parts := strings.SplitN(formatted, ".", 2)
	integerPart := parts[0]

	var groups []string
	for i := len(integerPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{integerPart[start:i]}, groups...)
	}

	return sign + strings.Join(groups, ",") + "." + parts[1]
}

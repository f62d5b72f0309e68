package utils

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FormatAmount renders a money amount for display: truncated (not rounded) to
// two decimal places, trailing fractional zeros stripped, and integer digits
// grouped in threes with spaces.
//
//	1234567.5  -> "1 234 567.5"
//	1000       -> "1 000"
//	0.109      -> "0.1"
func FormatAmount(amount decimal.Decimal) string {
	s := amount.Truncate(2).StringFixed(2)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}

	intPart, fracPart, hasFrac := strings.Cut(s, ".")

	var b strings.Builder
	b.WriteString(sign)
	first := len(intPart) % 3
	if first == 0 {
		first = 3
	}
	b.WriteString(intPart[:first])
	for i := first; i < len(intPart); i += 3 {
		b.WriteByte(' ')
		b.WriteString(intPart[i : i+3])
	}
	if hasFrac {
		b.WriteByte('.')
		b.WriteString(fracPart)
	}
	return b.String()
}

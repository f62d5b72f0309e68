package utils_test

import (
	"testing"

	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount string
		want   string
	}{
		{name: "groups thousands with spaces", amount: "1234567.89", want: "1 234 567.89"},
		{name: "six integer digits", amount: "123456.78", want: "123 456.78"},
		{name: "integer amount", amount: "1000", want: "1 000"},
		{name: "exact millions", amount: "1000000", want: "1 000 000"},
		{name: "no grouping under four digits", amount: "999", want: "999"},
		{name: "truncates rather than rounds", amount: "1999.999", want: "1 999.99"},
		{name: "truncates negative toward zero", amount: "-1.999", want: "-1.99"},
		{name: "strips trailing fractional zeros", amount: "1500.00", want: "1 500"},
		{name: "keeps a single decimal", amount: "1234567.5", want: "1 234 567.5"},
		{name: "sub-cent digits dropped", amount: "0.109", want: "0.1"},
		{name: "zero", amount: "0", want: "0"},
		{name: "negative grouped", amount: "-9876543.21", want: "-9 876 543.21"},
		{name: "negative fraction", amount: "-0.5", want: "-0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := utils.FormatAmount(decimal.RequireFromString(tt.amount))
			assert.Equal(t, tt.want, got)
		})
	}
}

package domain_test

import (
	"testing"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeriveRate(t *testing.T) {
	tests := []struct {
		name      string
		amountRUB string
		amountUSD string
		want      string // empty means no rate
	}{
		{
			name:      "typical amounts",
			amountRUB: "1234.56",
			amountUSD: "10",
			want:      "123.456",
		},
		{
			name:      "rounds to six decimal places",
			amountRUB: "100",
			amountUSD: "3",
			want:      "33.333333",
		},
		{
			name:      "zero reference amount yields no rate",
			amountRUB: "500",
			amountUSD: "0",
			want:      "",
		},
		{
			name:      "zero primary amount is a zero rate",
			amountRUB: "0",
			amountUSD: "10",
			want:      "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rub := decimal.RequireFromString(tt.amountRUB)
			usd := decimal.RequireFromString(tt.amountUSD)

			got := domain.DeriveRate(rub, usd)

			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

package domain_test

import (
	"testing"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCard_DisplayLabel(t *testing.T) {
	tests := []struct {
		name string
		card domain.Card
		want string
	}{
		{
			name: "full identity",
			card: domain.Card{Bank: "Sber", Name: "Lena", CardNumber: "1234567890444"},
			want: "Sber Lena *0444",
		},
		{
			name: "short number is used whole",
			card: domain.Card{Bank: "Alfa", Name: "Ivan", CardNumber: "4444"},
			want: "Alfa Ivan *4444",
		},
		{
			name: "no bank",
			card: domain.Card{Name: "Lena", CardNumber: "5555"},
			want: "Lena *5555",
		},
		{
			name: "name only",
			card: domain.Card{Name: "Lena"},
			want: "Lena",
		},
		{
			name: "nothing set falls back to the ID",
			card: domain.Card{CardID: "c1"},
			want: "Card c1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.DisplayLabel())
		})
	}
}

package utils_test

import (
	"testing"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testLoc = time.FixedZone("MSK", 3*60*60)

func TestParseFlexibleDecimal(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain decimal point", input: "1234.56", want: "1234.56"},
		{name: "comma as decimal separator", input: "1234,56", want: "1234.56"},
		{name: "spaces as thousands separators", input: "1 234 567,89", want: "1234567.89"},
		{name: "non-breaking spaces", input: "1 234,56", want: "1234.56"},
		{name: "surrounding whitespace", input: "  250  ", want: "250"},
		{name: "negative amount", input: "-1 500,25", want: "-1500.25"},
		{name: "trailing zeros normalize", input: "10,00", want: "10"},
		{name: "empty string", input: "", wantErr: true},
		{name: "blank string", input: "   ", wantErr: true},
		{name: "not a number", input: "abc", wantErr: true},
		{name: "two decimal separators", input: "12,34,56", wantErr: true},
		{name: "underscore grouping unsupported", input: "1_000", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseFlexibleDecimal(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseUserDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // RFC3339, empty means the input is rejected
	}{
		{name: "display format", input: "05/01/2026", want: "2026-01-05T00:00:00+03:00"},
		{name: "iso format", input: "2026-01-05", want: "2026-01-05T00:00:00+03:00"},
		{name: "surrounding whitespace", input: " 31/12/2025 ", want: "2025-12-31T00:00:00+03:00"},
		{name: "dotted format rejected", input: "05.01.2026"},
		{name: "day out of range", input: "31/02/2026"},
		{name: "trailing time rejected", input: "2026-01-05 10:00"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseUserDate(tt.input, testLoc)
			if tt.want == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(time.RFC3339))
		})
	}
}

func TestParseUserTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string // RFC3339, empty means the input is rejected
	}{
		{name: "display format", input: "05/01/2026 21:30", want: "2026-01-05T21:30:00+03:00"},
		{name: "iso with T", input: "2026-01-05T21:30", want: "2026-01-05T21:30:00+03:00"},
		{name: "iso with space", input: "2026-01-05 21:30", want: "2026-01-05T21:30:00+03:00"},
		{name: "date without time rejected", input: "05/01/2026"},
		{name: "seconds rejected", input: "2026-01-05T21:30:45"},
		{name: "empty string", input: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := utils.ParseUserTimestamp(tt.input, testLoc)
			if tt.want == "" {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Format(time.RFC3339))
		})
	}
}

func TestFormatUserTimestamp(t *testing.T) {
	// 18:30 UTC is 21:30 in the display zone.
	instant := time.Date(2026, 1, 5, 18, 30, 0, 0, time.UTC)
	assert.Equal(t, "05/01/2026 21:30", utils.FormatUserTimestamp(instant, testLoc))

	// Conversion can move the calendar day.
	late := time.Date(2026, 1, 5, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "06/01/2026 01:30", utils.FormatUserTimestamp(late, testLoc))

	// Formatting a parsed timestamp reproduces the user's text.
	parsed, err := utils.ParseUserTimestamp("05/01/2026 21:30", testLoc)
	require.NoError(t, err)
	assert.Equal(t, "05/01/2026 21:30", utils.FormatUserTimestamp(parsed, testLoc))
}

func TestFormatUserDate(t *testing.T) {
	instant := time.Date(2026, 1, 5, 22, 30, 0, 0, time.UTC)
	assert.Equal(t, "06/01/2026", utils.FormatUserDate(instant, testLoc))
	assert.Equal(t, "05/01/2026", utils.FormatUserDate(instant, time.UTC))
}

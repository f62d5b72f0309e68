package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// User-facing date and timestamp formats. Display formats are what the app
// renders; the input lists additionally accept ISO variants.
const (
	DateDisplayFormat      = "02/01/2006"
	TimestampDisplayFormat = "02/01/2006 15:04"
)

var dateInputFormats = []string{
	DateDisplayFormat,
	time.DateOnly,
}

var timestampInputFormats = []string{
	TimestampDisplayFormat,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// ParseFlexibleDecimal parses an amount typed by a human: both '.' and ','
// work as the decimal separator, and regular or non-breaking spaces used as
// thousands separators are ignored. "1 234,56" and "1234.56" parse the same.
func ParseFlexibleDecimal(s string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(s)
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, " ", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")
	if cleaned == "" {
		return decimal.Zero, fmt.Errorf("empty amount")
	}
	d, err := decimal.NewFromString(cleaned)
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", s, err)
	}
	return d, nil
}

// ParseUserDate parses a calendar day in display or ISO format. The result is
// midnight in the given location.
func ParseUserDate(s string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateInputFormats {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// ParseUserTimestamp parses a minute-precision instant in display or ISO
// format, interpreted in the given location.
func ParseUserTimestamp(s string, loc *time.Location) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range timestampInputFormats {
		if t, err := time.ParseInLocation(layout, trimmed, loc); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// FormatUserDate renders a day in display format in the given location.
func FormatUserDate(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DateDisplayFormat)
}

// FormatUserTimestamp renders an instant in display format in the given location.
func FormatUserTimestamp(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(TimestampDisplayFormat)
}

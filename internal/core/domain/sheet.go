package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// SheetRow is one line of the daily withdrawal sheet: a card that still has
// money to withdraw on the sheet's day. Withdrawn is the effective amount of
// the day's withdrawal row (zero when none exists yet).
type SheetRow struct {
	CardID         string          `json:"cardID"`
	Label          string          `json:"label"` // Human-readable card label
	Bank           string          `json:"bank"`
	BankColor      string          `json:"bankColor"`
	PIN            string          `json:"pin"`
	ShouldHave     decimal.Decimal `json:"shouldHave"`
	Withdrawn      decimal.Decimal `json:"withdrawn"`
	Commission     decimal.Decimal `json:"commission"`
	Remaining      decimal.Decimal `json:"remaining"` // max(0, shouldHave - withdrawn - commission)
	FullyWithdrawn bool            `json:"fullyWithdrawn"`
	Note           string          `json:"note"`
}

// SheetTotals are column-wise sums over the rows currently in view.
type SheetTotals struct {
	ShouldHave decimal.Decimal `json:"shouldHave"`
	Withdrawn  decimal.Decimal `json:"withdrawn"`
	Commission decimal.Decimal `json:"commission"`
	Remaining  decimal.Decimal `json:"remaining"`
}

// DailySheet is the operator worksheet for one calendar day. Totals cover the
// returned page only (post-filter, post-pagination). SelectedBank echoes the
// bank filter actually applied, snapped to a concrete bank name when the
// filter matched by substring.
type DailySheet struct {
	Day          time.Time   `json:"day"`
	Rows         []SheetRow  `json:"rows"`
	Totals       SheetTotals `json:"totals"`
	Banks        []string    `json:"banks"` // Distinct banks across active cards
	SelectedBank string      `json:"selectedBank"`
	Page         int         `json:"page"`
	PageSize     int         `json:"pageSize"`
	TotalRows    int         `json:"totalRows"` // Row count after filtering, before pagination
}

// SheetFilter narrows the sheet rows.
type SheetFilter struct {
	Bank     string // Exact case-insensitive bank match, substring fallback
	Text     string // Case-insensitive substring over label, bank and PIN
	Page     int    // 1-based; 0 means first page
	PageSize int    // 0 means no pagination
}

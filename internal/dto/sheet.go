package dto

import (
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SheetParams defines query parameters for building the daily sheet.
type SheetParams struct {
	Date     string `form:"date"` // Sheet day; empty means today
	Bank     string `form:"bank"` // Bank filter, exact case-insensitive with substring fallback
	Q        string `form:"q"`    // Free-text filter over label, bank and PIN
	Page     int    `form:"page,default=1"`
	PageSize int    `form:"page_size,default=0"` // 0 means no pagination
}

// SheetRowResponse is one line of the daily sheet as rendered to the client.
// Amount fields carry both the raw decimal and the display string.
type SheetRowResponse struct {
	CardID         string          `json:"cardID"`
	Label          string          `json:"label"`
	Bank           string          `json:"bank"`
	BankColor      string          `json:"bankColor"`
	PIN            string          `json:"pin"`
	ShouldHave     decimal.Decimal `json:"shouldHave"`
	ShouldHaveFmt  string          `json:"shouldHaveFmt"`
	Withdrawn      decimal.Decimal `json:"withdrawn"`
	WithdrawnFmt   string          `json:"withdrawnFmt"`
	Commission     decimal.Decimal `json:"commission"`
	CommissionFmt  string          `json:"commissionFmt"`
	Remaining      decimal.Decimal `json:"remaining"`
	RemainingFmt   string          `json:"remainingFmt"`
	FullyWithdrawn bool            `json:"fullyWithdrawn"`
	Note           string          `json:"note"`
}

// SheetTotalsResponse sums the columns of the rows in view.
type SheetTotalsResponse struct {
	ShouldHave    decimal.Decimal `json:"shouldHave"`
	ShouldHaveFmt string          `json:"shouldHaveFmt"`
	Withdrawn     decimal.Decimal `json:"withdrawn"`
	WithdrawnFmt  string          `json:"withdrawnFmt"`
	Commission    decimal.Decimal `json:"commission"`
	CommissionFmt string          `json:"commissionFmt"`
	Remaining     decimal.Decimal `json:"remaining"`
	RemainingFmt  string          `json:"remainingFmt"`
}

// SheetResponse is the daily withdrawal worksheet for one day.
type SheetResponse struct {
	Day          string              `json:"day"` // YYYY-MM-DD
	Rows         []SheetRowResponse  `json:"rows"`
	Totals       SheetTotalsResponse `json:"totals"`
	Banks        []string            `json:"banks"`
	SelectedBank string              `json:"selectedBank"`
	Page         int                 `json:"page"`
	PageSize     int                 `json:"pageSize"`
	TotalRows    int                 `json:"totalRows"`
}

// ToSheetResponse converts a domain.DailySheet to SheetResponse DTO.
// fmtAmount renders the display string for each amount column.
func ToSheetResponse(sheet *domain.DailySheet, fmtAmount func(decimal.Decimal) string) SheetResponse {
	rows := make([]SheetRowResponse, len(sheet.Rows))
	for i, r := range sheet.Rows {
		rows[i] = SheetRowResponse{
			CardID:         r.CardID,
			Label:          r.Label,
			Bank:           r.Bank,
			BankColor:      r.BankColor,
			PIN:            r.PIN,
			ShouldHave:     r.ShouldHave,
			ShouldHaveFmt:  fmtAmount(r.ShouldHave),
			Withdrawn:      r.Withdrawn,
			WithdrawnFmt:   fmtAmount(r.Withdrawn),
			Commission:     r.Commission,
			CommissionFmt:  fmtAmount(r.Commission),
			Remaining:      r.Remaining,
			RemainingFmt:   fmtAmount(r.Remaining),
			FullyWithdrawn: r.FullyWithdrawn,
			Note:           r.Note,
		}
	}
	return SheetResponse{
		Day:  sheet.Day.Format(time.DateOnly),
		Rows: rows,
		Totals: SheetTotalsResponse{
			ShouldHave:    sheet.Totals.ShouldHave,
			ShouldHaveFmt: fmtAmount(sheet.Totals.ShouldHave),
			Withdrawn:     sheet.Totals.Withdrawn,
			WithdrawnFmt:  fmtAmount(sheet.Totals.Withdrawn),
			Commission:    sheet.Totals.Commission,
			CommissionFmt: fmtAmount(sheet.Totals.Commission),
			Remaining:     sheet.Totals.Remaining,
			RemainingFmt:  fmtAmount(sheet.Totals.Remaining),
		},
		Banks:        sheet.Banks,
		SelectedBank: sheet.SelectedBank,
		Page:         sheet.Page,
		PageSize:     sheet.PageSize,
		TotalRows:    sheet.TotalRows,
	}
}

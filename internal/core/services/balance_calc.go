package services

import (
	"sort"
	"time"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// balanceCalc runs the balance math for one card over an in-memory snapshot of
// its history: transactions ascending by event time and withdrawals already
// collapsed to one row per date. A calc is built per computation and never
// shared across requests; the memo caches should-have per calendar day.
//
// Days are calendar dates; their instant boundaries are evaluated in the
// reference timezone.
type balanceCalc struct {
	loc  *time.Location
	txns []domain.Transaction
	wds  []domain.Withdrawal
	memo map[string]decimal.Decimal
}

func newBalanceCalc(loc *time.Location, txns []domain.Transaction, deduped []domain.Withdrawal) *balanceCalc {
	return &balanceCalc{
		loc:  loc,
		txns: txns,
		wds:  deduped,
		memo: make(map[string]decimal.Decimal),
	}
}

// dateKeyOf identifies the calendar day of a date value by its own Y/M/D.
func dateKeyOf(t time.Time) string {
	return t.Format(time.DateOnly)
}

// dayStart returns the instant the calendar day begins in the reference zone.
func (c *balanceCalc) dayStart(day time.Time) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, c.loc)
}

// carriedBalance is the balance carried into day from everything before it,
// under the reset-on-full policy: the window opens the day after the most
// recent full withdrawal before day, receipts inside the window count in full,
// non-full withdrawals subtract their recorded withdrawn+commission, and the
// result never drops below zero.
func (c *balanceCalc) carriedBalance(day time.Time) decimal.Decimal {
	dayKey := dateKeyOf(day)

	// Locate the window start: the day after the last full withdrawal before day.
	windowKey := "" // empty means beginning of history
	var windowStart time.Time
	for _, w := range c.wds {
		if w.DateKey() >= dayKey {
			break
		}
		if w.FullyWithdrawn {
			windowStart = w.Date.AddDate(0, 0, 1)
			windowKey = dateKeyOf(windowStart)
		}
	}

	received := decimal.Zero
	end := c.dayStart(day)
	var start time.Time
	if windowKey != "" {
		start = c.dayStart(windowStart)
	}
	for _, t := range c.txns {
		if !t.Timestamp.Before(end) {
			break
		}
		if windowKey != "" && t.Timestamp.Before(start) {
			continue
		}
		received = received.Add(t.AmountRUB)
	}

	withdrawn := decimal.Zero
	for _, w := range c.wds {
		key := w.DateKey()
		if key >= dayKey {
			break
		}
		if key < windowKey {
			continue
		}
		if w.FullyWithdrawn {
			// Only the reset marker itself; nothing non-full precedes day
			// inside the window.
			continue
		}
		if w.WithdrawnRUB != nil {
			withdrawn = withdrawn.Add(*w.WithdrawnRUB)
		}
		withdrawn = withdrawn.Add(w.CommissionRUB)
	}

	carried := received.Sub(withdrawn)
	if carried.IsNegative() {
		return decimal.Zero
	}
	return carried
}

// receivedOnDay sums receipts whose event instant falls inside the half-open
// local day window [day 00:00, day+1 00:00).
func (c *balanceCalc) receivedOnDay(day time.Time) decimal.Decimal {
	start := c.dayStart(day)
	end := start.AddDate(0, 0, 1)
	total := decimal.Zero
	for _, t := range c.txns {
		if !t.Timestamp.Before(end) {
			break
		}
		if t.Timestamp.Before(start) {
			continue
		}
		total = total.Add(t.AmountRUB)
	}
	return total
}

// shouldHave is carriedBalance plus receivedOnDay, memoized per day.
func (c *balanceCalc) shouldHave(day time.Time) decimal.Decimal {
	key := dateKeyOf(day)
	if v, ok := c.memo[key]; ok {
		return v
	}
	v := c.carriedBalance(day).Add(c.receivedOnDay(day))
	c.memo[key] = v
	return v
}

// effectiveWithdrawn is the amount a withdrawal record actually drains: the
// day's should-have for full withdrawals (the stored amount is meaningless
// then), otherwise the stored amount or zero.
func (c *balanceCalc) effectiveWithdrawn(w domain.Withdrawal) decimal.Decimal {
	if w.FullyWithdrawn {
		return c.shouldHave(w.Date)
	}
	if w.WithdrawnRUB != nil {
		return *w.WithdrawnRUB
	}
	return decimal.Zero
}

// rangeTotals aggregates received / effectively withdrawn / commission over
// the optional inclusive date range. Deliberately not carry-aware: without a
// start it is the plain all-time total.
func (c *balanceCalc) rangeTotals(start, end *time.Time) domain.RangeTotals {
	var startInstant, endInstant time.Time
	startKey, endKey := "", ""
	if start != nil {
		startInstant = c.dayStart(*start)
		startKey = dateKeyOf(*start)
	}
	if end != nil {
		endInstant = c.dayStart(*end).AddDate(0, 0, 1)
		endKey = dateKeyOf(*end)
	}

	totals := domain.RangeTotals{
		Received:   decimal.Zero,
		Withdrawn:  decimal.Zero,
		Commission: decimal.Zero,
	}

	for _, t := range c.txns {
		if end != nil && !t.Timestamp.Before(endInstant) {
			break
		}
		if start != nil && t.Timestamp.Before(startInstant) {
			continue
		}
		totals.Received = totals.Received.Add(t.AmountRUB)
	}

	for _, w := range c.wds {
		key := w.DateKey()
		if endKey != "" && key > endKey {
			break
		}
		if startKey != "" && key < startKey {
			continue
		}
		totals.Withdrawn = totals.Withdrawn.Add(c.effectiveWithdrawn(w))
		totals.Commission = totals.Commission.Add(w.CommissionRUB)
	}

	totals.Balance = totals.Received.Sub(totals.Withdrawn).Sub(totals.Commission)
	return totals
}

// dedupeWithdrawals collapses duplicate rows per (card, date), keeping the row
// with the greatest (timestamp, id); a missing timestamp loses to any set one.
// Survivors come back ascending by date. Idempotent.
func dedupeWithdrawals(withdrawals []domain.Withdrawal) []domain.Withdrawal {
	type rowKey struct {
		cardID string
		date   string
	}
	best := make(map[rowKey]domain.Withdrawal, len(withdrawals))
	for _, w := range withdrawals {
		k := rowKey{w.CardID, w.DateKey()}
		current, ok := best[k]
		if !ok || withdrawalNewer(w, current) {
			best[k] = w
		}
	}

	out := make([]domain.Withdrawal, 0, len(best))
	for _, w := range best {
		out = append(out, w)
	}
	sort.Slice(out, func(i, j int) bool {
		ki, kj := out[i].DateKey(), out[j].DateKey()
		if ki != kj {
			return ki < kj
		}
		if out[i].CardID != out[j].CardID {
			return out[i].CardID < out[j].CardID
		}
		return out[i].WithdrawalID < out[j].WithdrawalID
	})
	return out
}

// withdrawalNewer reports whether a beats b as the surviving row for a key.
func withdrawalNewer(a, b domain.Withdrawal) bool {
	switch {
	case a.Timestamp == nil && b.Timestamp == nil:
		return a.WithdrawalID > b.WithdrawalID
	case a.Timestamp == nil:
		return false
	case b.Timestamp == nil:
		return true
	case a.Timestamp.Equal(*b.Timestamp):
		return a.WithdrawalID > b.WithdrawalID
	default:
		return a.Timestamp.After(*b.Timestamp)
	}
}

package mapping

import (
	"database/sql"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelWithdrawal converts a domain Withdrawal to a model Withdrawal
func ToModelWithdrawal(d domain.Withdrawal) models.Withdrawal {
	m := models.Withdrawal{
		WithdrawalID:   d.WithdrawalID,
		CardID:         d.CardID,
		Date:           d.Date,
		FullyWithdrawn: d.FullyWithdrawn,
		CommissionRUB:  d.CommissionRUB,
		Note:           d.Note,
		AuditFields:    ToModelAuditFields(d.AuditFields),
	}
	if d.Timestamp != nil {
		m.Timestamp = sql.NullTime{Time: *d.Timestamp, Valid: true}
	}
	if d.WithdrawnRUB != nil {
		m.WithdrawnRUB = decimal.NullDecimal{Decimal: *d.WithdrawnRUB, Valid: true}
	}
	return m
}

// ToDomainWithdrawal converts a model Withdrawal to a domain Withdrawal
func ToDomainWithdrawal(m models.Withdrawal) domain.Withdrawal {
	d := domain.Withdrawal{
		WithdrawalID:   m.WithdrawalID,
		CardID:         m.CardID,
		Date:           m.Date,
		FullyWithdrawn: m.FullyWithdrawn,
		CommissionRUB:  m.CommissionRUB,
		Note:           m.Note,
		AuditFields:    ToDomainAuditFields(m.AuditFields),
	}
	if m.Timestamp.Valid {
		t := m.Timestamp.Time
		d.Timestamp = &t
	}
	if m.WithdrawnRUB.Valid {
		w := m.WithdrawnRUB.Decimal
		d.WithdrawnRUB = &w
	}
	return d
}

// ToDomainWithdrawalSlice converts a slice of model Withdrawals to domain Withdrawals
func ToDomainWithdrawalSlice(ms []models.Withdrawal) []domain.Withdrawal {
	ds := make([]domain.Withdrawal, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainWithdrawal(m)
	}
	return ds
}

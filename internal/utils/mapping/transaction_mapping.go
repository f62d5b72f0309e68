package mapping

import (
	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID: d.TransactionID,
		CardID:        d.CardID,
		ClientID:      d.ClientID,
		Timestamp:     d.Timestamp,
		AmountRUB:     d.AmountRUB,
		AmountUSD:     d.AmountUSD,
		Notes:         d.Notes,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
	if d.Rate != nil {
		m.Rate = decimal.NullDecimal{Decimal: *d.Rate, Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID: m.TransactionID,
		CardID:        m.CardID,
		ClientID:      m.ClientID,
		Timestamp:     m.Timestamp,
		AmountRUB:     m.AmountRUB,
		AmountUSD:     m.AmountUSD,
		Notes:         m.Notes,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
	if m.Rate.Valid {
		rate := m.Rate.Decimal
		d.Rate = &rate
	}
	return d
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}

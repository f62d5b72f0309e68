package mapping

import (
	"database/sql"

	"github.com/cardflow-app/cardflow_backend/internal/core/domain"
	"github.com/cardflow-app/cardflow_backend/internal/models"
)

// ToModelCard converts a domain Card to a model Card
func ToModelCard(d domain.Card) models.Card {
	m := models.Card{
		CardID:      d.CardID,
		Name:        d.Name,
		Bank:        d.Bank,
		CardNumber:  d.CardNumber,
		PIN:         d.PIN,
		Status:      string(d.Status),
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.GroupID != nil {
		m.GroupID = sql.NullString{String: *d.GroupID, Valid: true}
	}
	return m
}

// ToDomainCard converts a model Card to a domain Card
func ToDomainCard(m models.Card) domain.Card {
	d := domain.Card{
		CardID:      m.CardID,
		Name:        m.Name,
		Bank:        m.Bank,
		CardNumber:  m.CardNumber,
		PIN:         m.PIN,
		Status:      domain.CardStatus(m.Status),
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.GroupID.Valid {
		groupID := m.GroupID.String
		d.GroupID = &groupID
	}
	return d
}

// ToDomainCardSlice converts a slice of model Cards to a slice of domain Cards
func ToDomainCardSlice(ms []models.Card) []domain.Card {
	ds := make([]domain.Card, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCard(m)
	}
	return ds
}

// ToModelCardGroup converts a domain CardGroup to a model CardGroup
func ToModelCardGroup(d domain.CardGroup) models.CardGroup {
	return models.CardGroup{
		GroupID:     d.GroupID,
		Name:        d.Name,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCardGroup converts a model CardGroup to a domain CardGroup
func ToDomainCardGroup(m models.CardGroup) domain.CardGroup {
	return domain.CardGroup{
		GroupID:     m.GroupID,
		Name:        m.Name,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCardGroupSlice converts a slice of model CardGroups to domain CardGroups
func ToDomainCardGroupSlice(ms []models.CardGroup) []domain.CardGroup {
	ds := make([]domain.CardGroup, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCardGroup(m)
	}
	return ds
}

// ToModelBankColor converts a domain BankColor to a model BankColor
func ToModelBankColor(d domain.BankColor) models.BankColor {
	return models.BankColor{
		Bank:        d.Bank,
		Color:       d.Color,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainBankColor converts a model BankColor to a domain BankColor
func ToDomainBankColor(m models.BankColor) domain.BankColor {
	return domain.BankColor{
		Bank:        m.Bank,
		Color:       m.Color,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainBankColorSlice converts a slice of model BankColors to domain BankColors
func ToDomainBankColorSlice(ms []models.BankColor) []domain.BankColor {
	ds := make([]domain.BankColor, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBankColor(m)
	}
	return ds
}

package models

import "database/sql"

// Card represents a payment card row. The (name, bank, card_number) triple is
// unique across the table.
type Card struct {
	CardID     string         `json:"cardID" db:"card_id"`
	Name       string         `json:"name" db:"name"`
	Bank       string         `json:"bank" db:"bank"`
	CardNumber string         `json:"cardNumber" db:"card_number"`
	PIN        string         `json:"pin" db:"pin"`
	Status     string         `json:"status" db:"status"`
	GroupID    sql.NullString `json:"groupID" db:"group_id"`
	Notes      string         `json:"notes" db:"notes"`
	AuditFields
}

// CardGroup represents a card grouping bucket row.
type CardGroup struct {
	GroupID string `json:"groupID" db:"group_id"`
	Name    string `json:"name" db:"name"`
	AuditFields
}

// BankColor represents the display color assigned to a bank name. The bank
// name itself is the primary key.
type BankColor struct {
	Bank  string `json:"bank" db:"bank"`
	Color string `json:"color" db:"color"`
	AuditFields
}

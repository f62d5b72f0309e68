package domain

import "strings"

// CardStatus describes the operational state of a payment card.
type CardStatus string

const (
	CardActive CardStatus = "ACTIVE"
	CardBroken CardStatus = "BROKEN"
	CardHold   CardStatus = "HOLD"
)

// Card represents one payment card in the pool.
// Identity is the (Name, Bank, CardNumber) triple, which must be unique.
type Card struct {
	CardID     string     `json:"cardID"`     // Primary Key (UUID)
	Name       string     `json:"name"`       // Display name, e.g. cardholder alias
	Bank       string     `json:"bank"`       // Bank name, grouping/coloring key, may be empty
	CardNumber string     `json:"cardNumber"` // Masked or full number, may be empty
	PIN        string     `json:"pin"`        // Operator-facing PIN, may be empty
	Status     CardStatus `json:"status"`
	GroupID    *string    `json:"groupID"` // Nullable FK -> card_groups.group_id
	Notes      string     `json:"notes"`
	AuditFields
}

// DisplayLabel builds the human-readable card label: bank, name and the last
// four digits of the number, skipping whichever parts are absent.
func (c Card) DisplayLabel() string {
	parts := make([]string, 0, 3)
	if c.Bank != "" {
		parts = append(parts, c.Bank)
	}
	if c.Name != "" {
		parts = append(parts, c.Name)
	}
	if c.CardNumber != "" {
		digits := c.CardNumber
		if len(digits) > 4 {
			digits = digits[len(digits)-4:]
		}
		parts = append(parts, "*"+digits)
	}
	if len(parts) == 0 {
		return "Card " + c.CardID
	}
	return strings.Join(parts, " ")
}

// CardGroup is an optional grouping bucket for cards.
type CardGroup struct {
	GroupID string `json:"groupID"` // Primary Key (UUID)
	Name    string `json:"name"`    // Unique, matched case-insensitively on get-or-create
	AuditFields
}

// BankColor is presentation metadata: the display color assigned to a bank name.
type BankColor struct {
	Bank  string `json:"bank"`  // Primary Key, the bank name as stored on cards
	Color string `json:"color"` // Hex color, e.g. "#1a73e8"
	AuditFields
}

// DefaultBankColor is used when no explicit color is assigned to a bank.
const DefaultBankColor = "#000000"

package domain

// ClientStatus describes the state of a client relationship.
type ClientStatus string

const (
	ClientActive  ClientStatus = "ACTIVE"
	ClientBlocked ClientStatus = "BLOCKED"
	ClientHold    ClientStatus = "HOLD"
)

// Client represents a party on whose behalf money arrives on cards.
type Client struct {
	ClientID string       `json:"clientID"` // Primary Key (UUID)
	Name     string       `json:"name"`     // Unique
	Status   ClientStatus `json:"status"`
	Notes    string       `json:"notes"`
	AuditFields
}

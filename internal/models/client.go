package models

// Client represents a client row. Names are unique.
type Client struct {
	ClientID string `json:"clientID" db:"client_id"`
	Name     string `json:"name" db:"name"`
	Status   string `json:"status" db:"status"`
	Notes    string `json:"notes" db:"notes"`
	AuditFields
}

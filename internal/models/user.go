package models

import (
	"database/sql"
)

// User represents an operator account row.
type User struct {
	UserID       string `json:"userID" db:"user_id"`
	Username     string `json:"username" db:"username"`
	PasswordHash string `json:"-" db:"password_hash"`
	Name         string `json:"name" db:"name"`
	AuditFields

	// Refresh token state, stored hashed.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}

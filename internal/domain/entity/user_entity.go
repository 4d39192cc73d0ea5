package entity

import (
	"time"
)

// User is the aggregate root for the user domain
// Passwords are stored as bcrypt hashes in PasswordHash; the plaintext is
// never persisted or returned.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Address      string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

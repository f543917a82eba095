package models

import "time"

// User is the stored account record. PasswordHash is never serialized; it is
// empty for accounts created through the plain CRUD path without a password.
type User struct {
	ID           string    `db:"id" json:"id"`
	Name         string    `db:"name" json:"name,omitempty"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}

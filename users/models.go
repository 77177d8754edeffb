// Package users implements user registration, login, and profile lookup.
package users

import "time"

// User is the persisted account record. The password hash never leaves the
// server.
type User struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	RegisteredAt time.Time `json:"registered_at"`
}

package users

import "time"

// RegisterRequest is the body of POST /api/register.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email_basic"`
	Password string `json:"password" validate:"required,min=8"`
}

// LoginRequest is the body of POST /api/login. Accounts are identified by
// their numeric ID.
type LoginRequest struct {
	ID       int    `json:"id"`
	Password string `json:"password"`
}

// RegisterResponse confirms account creation.
type RegisterResponse struct {
	Msg string `json:"msg"`
	ID  int    `json:"id"`
}

// TokenResponse carries the access token returned by login.
type TokenResponse struct {
	Token string `json:"token"`
}

// UserResponse is the public view of a user. Email and password are omitted.
type UserResponse struct {
	ID           int       `json:"id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

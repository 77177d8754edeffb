// Package auth provides credential hashing, token issuance and verification,
// and the HTTP middleware that guards protected routes.
package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/user/adboard-go/apperror"
)

// HashPassword derives a bcrypt hash from a plaintext password. The salt is
// generated and embedded in the hash by bcrypt itself.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperror.NewInternalError("failed to hash password", err)
	}
	return string(hash), nil
}

// CheckPassword reports whether the plaintext password matches the stored
// bcrypt hash.
func CheckPassword(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

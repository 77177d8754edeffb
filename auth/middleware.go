package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/adboard-go/apperror"
)

// ContextKey is a dedicated type for context keys to avoid collisions with
// other packages.
type ContextKey string

// UserIDKey is the context key under which the authenticated user's ID is
// stored by the middleware.
const UserIDKey ContextKey = "userID"

// Middleware returns a chi-compatible middleware that requires a valid Bearer
// token on every request it wraps. On success the user ID from the token is
// placed in the request context.
func Middleware(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Authorization header is missing", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), UserIDKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext retrieves the user ID set by Middleware. The boolean is
// false when the request was not authenticated.
func GetUserIDFromContext(ctx context.Context) (int, bool) {
	userID, ok := ctx.Value(UserIDKey).(int)
	return userID, ok
}

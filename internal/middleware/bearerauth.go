// Package middleware provides HTTP middlewares for authentication,
// logging, and rate limiting.
package middleware

import (
	"context"
	"net/http"

	"github.com/ilyakh/ShopKeeper/internal/auth"
)

type ctxKey string

const userKey ctxKey = "user"

// BearerAuth returns a middleware that enforces bearer token authentication.
//
// It extracts the token from the Authorization header and validates it with
// the given Manager. On success the authenticated user ID is stored in the
// request context for use downstream.
func BearerAuth(m *auth.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.TokenFromRequest(r)
			if token == "" {
				http.Error(w, "authorization required", http.StatusUnauthorized)
				return
			}
			claims, err := m.Validate(token)
			if err != nil {
				http.Error(w, "invalid token", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userKey, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUserIDFromContext extracts the authenticated user ID from the request
// context. Returns 0 if not found.
func GetUserIDFromContext(ctx context.Context) int64 {
	val := ctx.Value(userKey)
	if id, ok := val.(int64); ok {
		return id
	}
	return 0
}

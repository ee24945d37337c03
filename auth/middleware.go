// HTTP middleware resolving the current user on protected routes. The
// middleware extracts the bearer token, verifies it, maps its subject back to a
// user record, and stores the user in the request context for handlers.
package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/user/blogapi-go/apperror"
)

// contextKey is a private type for context keys to avoid collisions with other
// packages.
type contextKey string

// userContextKey is the key under which the authenticated *User is stored.
const userContextKey contextKey = "currentUser"

// RequireUser returns middleware that rejects requests without a valid bearer
// token. Missing header, malformed header, invalid or expired token, and a
// subject that no longer resolves to a user all yield 401; a resolved but
// deactivated account yields 400, matching the login behavior.
func RequireUser(service *AuthService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				WriteError(w, r, apperror.NewAuthError("Not authenticated", nil))
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				WriteError(w, r, apperror.NewAuthError("Authorization header format must be Bearer {token}", nil))
				return
			}

			subject, err := service.tokens.Verify(parts[1])
			if err != nil {
				WriteError(w, r, apperror.NewAuthError("Could not validate credentials", err))
				return
			}

			user, err := service.CurrentUser(r.Context(), subject)
			if err != nil {
				WriteError(w, r, err)
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserFromContext retrieves the authenticated user placed in the context by
// RequireUser. The bool is false when the middleware did not run.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey).(*User)
	return user, ok
}

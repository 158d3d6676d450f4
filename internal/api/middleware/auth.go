// Package middleware provides the HTTP middleware applied by the router:
// bearer-token authentication, trace IDs and request metrics.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/phrazzld/rolodex-api/internal/api/shared"
	"github.com/phrazzld/rolodex-api/internal/domain"
	"github.com/phrazzld/rolodex-api/internal/store"
)

// AuthMiddleware authenticates requests by the opaque token in the
// Authorization header. The header carries the raw token value with no
// scheme prefix; it is compared verbatim against the token stored on the
// user row.
type AuthMiddleware struct {
	users store.UserStore
}

// NewAuthMiddleware creates a new AuthMiddleware backed by the given store.
func NewAuthMiddleware(users store.UserStore) *AuthMiddleware {
	return &AuthMiddleware{users: users}
}

// Authenticate looks up the user owning the presented token and stores the
// user record in the request context. Missing or unknown tokens get a 401
// with the uniform "Unauthorized" message.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.Header.Get("Authorization")
		if token == "" {
			shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
			return
		}

		user, err := m.users.GetByToken(r.Context(), token)
		if err != nil {
			if errors.Is(err, store.ErrUserNotFound) {
				shared.RespondWithError(w, r, http.StatusUnauthorized, "Unauthorized")
				return
			}
			slog.Error("failed to look up token", "error", err)
			shared.RespondWithError(w, r, http.StatusInternalServerError, "Internal Server Error")
			return
		}

		ctx := context.WithValue(r.Context(), shared.UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser extracts the authenticated user from the request context.
// Returns the user and a boolean indicating if it was found.
func GetUser(r *http.Request) (*domain.User, bool) {
	user, ok := r.Context().Value(shared.UserContextKey).(*domain.User)
	return user, ok
}

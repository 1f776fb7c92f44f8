package middleware

import (
	"context"
	"errors"
	"log"
	"net/http"

	"github.com/hydrate-app/hydrate/internal/apperr"
)

// SessionResolver maps a request to the id of its authenticated user.
type SessionResolver interface {
	UserIDFromRequest(r *http.Request) (int64, error)
}

type userIDKey struct{}

// WithUserID returns a copy of ctx carrying the authenticated user id.
func WithUserID(ctx context.Context, userID int64) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserID returns the authenticated user id stored by RequireAuth.
func UserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey{}).(int64)
	return id, ok && id > 0
}

// RequireAuth is middleware that validates the session cookie and
// injects the user id into the request context. Anonymous clients are
// redirected to the login page.
func RequireAuth(sessions SessionResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := sessions.UserIDFromRequest(r)
			if err != nil {
				if !errors.Is(err, apperr.ErrUnauthenticated) {
					log.Printf("session lookup error: %v", err)
				}
				http.Redirect(w, r, "/login", http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

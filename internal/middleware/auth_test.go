package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hydrate-app/hydrate/internal/apperr"
)

type resolverFunc func(r *http.Request) (int64, error)

func (f resolverFunc) UserIDFromRequest(r *http.Request) (int64, error) { return f(r) }

func TestRequireAuth_InjectsUserID(t *testing.T) {
	var got int64
	h := RequireAuth(resolverFunc(func(*http.Request) (int64, error) { return 42, nil }))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, _ = UserID(r.Context())
		}),
	)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	if got != 42 {
		t.Fatalf("expected user id 42, got %d", got)
	}
}

func TestRequireAuth_RedirectsAnonymousToLogin(t *testing.T) {
	for _, resolveErr := range []error{apperr.ErrUnauthenticated, errors.New("redis down")} {
		called := false
		h := RequireAuth(resolverFunc(func(*http.Request) (int64, error) { return 0, resolveErr }))(
			http.HandlerFunc(func(http.ResponseWriter, *http.Request) { called = true }),
		)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/add_water", nil))
		if called {
			t.Fatalf("next handler must not run for %v", resolveErr)
		}
		if rec.Code != http.StatusFound || rec.Header().Get("Location") != "/login" {
			t.Fatalf("expected redirect to /login, got %d %q", rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestUserID_MissingIsNotOK(t *testing.T) {
	if _, ok := UserID(httptest.NewRequest(http.MethodGet, "/", nil).Context()); ok {
		t.Fatalf("expected no user id on a bare context")
	}
}

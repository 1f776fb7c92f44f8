package dashboard

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/middleware"
)

// Handler serves the dashboard view.
type Handler struct {
	svc      *Service
	sessions *auth.SessionStore
}

func NewHandler(svc *Service, sessions *auth.SessionStore) *Handler {
	return &Handler{svc: svc, sessions: sessions}
}

// Show returns the dashboard of the current user.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	view, err := h.svc.Build(r.Context(), userID)
	if errors.Is(err, apperr.ErrNotFound) {
		// The session outlived its user.
		http.Redirect(w, r, "/logout", http.StatusFound)
		return
	}
	if err != nil {
		log.Printf("dashboard error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	view.Flashes = h.sessions.TakeFlashes(r)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(view)
}

package export

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/middleware"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Handler holds export HTTP handlers.
type Handler struct {
	svc      *Service
	sessions *auth.SessionStore
	activity activity.Store
}

func NewHandler(svc *Service, sessions *auth.SessionStore, events activity.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions, activity: events}
}

// Create writes a fresh export of the current user's history.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	days, err := h.svc.Create(r.Context(), userID)
	if err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	activity.Record(r.Context(), h.activity, userID, models.ActivityExported, strconv.Itoa(days))
	h.sessions.Flash(w, r, apperr.CategorySuccess, fmt.Sprintf("Export ready (%d days).", days))
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Download streams the latest export as a CSV attachment.
func (h *Handler) Download(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	data, err := h.svc.Fetch(r.Context(), userID)
	if errors.Is(err, apperr.ErrNotFound) {
		http.Error(w, `{"error":"no export available"}`, http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("export download error: %v", err)
		http.Error(w, `{"error":"download failed"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", fileName))
	w.Write(data)
}

package intake

import (
	"fmt"
	"net/http"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/middleware"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Handler holds intake HTTP handlers.
type Handler struct {
	svc      *Service
	sessions *auth.SessionStore
	activity activity.Store
}

func NewHandler(svc *Service, sessions *auth.SessionStore, events activity.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions, activity: events}
}

// AddWater accumulates the posted amount into today's total.
func (h *Handler) AddWater(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	amount, err := ParseAmount(r.FormValue("amount"))
	if err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	today := h.svc.Today()
	if err := h.svc.RecordIntake(r.Context(), userID, amount, today); err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	detail := FormatLiters(amount)
	activity.Record(r.Context(), h.activity, userID, models.ActivityIntakeAdded, detail)
	h.sessions.Flash(w, r, apperr.CategorySuccess, fmt.Sprintf("Added %s liters for %s", detail, models.DayKey(today)))
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

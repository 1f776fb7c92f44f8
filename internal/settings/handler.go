package settings

import (
	"net/http"
	"strconv"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/middleware"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Handler holds settings HTTP handlers.
type Handler struct {
	svc      *Service
	sessions *auth.SessionStore
	activity activity.Store
}

func NewHandler(svc *Service, sessions *auth.SessionStore, events activity.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions, activity: events}
}

// UpdateGoal sets the daily goal from the posted form.
func (h *Handler) UpdateGoal(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	goal, err := ParseGoal(r.FormValue("daily_goal"))
	if err == nil {
		err = h.svc.UpdateDailyGoal(r.Context(), userID, goal)
	}
	if err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	activity.Record(r.Context(), h.activity, userID, models.ActivityGoalUpdated, strconv.FormatFloat(goal, 'f', -1, 64))
	h.sessions.Flash(w, r, apperr.CategorySuccess, "Settings updated!")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// UpdateTheme sets the UI theme from the posted form.
func (h *Handler) UpdateTheme(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	theme := r.FormValue("theme")
	if err := h.svc.UpdateTheme(r.Context(), userID, theme); err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}

	activity.Record(r.Context(), h.activity, userID, models.ActivityThemeUpdated, theme)
	h.sessions.Flash(w, r, apperr.CategorySuccess, "Theme updated!")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

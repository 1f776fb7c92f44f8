package reminder

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/auth"
	"github.com/hydrate-app/hydrate/internal/middleware"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Handler holds reminder HTTP handlers.
type Handler struct {
	svc      *Service
	sessions *auth.SessionStore
	activity activity.Store
}

func NewHandler(svc *Service, sessions *auth.SessionStore, events activity.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions, activity: events}
}

// Add creates a reminder from the posted form.
func (h *Handler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	rem, err := h.svc.Add(r.Context(), userID, r.FormValue("name"), r.FormValue("message"), r.FormValue("time"))
	if err != nil {
		h.sessions.FlashError(w, r, err)
	} else {
		activity.Record(r.Context(), h.activity, userID, models.ActivityReminderAdded, strconv.FormatInt(rem.ID, 10))
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Toggle flips a reminder on or off.
func (h *Handler) Toggle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	active, err := h.svc.Toggle(r.Context(), userID, id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		http.NotFound(w, r)
		return
	case err != nil:
		h.sessions.FlashError(w, r, err)
	default:
		state := "off"
		if active {
			state = "on"
		}
		activity.Record(r.Context(), h.activity, userID, models.ActivityReminderToggled, strconv.FormatInt(id, 10)+" "+state)
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Delete removes a reminder if the current user owns it.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	err = h.svc.Delete(r.Context(), userID, id)
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, apperr.ErrForbidden):
		h.sessions.Flash(w, r, apperr.CategoryDanger, "You are not allowed to delete this reminder.")
	case err != nil:
		h.sessions.FlashError(w, r, err)
	default:
		activity.Record(r.Context(), h.activity, userID, models.ActivityReminderDeleted, strconv.FormatInt(id, 10))
		h.sessions.Flash(w, r, apperr.CategorySuccess, "Reminder deleted successfully!")
	}
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

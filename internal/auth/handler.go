package auth

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/hydrate-app/hydrate/internal/activity"
	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Handler holds auth-related HTTP handlers.
type Handler struct {
	svc      *Service
	sessions *SessionStore
	activity activity.Store
}

func NewHandler(svc *Service, sessions *SessionStore, events activity.Store) *Handler {
	return &Handler{svc: svc, sessions: sessions, activity: events}
}

type pageResponse struct {
	Flashes []models.Flash `json:"flashes"`
}

// Page returns the pending notices for the login and register forms.
func (h *Handler) Page(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(pageResponse{Flashes: h.sessions.TakeFlashes(r)})
}

// Register creates a new user from the posted form.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	userID, err := h.svc.Register(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/register", http.StatusFound)
		return
	}

	activity.Record(r.Context(), h.activity, userID, models.ActivityRegister, "")
	h.sessions.Flash(w, r, apperr.CategorySuccess, "Registration successful! Please login.")
	http.Redirect(w, r, "/login", http.StatusFound)
}

// Login authenticates a user and binds a fresh session to them.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	userID, err := h.svc.Login(r.Context(), r.FormValue("username"), r.FormValue("password"))
	if err != nil {
		h.sessions.FlashError(w, r, err)
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	// Rotate the session id on login.
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		h.sessions.Delete(r.Context(), cookie.Value)
	}

	sid, err := h.sessions.Create(r.Context(), userID)
	if err != nil {
		log.Printf("session create error: %v", err)
		h.sessions.clearCookie(w)
		http.Error(w, "session creation failed", http.StatusInternalServerError)
		return
	}
	h.sessions.setCookie(w, sid)

	activity.Record(r.Context(), h.activity, userID, models.ActivityLogin, "")
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

// Logout destroys the current session unconditionally.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		if err := h.sessions.Delete(r.Context(), cookie.Value); err != nil {
			log.Printf("session delete error (non-fatal): %v", err)
		}
	}
	h.sessions.clearCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}

package auth

import (
	"log"
	"net/http"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Flash queues a notice for the requesting client.
func (s *SessionStore) Flash(w http.ResponseWriter, r *http.Request, category, message string) {
	sid := s.ensureID(w, r)
	if err := s.AddFlash(r.Context(), sid, models.Flash{Category: category, Message: message}); err != nil {
		log.Printf("flash error (non-fatal): %v", err)
	}
}

// FlashError turns err into a danger notice. Errors that are not a known
// kind are logged and shown as a generic notice.
func (s *SessionStore) FlashError(w http.ResponseWriter, r *http.Request, err error) {
	msg, known := apperr.Message(err)
	if !known {
		log.Printf("%s %s error: %v", r.Method, r.URL.Path, err)
	}
	s.Flash(w, r, apperr.CategoryDanger, msg)
}

// TakeFlashes pops the pending notices of the requesting client.
func (s *SessionStore) TakeFlashes(r *http.Request) []models.Flash {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return []models.Flash{}
	}
	flashes, err := s.PopFlashes(r.Context(), cookie.Value)
	if err != nil {
		log.Printf("pop flashes error (non-fatal): %v", err)
		return []models.Flash{}
	}
	return flashes
}

package activity

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/hydrate-app/hydrate/internal/middleware"
	"github.com/hydrate-app/hydrate/internal/models"
)

const (
	defaultLimit = 50
	maxLimit     = 200
)

// Handler serves the activity feed.
type Handler struct {
	store Store
}

func NewHandler(store Store) *Handler {
	return &Handler{store: store}
}

// List returns the newest events of the current user.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		http.Redirect(w, r, "/login", http.StatusFound)
		return
	}

	limit := int64(defaultLimit)
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			http.Error(w, `{"error":"invalid limit"}`, http.StatusBadRequest)
			return
		}
		limit = min(n, maxLimit)
	}

	events, err := h.store.ListByUser(r.Context(), userID, limit)
	if err != nil {
		log.Printf("list activity error: %v", err)
		http.Error(w, `{"error":"database error"}`, http.StatusInternalServerError)
		return
	}
	if events == nil {
		events = []models.Activity{}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(events)
}

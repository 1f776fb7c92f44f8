// Package activity records a per-user audit trail of state changes.
package activity

import (
	"context"
	"log"
	"time"

	"github.com/hydrate-app/hydrate/internal/models"
)

// Store defines the interface for activity persistence.
type Store interface {
	Record(ctx context.Context, a models.Activity) error
	ListByUser(ctx context.Context, userID int64, limit int64) ([]models.Activity, error)
}

// Nop discards events. It is used when no MongoDB is configured.
type Nop struct{}

func (Nop) Record(context.Context, models.Activity) error { return nil }

func (Nop) ListByUser(context.Context, int64, int64) ([]models.Activity, error) {
	return []models.Activity{}, nil
}

// Record stores an event. Failures are logged and never reach the caller.
func Record(ctx context.Context, s Store, userID int64, kind, detail string) {
	err := s.Record(ctx, models.Activity{
		UserID:    userID,
		Kind:      kind,
		Detail:    detail,
		CreatedAt: time.Now(),
	})
	if err != nil {
		log.Printf("record activity error (non-fatal): %v", err)
	}
}

package reminder

import (
	"context"
	"fmt"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// timeLen is the length of an "HH:MM" time string.
const timeLen = 5

// Store defines the interface for reminder persistence.
type Store interface {
	CreateReminder(ctx context.Context, r *models.Reminder) error
	GetReminder(ctx context.Context, id int64) (*models.Reminder, error)
	ToggleReminder(ctx context.Context, id int64) (bool, error)
	DeleteReminder(ctx context.Context, id int64) error
}

// Service manages reminders scoped to their owner.
type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// Add creates an active reminder. The time is cut to its first five
// characters and otherwise stored as given.
func (s *Service) Add(ctx context.Context, userID int64, name, message, at string) (*models.Reminder, error) {
	r := &models.Reminder{
		UserID:  userID,
		Name:    name,
		Message: message,
		Time:    truncateTime(at),
		Active:  true,
	}
	if err := s.store.CreateReminder(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func truncateTime(at string) string {
	runes := []rune(at)
	if len(runes) > timeLen {
		return string(runes[:timeLen])
	}
	return at
}

// Toggle flips the active flag of a reminder owned by userID and returns
// the new value.
func (s *Service) Toggle(ctx context.Context, userID, id int64) (bool, error) {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return false, err
	}
	return s.store.ToggleReminder(ctx, id)
}

// Delete removes a reminder owned by userID.
func (s *Service) Delete(ctx context.Context, userID, id int64) error {
	if _, err := s.owned(ctx, userID, id); err != nil {
		return err
	}
	return s.store.DeleteReminder(ctx, id)
}

func (s *Service) owned(ctx context.Context, userID, id int64) (*models.Reminder, error) {
	r, err := s.store.GetReminder(ctx, id)
	if err != nil {
		return nil, err
	}
	if r.UserID != userID {
		return nil, fmt.Errorf("reminder %d: %w", id, apperr.ErrForbidden)
	}
	return r, nil
}

package settings

import (
	"context"
	"math"
	"strconv"
	"strings"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Store defines the interface for settings persistence.
type Store interface {
	UpdateDailyGoal(ctx context.Context, userID int64, goal float64) error
	UpsertTheme(ctx context.Context, userID int64, theme string) error
}

type Service struct {
	store Store
}

func NewService(store Store) *Service {
	return &Service{store: store}
}

// ParseGoal parses a daily goal in liters from form input.
func ParseGoal(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || v <= 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, apperr.ErrInvalidGoal
	}
	return v, nil
}

// UpdateDailyGoal overwrites the user's daily goal.
func (s *Service) UpdateDailyGoal(ctx context.Context, userID int64, goal float64) error {
	if goal <= 0 || math.IsNaN(goal) || math.IsInf(goal, 0) {
		return apperr.ErrInvalidGoal
	}
	return s.store.UpdateDailyGoal(ctx, userID, goal)
}

// UpdateTheme stores the user's UI theme, creating the setting row on first use.
func (s *Service) UpdateTheme(ctx context.Context, userID int64, theme string) error {
	switch theme {
	case models.ThemeLight, models.ThemeDark:
	default:
		return apperr.ErrInvalidTheme
	}
	return s.store.UpsertTheme(ctx, userID, theme)
}

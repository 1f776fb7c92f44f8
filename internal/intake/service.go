package intake

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// LabelLayout formats series labels, e.g. "07-Mar".
const LabelLayout = "02-Jan"

// Store defines the interface for intake persistence.
type Store interface {
	AddIntake(ctx context.Context, userID int64, date time.Time, amount float64) error
	SumIntakeRange(ctx context.Context, userID int64, from, to time.Time) (map[string]float64, error)
}

// Service records and aggregates daily water intake.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// Today is the current calendar date.
func (s *Service) Today() time.Time {
	return models.Day(s.now())
}

// ParseAmount parses a liters value from form input.
func ParseAmount(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || !validAmount(v) {
		return 0, apperr.ErrInvalidAmount
	}
	return v, nil
}

// FormatLiters renders an amount the way notices show it, always with a
// fractional part ("1.0", "1.25").
func FormatLiters(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

func validAmount(v float64) bool {
	return v > 0 && !math.IsNaN(v) && !math.IsInf(v, 0)
}

// RecordIntake adds amount to the user's running total for date.
func (s *Service) RecordIntake(ctx context.Context, userID int64, amount float64, date time.Time) error {
	if !validAmount(amount) {
		return apperr.ErrInvalidAmount
	}
	if err := s.store.AddIntake(ctx, userID, date, amount); err != nil {
		return fmt.Errorf("record intake: %w", err)
	}
	return nil
}

// DailyTotal returns the liters recorded for date, 0 if none.
func (s *Service) DailyTotal(ctx context.Context, userID int64, date time.Time) (float64, error) {
	sums, err := s.store.SumIntakeRange(ctx, userID, date, date)
	if err != nil {
		return 0, err
	}
	return sums[models.DayKey(models.Day(date))], nil
}

// Series returns days consecutive daily totals ending at end, oldest first.
func (s *Service) Series(ctx context.Context, userID int64, days int, end time.Time) ([]models.SeriesPoint, error) {
	if days <= 0 {
		return []models.SeriesPoint{}, nil
	}
	from, to := Window(days, end)
	sums, err := s.store.SumIntakeRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}
	return BuildSeries(sums, days, end), nil
}

// Window returns the first and last date of a days-long window ending at end.
func Window(days int, end time.Time) (from, to time.Time) {
	to = models.Day(end)
	return to.AddDate(0, 0, -(days - 1)), to
}

// BuildSeries lays out per-day totals keyed by models.DayKey as days points
// ending at end. Missing days are zero.
func BuildSeries(totals map[string]float64, days int, end time.Time) []models.SeriesPoint {
	from, _ := Window(days, end)
	points := make([]models.SeriesPoint, 0, days)
	for i := 0; i < days; i++ {
		d := from.AddDate(0, 0, i)
		key := models.DayKey(d)
		points = append(points, models.SeriesPoint{
			Date:  key,
			Label: d.Format(LabelLayout),
			Total: totals[key],
		})
	}
	return points
}

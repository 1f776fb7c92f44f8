package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/hydrate-app/hydrate/internal/intake"
	"github.com/hydrate-app/hydrate/internal/models"
	"github.com/hydrate-app/hydrate/internal/store"
)

// ChartDays is the length of the dashboard trend window.
const ChartDays = 7

// Snapshotter provides a consistent read view of the relational store.
type Snapshotter interface {
	Snapshot(ctx context.Context, fn func(r store.Reader) error) error
}

// View is everything the dashboard page shows.
type View struct {
	Username       string                `json:"username"`
	DailyGoal      float64               `json:"daily_goal"`
	Theme          string                `json:"theme"`
	WaterEntries   []models.WaterIntake  `json:"water_entries"`
	TodayAmount    float64               `json:"today_amount"`
	ChartLabels    []string              `json:"chart_labels"`
	ChartData      []float64             `json:"chart_data"`
	WeeklyLabels   []string              `json:"weekly_labels"`
	WeeklyTotals   []float64             `json:"weekly_totals"`
	Reminders      []models.ReminderView `json:"reminders"`
	ProgressLabels []string              `json:"progress_labels"`
	ProgressData   []float64             `json:"progress_data"`
	Flashes        []models.Flash        `json:"flashes"`
}

type Service struct {
	store Snapshotter
	now   func() time.Time
}

func NewService(store Snapshotter) *Service {
	return &Service{store: store, now: time.Now}
}

// Build assembles the dashboard of userID from a single snapshot.
func (s *Service) Build(ctx context.Context, userID int64) (*View, error) {
	today := models.Day(s.now())
	v := &View{
		WaterEntries:   []models.WaterIntake{},
		Reminders:      []models.ReminderView{},
		ProgressLabels: []string{},
		ProgressData:   []float64{},
		Flashes:        []models.Flash{},
	}

	err := s.store.Snapshot(ctx, func(r store.Reader) error {
		user, err := r.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}
		v.Username = user.Username
		v.DailyGoal = user.DailyGoal
		if v.DailyGoal <= 0 {
			v.DailyGoal = models.DefaultDailyGoal
		}

		setting, err := r.GetSetting(ctx, userID)
		if err != nil {
			return err
		}
		v.Theme = setting.Theme

		entries, err := r.IntakeOn(ctx, userID, today)
		if err != nil {
			return err
		}
		for _, e := range entries {
			v.TodayAmount += e.Amount
		}
		v.WaterEntries = append(v.WaterEntries, entries...)

		from, to := intake.Window(ChartDays, today)
		sums, err := r.SumIntakeRange(ctx, userID, from, to)
		if err != nil {
			return err
		}
		daily := intake.BuildSeries(sums, ChartDays, today)
		// The weekly chart shows the same per-day window as the daily one.
		weekly := intake.BuildSeries(sums, ChartDays, today)
		v.ChartLabels, v.ChartData = split(daily)
		v.WeeklyLabels, v.WeeklyTotals = split(weekly)

		reminders, err := r.ListReminders(ctx, userID)
		if err != nil {
			return err
		}
		for _, rem := range reminders {
			v.Reminders = append(v.Reminders, rem.View())
		}

		progress, err := r.ListProgress(ctx, userID)
		if err != nil {
			return err
		}
		for _, p := range progress {
			v.ProgressLabels = append(v.ProgressLabels, p.Week)
			v.ProgressData = append(v.ProgressData, p.TotalAmount)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("build dashboard: %w", err)
	}
	return v, nil
}

func split(points []models.SeriesPoint) ([]string, []float64) {
	labels := make([]string, len(points))
	totals := make([]float64, len(points))
	for i, p := range points {
		labels[i] = p.Label
		totals[i] = p.Total
	}
	return labels, totals
}

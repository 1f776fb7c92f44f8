package dashboard

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
	"github.com/hydrate-app/hydrate/internal/store"
)

func TestBuild_ComposesUserData(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()
	now := time.Date(2024, 6, 15, 20, 0, 0, 0, time.UTC)

	u, err := mem.CreateUser(ctx, "dana", "hash", models.DefaultDailyGoal)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	other, _ := mem.CreateUser(ctx, "eve", "hash", models.DefaultDailyGoal)

	_ = mem.AddIntake(ctx, u.ID, now, 1.25)
	_ = mem.AddIntake(ctx, u.ID, now, 0.5)
	_ = mem.AddIntake(ctx, u.ID, now.AddDate(0, 0, -3), 2)
	_ = mem.AddIntake(ctx, other.ID, now, 5)
	_ = mem.CreateReminder(ctx, &models.Reminder{UserID: u.ID, Name: "Lunch", Message: "Glass", Time: "12:30", Active: true})
	_ = mem.CreateReminder(ctx, &models.Reminder{UserID: other.ID, Name: "Other", Message: "x", Time: "09:00", Active: true})
	_ = mem.AddProgress(ctx, u.ID, "Week 23", 12.5)
	_ = mem.UpsertTheme(ctx, u.ID, models.ThemeDark)

	svc := NewService(mem)
	svc.now = func() time.Time { return now }

	v, err := svc.Build(ctx, u.ID)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if v.Username != "dana" || v.DailyGoal != models.DefaultDailyGoal || v.Theme != models.ThemeDark {
		t.Fatalf("unexpected header: %+v", v)
	}
	if v.TodayAmount != 1.75 || len(v.WaterEntries) != 1 {
		t.Fatalf("expected today 1.75 in one entry, got %v in %d", v.TodayAmount, len(v.WaterEntries))
	}
	if len(v.ChartLabels) != ChartDays || v.ChartLabels[ChartDays-1] != "15-Jun" {
		t.Fatalf("unexpected chart labels: %v", v.ChartLabels)
	}
	if v.ChartData[ChartDays-1] != 1.75 || v.ChartData[ChartDays-4] != 2 {
		t.Fatalf("unexpected chart data: %v", v.ChartData)
	}
	for i := range v.ChartData {
		if v.WeeklyLabels[i] != v.ChartLabels[i] || v.WeeklyTotals[i] != v.ChartData[i] {
			t.Fatalf("weekly series must mirror the daily one: %v vs %v", v.WeeklyTotals, v.ChartData)
		}
	}
	if len(v.Reminders) != 1 || v.Reminders[0].Name != "Lunch" || !v.Reminders[0].Active {
		t.Fatalf("unexpected reminders: %+v", v.Reminders)
	}
	if len(v.ProgressLabels) != 1 || v.ProgressLabels[0] != "Week 23" || v.ProgressData[0] != 12.5 {
		t.Fatalf("unexpected progress: %v %v", v.ProgressLabels, v.ProgressData)
	}
}

func TestBuild_UnknownUser(t *testing.T) {
	svc := NewService(store.NewMemoryStore())
	if _, err := svc.Build(context.Background(), 404); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

package settings

import (
	"context"
	"errors"
	"testing"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
	"github.com/hydrate-app/hydrate/internal/store"
)

func TestParseGoal(t *testing.T) {
	if v, err := ParseGoal("3.2"); err != nil || v != 3.2 {
		t.Fatalf("ParseGoal: got %v, %v", v, err)
	}
	for _, raw := range []string{"", "lots", "0", "-1", "NaN", "+Inf"} {
		if _, err := ParseGoal(raw); !errors.Is(err, apperr.ErrInvalidGoal) {
			t.Fatalf("ParseGoal(%q): expected ErrInvalidGoal, got %v", raw, err)
		}
	}
}

func TestUpdateDailyGoal_OverwritesUserGoal(t *testing.T) {
	mem := store.NewMemoryStore()
	ctx := context.Background()
	u, err := mem.CreateUser(ctx, "carol", "hash", models.DefaultDailyGoal)
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	svc := NewService(mem)
	if err := svc.UpdateDailyGoal(ctx, u.ID, 3.5); err != nil {
		t.Fatalf("UpdateDailyGoal: %v", err)
	}
	got, _ := mem.GetUserByID(ctx, u.ID)
	if got.DailyGoal != 3.5 {
		t.Fatalf("expected goal 3.5, got %v", got.DailyGoal)
	}

	if err := svc.UpdateDailyGoal(ctx, u.ID, 0); !errors.Is(err, apperr.ErrInvalidGoal) {
		t.Fatalf("expected ErrInvalidGoal, got %v", err)
	}
}

func TestUpdateTheme_OnlyKnownThemes(t *testing.T) {
	mem := store.NewMemoryStore()
	svc := NewService(mem)
	ctx := context.Background()

	if err := svc.UpdateTheme(ctx, 1, "neon"); !errors.Is(err, apperr.ErrInvalidTheme) {
		t.Fatalf("expected ErrInvalidTheme, got %v", err)
	}
	if err := svc.UpdateTheme(ctx, 1, models.ThemeDark); err != nil {
		t.Fatalf("UpdateTheme: %v", err)
	}
	st, _ := mem.GetSetting(ctx, 1)
	if st.Theme != models.ThemeDark {
		t.Fatalf("expected dark theme, got %q", st.Theme)
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// newTestPostgres migrates a fresh schema on the database named by
// HYDRATE_TEST_POSTGRES_DSN and drops it when the test ends.
func newTestPostgres(t *testing.T) *PostgresStore {
	t.Helper()
	dsn := os.Getenv("HYDRATE_TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("HYDRATE_TEST_POSTGRES_DSN not set")
	}
	ctx := context.Background()
	schemaName := fmt.Sprintf("hydrate_test_%d", time.Now().UnixNano())

	admin, err := pgx.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	if _, err := admin.Exec(ctx, "CREATE SCHEMA "+schemaName); err != nil {
		admin.Close(ctx)
		t.Fatalf("create schema: %v", err)
	}
	t.Cleanup(func() {
		if _, err := admin.Exec(ctx, "DROP SCHEMA "+schemaName+" CASCADE"); err != nil {
			t.Errorf("drop schema: %v", err)
		}
		admin.Close(ctx)
	})

	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		t.Fatalf("parse dsn: %v", err)
	}
	cfg.ConnConfig.RuntimeParams["search_path"] = schemaName
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		t.Fatalf("pool: %v", err)
	}
	t.Cleanup(pool.Close)

	s := NewPostgresStore(pool)
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	// Migrate must be safe to run on every start.
	if err := s.Migrate(ctx); err != nil {
		t.Fatalf("Migrate (second run): %v", err)
	}
	return s
}

func mustCreateUser(t *testing.T, s *PostgresStore, username string) *models.User {
	t.Helper()
	u, err := s.CreateUser(context.Background(), username, "hash", models.DefaultDailyGoal)
	if err != nil {
		t.Fatalf("CreateUser(%s): %v", username, err)
	}
	return u
}

func TestPostgresStore_CreateUser_RejectsDuplicateUsername(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()

	mustCreateUser(t, s, "alice")
	_, err := s.CreateUser(ctx, "alice", "other", models.DefaultDailyGoal)
	if !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
	mustCreateUser(t, s, "Alice")
	mustCreateUser(t, s, strings.Repeat("u", 300))
}

func TestPostgresStore_AddIntake_ConcurrentAdditionsAreNotLost(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "bob")
	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := s.AddIntake(ctx, u.ID, day, 0.5); err != nil {
				t.Errorf("AddIntake: %v", err)
			}
		}()
	}
	wg.Wait()

	rows, err := s.IntakeOn(ctx, u.ID, day)
	if err != nil {
		t.Fatalf("IntakeOn: %v", err)
	}
	if len(rows) != 1 || rows[0].Amount != 25.0 {
		t.Fatalf("expected a single row of 25.0, got %+v", rows)
	}
}

func TestPostgresStore_SumIntakeRange_IsInclusiveAndUserScoped(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "carol")
	other := mustCreateUser(t, s, "dave")
	d := func(day int) time.Time { return time.Date(2024, 3, day, 0, 0, 0, 0, time.UTC) }

	for _, add := range []struct {
		user   int64
		day    int
		amount float64
	}{{u.ID, 1, 9}, {u.ID, 2, 1}, {u.ID, 4, 2}, {u.ID, 5, 9}, {other.ID, 3, 5}} {
		if err := s.AddIntake(ctx, add.user, d(add.day), add.amount); err != nil {
			t.Fatalf("AddIntake: %v", err)
		}
	}

	sums, err := s.SumIntakeRange(ctx, u.ID, d(2), d(4))
	if err != nil {
		t.Fatalf("SumIntakeRange: %v", err)
	}
	if len(sums) != 2 || sums["2024-03-02"] != 1 || sums["2024-03-04"] != 2 {
		t.Fatalf("unexpected sums: %v", sums)
	}
}

func TestPostgresStore_UpsertTheme_KeepsSingleSetting(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "erin")

	st, err := s.GetSetting(ctx, u.ID)
	if err != nil {
		t.Fatalf("GetSetting: %v", err)
	}
	if st.Theme != models.ThemeLight {
		t.Fatalf("expected default theme, got %q", st.Theme)
	}

	if err := s.UpsertTheme(ctx, u.ID, models.ThemeDark); err != nil {
		t.Fatalf("UpsertTheme: %v", err)
	}
	first, _ := s.GetSetting(ctx, u.ID)
	if err := s.UpsertTheme(ctx, u.ID, models.ThemeLight); err != nil {
		t.Fatalf("UpsertTheme: %v", err)
	}
	second, _ := s.GetSetting(ctx, u.ID)
	if first.ID == 0 || first.ID != second.ID || second.Theme != models.ThemeLight {
		t.Fatalf("expected the same row updated, got %+v then %+v", first, second)
	}
}

func TestPostgresStore_Reminders_AcceptLongTextAndToggle(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "frank")

	r := &models.Reminder{
		UserID:  u.ID,
		Name:    strings.Repeat("n", 120),
		Message: strings.Repeat("m", 500),
		Time:    "08:00",
		Active:  true,
	}
	if err := s.CreateReminder(ctx, r); err != nil {
		t.Fatalf("CreateReminder: %v", err)
	}
	got, err := s.GetReminder(ctx, r.ID)
	if err != nil {
		t.Fatalf("GetReminder: %v", err)
	}
	if got.Name != r.Name || got.Message != r.Message {
		t.Fatalf("long text was not stored verbatim")
	}

	active, err := s.ToggleReminder(ctx, r.ID)
	if err != nil {
		t.Fatalf("ToggleReminder: %v", err)
	}
	if active {
		t.Fatalf("expected reminder to be inactive after toggle")
	}
	if err := s.DeleteReminder(ctx, r.ID); err != nil {
		t.Fatalf("DeleteReminder: %v", err)
	}
	if err := s.DeleteReminder(ctx, r.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
	if _, err := s.ToggleReminder(ctx, r.ID); !errors.Is(err, apperr.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on toggling a deleted reminder, got %v", err)
	}
}

func TestPostgresStore_Snapshot_SeesCommittedState(t *testing.T) {
	s := newTestPostgres(t)
	ctx := context.Background()
	u := mustCreateUser(t, s, "grace")
	today := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if err := s.AddIntake(ctx, u.ID, today, 1.5); err != nil {
		t.Fatalf("AddIntake: %v", err)
	}

	err := s.Snapshot(ctx, func(r Reader) error {
		got, err := r.GetUserByID(ctx, u.ID)
		if err != nil {
			return err
		}
		if got.Username != "grace" || got.Password != "" {
			t.Fatalf("unexpected user from snapshot: %+v", got)
		}
		rows, err := r.IntakeOn(ctx, u.ID, today)
		if err != nil {
			return err
		}
		if len(rows) != 1 || rows[0].Amount != 1.5 {
			t.Fatalf("unexpected intake from snapshot: %+v", rows)
		}
		reminders, err := r.ListReminders(ctx, u.ID)
		if err != nil {
			return err
		}
		if len(reminders) != 0 {
			t.Fatalf("expected no reminders, got %+v", reminders)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
}

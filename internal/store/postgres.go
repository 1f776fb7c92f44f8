package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// Reader is the read side shared by the stores and their snapshots.
type Reader interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetSetting(ctx context.Context, userID int64) (*models.Setting, error)
	IntakeOn(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntake, error)
	SumIntakeRange(ctx context.Context, userID int64, from, to time.Time) (map[string]float64, error)
	ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error)
	ListProgress(ctx context.Context, userID int64) ([]models.Progress, error)
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore persists all relational entities in PostgreSQL.
type PostgresStore struct {
	pgQueries
	pool *pgxpool.Pool
}

type pgQueries struct {
	q querier
}

func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pgQueries: pgQueries{q: pool}, pool: pool}
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id         BIGSERIAL PRIMARY KEY,
		username   TEXT UNIQUE NOT NULL,
		password   TEXT NOT NULL,
		daily_goal DOUBLE PRECISION NOT NULL DEFAULT 2.5,
		created_at TIMESTAMPTZ DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS water_intake (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		date    DATE NOT NULL,
		amount  DOUBLE PRECISION NOT NULL CHECK (amount >= 0),
		UNIQUE (user_id, date)
	)`,
	`CREATE TABLE IF NOT EXISTS reminders (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT NOT NULL REFERENCES users(id),
		name    TEXT       NOT NULL,
		message TEXT       NOT NULL,
		time    VARCHAR(5) NOT NULL,
		active  BOOLEAN    NOT NULL DEFAULT TRUE
	)`,
	`CREATE INDEX IF NOT EXISTS idx_reminders_user ON reminders(user_id)`,
	`CREATE TABLE IF NOT EXISTS progress (
		id           BIGSERIAL PRIMARY KEY,
		user_id      BIGINT NOT NULL REFERENCES users(id),
		week         TEXT NOT NULL,
		total_amount DOUBLE PRECISION NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_progress_user ON progress(user_id)`,
	`CREATE TABLE IF NOT EXISTS settings (
		id      BIGSERIAL PRIMARY KEY,
		user_id BIGINT UNIQUE NOT NULL REFERENCES users(id),
		theme   VARCHAR(20) NOT NULL DEFAULT 'light'
	)`,
	`ALTER TABLE users ALTER COLUMN username TYPE TEXT`,
	`ALTER TABLE reminders ALTER COLUMN name TYPE TEXT, ALTER COLUMN message TYPE TEXT`,
	`ALTER TABLE progress ALTER COLUMN week TYPE TEXT`,
}

// Migrate creates the tables if they don't exist and widens free-text
// columns left as VARCHAR by older schemas.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := s.pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
	}
	return nil
}

// Snapshot runs fn against a repeatable-read, read-only transaction so that
// every read inside fn sees the same committed state.
func (s *PostgresStore) Snapshot(ctx context.Context, fn func(r Reader) error) error {
	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("begin snapshot: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&pgQueries{q: tx}); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// ── Users ────────────────────────────────────────────────────

func (s *PostgresStore) CreateUser(ctx context.Context, username, hashedPassword string, dailyGoal float64) (*models.User, error) {
	u := models.User{Username: username, Password: hashedPassword, DailyGoal: dailyGoal}
	err := s.q.QueryRow(ctx,
		`INSERT INTO users (username, password, daily_goal)
		 VALUES ($1, $2, $3)
		 RETURNING id, created_at`,
		username, hashedPassword, dailyGoal,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return nil, apperr.ErrDuplicateUsername
		}
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := s.q.QueryRow(ctx,
		`SELECT id, username, password, daily_goal, created_at FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.Password, &u.DailyGoal, &u.CreatedAt)
	if err != nil {
		return nil, notFound("get user", err)
	}
	return &u, nil
}

func (p *pgQueries) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := p.q.QueryRow(ctx,
		`SELECT id, username, daily_goal, created_at FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.DailyGoal, &u.CreatedAt)
	if err != nil {
		return nil, notFound("get user", err)
	}
	return &u, nil
}

func (s *PostgresStore) UpdateDailyGoal(ctx context.Context, userID int64, goal float64) error {
	tag, err := s.q.Exec(ctx, `UPDATE users SET daily_goal = $2 WHERE id = $1`, userID, goal)
	if err != nil {
		return fmt.Errorf("update daily goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

// ── Settings ─────────────────────────────────────────────────

// GetSetting returns the user's setting row, or the defaults if none exists.
func (p *pgQueries) GetSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	st := models.Setting{UserID: userID, Theme: models.ThemeLight}
	err := p.q.QueryRow(ctx,
		`SELECT id, theme FROM settings WHERE user_id = $1`, userID,
	).Scan(&st.ID, &st.Theme)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("get setting: %w", err)
	}
	return &st, nil
}

func (s *PostgresStore) UpsertTheme(ctx context.Context, userID int64, theme string) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO settings (user_id, theme) VALUES ($1, $2)
		 ON CONFLICT (user_id) DO UPDATE SET theme = EXCLUDED.theme`,
		userID, theme,
	)
	if err != nil {
		return fmt.Errorf("upsert theme: %w", err)
	}
	return nil
}

// ── Water intake ─────────────────────────────────────────────

// AddIntake accumulates amount into the (userID, date) row in one statement,
// so concurrent additions never lose an update.
func (s *PostgresStore) AddIntake(ctx context.Context, userID int64, date time.Time, amount float64) error {
	_, err := s.q.Exec(ctx,
		`INSERT INTO water_intake (user_id, date, amount) VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, date) DO UPDATE SET amount = water_intake.amount + EXCLUDED.amount`,
		userID, models.Day(date), amount,
	)
	if err != nil {
		return fmt.Errorf("add intake: %w", err)
	}
	return nil
}

func (p *pgQueries) IntakeOn(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntake, error) {
	rows, err := p.q.Query(ctx,
		`SELECT id, user_id, date, amount FROM water_intake WHERE user_id = $1 AND date = $2`,
		userID, models.Day(date),
	)
	if err != nil {
		return nil, fmt.Errorf("intake on: %w", err)
	}
	return collectIntake(rows)
}

func (p *pgQueries) SumIntakeRange(ctx context.Context, userID int64, from, to time.Time) (map[string]float64, error) {
	rows, err := p.q.Query(ctx,
		`SELECT date, SUM(amount) FROM water_intake
		 WHERE user_id = $1 AND date BETWEEN $2 AND $3
		 GROUP BY date`,
		userID, models.Day(from), models.Day(to),
	)
	if err != nil {
		return nil, fmt.Errorf("sum intake: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]float64)
	for rows.Next() {
		var (
			d     time.Time
			total float64
		)
		if err := rows.Scan(&d, &total); err != nil {
			return nil, fmt.Errorf("sum intake: %w", err)
		}
		sums[models.DayKey(d)] = total
	}
	return sums, rows.Err()
}

func (s *PostgresStore) ListIntake(ctx context.Context, userID int64) ([]models.WaterIntake, error) {
	rows, err := s.q.Query(ctx,
		`SELECT id, user_id, date, amount FROM water_intake WHERE user_id = $1 ORDER BY date`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list intake: %w", err)
	}
	return collectIntake(rows)
}

func collectIntake(rows pgx.Rows) ([]models.WaterIntake, error) {
	defer rows.Close()
	var out []models.WaterIntake
	for rows.Next() {
		var w models.WaterIntake
		if err := rows.Scan(&w.ID, &w.UserID, &w.Date, &w.Amount); err != nil {
			return nil, fmt.Errorf("scan intake: %w", err)
		}
		out = append(out, w)
	}
	return out, rows.Err()
}

// ── Reminders ────────────────────────────────────────────────

func (s *PostgresStore) CreateReminder(ctx context.Context, r *models.Reminder) error {
	err := s.q.QueryRow(ctx,
		`INSERT INTO reminders (user_id, name, message, time, active)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		r.UserID, r.Name, r.Message, r.Time, r.Active,
	).Scan(&r.ID)
	if err != nil {
		return fmt.Errorf("create reminder: %w", err)
	}
	return nil
}

func (s *PostgresStore) GetReminder(ctx context.Context, id int64) (*models.Reminder, error) {
	var r models.Reminder
	err := s.q.QueryRow(ctx,
		`SELECT id, user_id, name, message, time, active FROM reminders WHERE id = $1`, id,
	).Scan(&r.ID, &r.UserID, &r.Name, &r.Message, &r.Time, &r.Active)
	if err != nil {
		return nil, notFound("get reminder", err)
	}
	return &r, nil
}

// ToggleReminder flips the active flag and returns its new value.
func (s *PostgresStore) ToggleReminder(ctx context.Context, id int64) (bool, error) {
	var active bool
	err := s.q.QueryRow(ctx,
		`UPDATE reminders SET active = NOT active WHERE id = $1 RETURNING active`, id,
	).Scan(&active)
	if err != nil {
		return false, notFound("toggle reminder", err)
	}
	return active, nil
}

func (s *PostgresStore) DeleteReminder(ctx context.Context, id int64) error {
	tag, err := s.q.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete reminder: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (p *pgQueries) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	rows, err := p.q.Query(ctx,
		`SELECT id, user_id, name, message, time, active FROM reminders WHERE user_id = $1 ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list reminders: %w", err)
	}
	defer rows.Close()

	var out []models.Reminder
	for rows.Next() {
		var r models.Reminder
		if err := rows.Scan(&r.ID, &r.UserID, &r.Name, &r.Message, &r.Time, &r.Active); err != nil {
			return nil, fmt.Errorf("scan reminder: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// ── Progress ─────────────────────────────────────────────────

func (p *pgQueries) ListProgress(ctx context.Context, userID int64) ([]models.Progress, error) {
	rows, err := p.q.Query(ctx,
		`SELECT id, user_id, week, total_amount FROM progress WHERE user_id = $1 ORDER BY id`, userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	defer rows.Close()

	var out []models.Progress
	for rows.Next() {
		var pr models.Progress
		if err := rows.Scan(&pr.ID, &pr.UserID, &pr.Week, &pr.TotalAmount); err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, pr)
	}
	return out, rows.Err()
}

// notFound maps pgx.ErrNoRows to apperr.ErrNotFound and wraps anything else.
func notFound(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

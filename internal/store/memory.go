package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// MemoryStore keeps every relational entity in process memory. It is used
// when no PostgreSQL DSN is configured and by tests.
type MemoryStore struct {
	mu     sync.RWMutex
	nextID int64
	mem    memTables
}

type memTables struct {
	users     map[int64]*models.User
	usernames map[string]int64
	intake    map[int64]map[string]*models.WaterIntake // userID -> day key -> row
	reminders map[int64]*models.Reminder
	progress  map[int64][]models.Progress
	settings  map[int64]*models.Setting
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mem: memTables{
			users:     make(map[int64]*models.User),
			usernames: make(map[string]int64),
			intake:    make(map[int64]map[string]*models.WaterIntake),
			reminders: make(map[int64]*models.Reminder),
			progress:  make(map[int64][]models.Progress),
			settings:  make(map[int64]*models.Setting),
		},
	}
}

func (s *MemoryStore) id() int64 {
	s.nextID++
	return s.nextID
}

// Snapshot holds the read lock for the duration of fn.
func (s *MemoryStore) Snapshot(ctx context.Context, fn func(r Reader) error) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return fn(&s.mem)
}

// ── Users ────────────────────────────────────────────────────

func (s *MemoryStore) CreateUser(ctx context.Context, username, hashedPassword string, dailyGoal float64) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.mem.usernames[username]; exists {
		return nil, apperr.ErrDuplicateUsername
	}
	u := &models.User{
		ID:        s.id(),
		Username:  username,
		Password:  hashedPassword,
		DailyGoal: dailyGoal,
		CreatedAt: time.Now(),
	}
	s.mem.users[u.ID] = u
	s.mem.usernames[username] = u.ID

	cp := *u
	return &cp, nil
}

func (s *MemoryStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.mem.usernames[username]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *s.mem.users[id]
	return &cp, nil
}

func (s *MemoryStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.GetUserByID(ctx, id)
}

func (s *MemoryStore) UpdateDailyGoal(ctx context.Context, userID int64, goal float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.mem.users[userID]
	if !ok {
		return apperr.ErrNotFound
	}
	u.DailyGoal = goal
	return nil
}

// ── Settings ─────────────────────────────────────────────────

func (s *MemoryStore) GetSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.GetSetting(ctx, userID)
}

func (s *MemoryStore) UpsertTheme(ctx context.Context, userID int64, theme string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.mem.settings[userID]; ok {
		st.Theme = theme
		return nil
	}
	s.mem.settings[userID] = &models.Setting{ID: s.id(), UserID: userID, Theme: theme}
	return nil
}

// ── Water intake ─────────────────────────────────────────────

func (s *MemoryStore) AddIntake(ctx context.Context, userID int64, date time.Time, amount float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	day := models.Day(date)
	key := models.DayKey(day)
	byDay, ok := s.mem.intake[userID]
	if !ok {
		byDay = make(map[string]*models.WaterIntake)
		s.mem.intake[userID] = byDay
	}
	if row, ok := byDay[key]; ok {
		row.Amount += amount
		return nil
	}
	byDay[key] = &models.WaterIntake{ID: s.id(), UserID: userID, Date: day, Amount: amount}
	return nil
}

func (s *MemoryStore) IntakeOn(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.IntakeOn(ctx, userID, date)
}

func (s *MemoryStore) SumIntakeRange(ctx context.Context, userID int64, from, to time.Time) (map[string]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.SumIntakeRange(ctx, userID, from, to)
}

func (s *MemoryStore) ListIntake(ctx context.Context, userID int64) ([]models.WaterIntake, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.WaterIntake
	for _, row := range s.mem.intake[userID] {
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// ── Reminders ────────────────────────────────────────────────

func (s *MemoryStore) CreateReminder(ctx context.Context, r *models.Reminder) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = s.id()
	cp := *r
	s.mem.reminders[r.ID] = &cp
	return nil
}

func (s *MemoryStore) GetReminder(ctx context.Context, id int64) (*models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.mem.reminders[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *MemoryStore) ToggleReminder(ctx context.Context, id int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.mem.reminders[id]
	if !ok {
		return false, apperr.ErrNotFound
	}
	r.Active = !r.Active
	return r.Active, nil
}

func (s *MemoryStore) DeleteReminder(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.mem.reminders[id]; !ok {
		return apperr.ErrNotFound
	}
	delete(s.mem.reminders, id)
	return nil
}

func (s *MemoryStore) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.ListReminders(ctx, userID)
}

// ── Progress ─────────────────────────────────────────────────

// AddProgress appends a weekly total. Progress is written out-of-band, never
// by a request handler.
func (s *MemoryStore) AddProgress(ctx context.Context, userID int64, week string, total float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem.progress[userID] = append(s.mem.progress[userID], models.Progress{
		ID: s.id(), UserID: userID, Week: week, TotalAmount: total,
	})
	return nil
}

func (s *MemoryStore) ListProgress(ctx context.Context, userID int64) ([]models.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mem.ListProgress(ctx, userID)
}

// ── Lock-free readers, called with s.mu held ─────────────────

func (m *memTables) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperr.ErrNotFound
	}
	cp := *u
	cp.Password = ""
	return &cp, nil
}

func (m *memTables) GetSetting(ctx context.Context, userID int64) (*models.Setting, error) {
	if st, ok := m.settings[userID]; ok {
		cp := *st
		return &cp, nil
	}
	return &models.Setting{UserID: userID, Theme: models.ThemeLight}, nil
}

func (m *memTables) IntakeOn(ctx context.Context, userID int64, date time.Time) ([]models.WaterIntake, error) {
	row, ok := m.intake[userID][models.DayKey(models.Day(date))]
	if !ok {
		return nil, nil
	}
	return []models.WaterIntake{*row}, nil
}

func (m *memTables) SumIntakeRange(ctx context.Context, userID int64, from, to time.Time) (map[string]float64, error) {
	lo, hi := models.Day(from), models.Day(to)
	sums := make(map[string]float64)
	for key, row := range m.intake[userID] {
		if row.Date.Before(lo) || row.Date.After(hi) {
			continue
		}
		sums[key] += row.Amount
	}
	return sums, nil
}

func (m *memTables) ListReminders(ctx context.Context, userID int64) ([]models.Reminder, error) {
	var out []models.Reminder
	for _, r := range m.reminders {
		if r.UserID == userID {
			out = append(out, *r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memTables) ListProgress(ctx context.Context, userID int64) ([]models.Progress, error) {
	return append([]models.Progress(nil), m.progress[userID]...), nil
}

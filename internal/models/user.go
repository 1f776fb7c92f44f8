package models

import "time"

// DefaultDailyGoal is the daily target in liters assigned at registration.
const DefaultDailyGoal = 2.5

// User represents a row in the users table.
type User struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	Password  string    `json:"-"` // bcrypt hash, never serialize
	DailyGoal float64   `json:"daily_goal"`
	CreatedAt time.Time `json:"created_at"`
}

// Setting holds per-user UI preferences. At most one per user.
type Setting struct {
	ID     int64  `json:"id"`
	UserID int64  `json:"user_id"`
	Theme  string `json:"theme"`
}

const (
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// Flash is a one-shot notice shown on the next page view.
type Flash struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

package models

import "time"

// WaterIntake is the accumulated amount (liters) a user drank on one date.
// There is at most one row per (UserID, Date).
type WaterIntake struct {
	ID     int64     `json:"id"`
	UserID int64     `json:"user_id"`
	Date   time.Time `json:"date"`
	Amount float64   `json:"amount"`
}

// Progress is a weekly total populated outside the request handlers.
type Progress struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"user_id"`
	Week        string  `json:"week"`
	TotalAmount float64 `json:"total_amount"`
}

// SeriesPoint is one day of a trend chart.
type SeriesPoint struct {
	Date  string  `json:"date"`
	Label string  `json:"label"`
	Total float64 `json:"total"`
}

// Day returns midnight UTC of t's calendar date in t's own location, which
// is how dates are keyed in storage.
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DayKey formats a date as YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format("2006-01-02")
}

package models

// Reminder is a named daily notice at a wall-clock time ("HH:MM").
type Reminder struct {
	ID      int64  `json:"id"`
	UserID  int64  `json:"user_id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Active  bool   `json:"active"`
}

// ReminderView is the JSON-safe projection sent to the dashboard.
type ReminderView struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	Message string `json:"message"`
	Time    string `json:"time"`
	Active  bool   `json:"active"`
}

func (r Reminder) View() ReminderView {
	return ReminderView{ID: r.ID, Name: r.Name, Message: r.Message, Time: r.Time, Active: r.Active}
}

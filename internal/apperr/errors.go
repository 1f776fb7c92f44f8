// Package apperr defines the error kinds surfaced to users as notices.
package apperr

import "errors"

var (
	ErrDuplicateUsername  = errors.New("username already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUnauthenticated    = errors.New("not authenticated")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
	ErrInvalidAmount      = errors.New("invalid amount")
	ErrInvalidGoal        = errors.New("invalid daily goal")
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidTheme       = errors.New("invalid theme")
)

// Flash categories.
const (
	CategoryInfo    = "info"
	CategorySuccess = "success"
	CategoryDanger  = "danger"
)

var messages = []struct {
	kind error
	msg  string
}{
	{ErrDuplicateUsername, "Username already exists!"},
	{ErrInvalidCredentials, "Invalid username or password"},
	{ErrUnauthenticated, "Please log in first."},
	{ErrNotFound, "Not found."},
	{ErrForbidden, "You are not allowed to do that."},
	{ErrInvalidAmount, "Please enter a positive amount in liters."},
	{ErrInvalidGoal, "Daily goal must be a positive number."},
	{ErrInvalidInput, "Username and password are required."},
	{ErrInvalidTheme, "Unknown theme."},
}

// Message returns the user-visible notice for err. ok is false when err is
// not one of the known kinds, in which case a generic notice is returned.
func Message(err error) (msg string, ok bool) {
	for _, m := range messages {
		if errors.Is(err, m.kind) {
			return m.msg, true
		}
	}
	return "Something went wrong. Please try again.", false
}

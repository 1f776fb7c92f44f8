package auth

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
	"github.com/hydrate-app/hydrate/internal/store"
)

func newTestService(t *testing.T) (*Service, *store.MemoryStore) {
	t.Helper()
	users := store.NewMemoryStore()
	svc := NewService(users, models.DefaultDailyGoal)
	svc.cost = bcrypt.MinCost
	return svc, users
}

func TestRegister_SecondRegistrationIsDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "pw1"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, err := svc.Register(ctx, "alice", "pw2")
	if !errors.Is(err, apperr.ErrDuplicateUsername) {
		t.Fatalf("expected ErrDuplicateUsername, got %v", err)
	}
}

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "secret-pw"); err != nil {
		t.Fatalf("Register: %v", err)
	}
	u, err := users.GetUserByUsername(ctx, "alice")
	if err != nil {
		t.Fatalf("GetUserByUsername: %v", err)
	}
	if strings.Contains(u.Password, "secret-pw") {
		t.Fatalf("password stored in plaintext")
	}
	if u.DailyGoal != models.DefaultDailyGoal {
		t.Fatalf("expected default daily goal, got %v", u.DailyGoal)
	}
}

func TestRegister_RequiresUsernameAndPassword(t *testing.T) {
	svc, _ := newTestService(t)
	for _, tc := range []struct{ user, pw string }{{"", "pw"}, {"bob", ""}} {
		if _, err := svc.Register(context.Background(), tc.user, tc.pw); !errors.Is(err, apperr.ErrInvalidInput) {
			t.Fatalf("Register(%q, %q): expected ErrInvalidInput, got %v", tc.user, tc.pw, err)
		}
	}
}

func TestLogin_SucceedsOnlyWithMatchingPassword(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	id, err := svc.Register(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	got, err := svc.Login(ctx, "alice", "pw1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got != id {
		t.Fatalf("expected user id %d, got %d", id, got)
	}

	cases := []struct{ user, pw string }{
		{"alice", "wrong"},
		{"alice", ""},
		{"Alice", "pw1"},
		{"nobody", "pw1"},
	}
	for _, tc := range cases {
		if _, err := svc.Login(ctx, tc.user, tc.pw); !errors.Is(err, apperr.ErrInvalidCredentials) {
			t.Fatalf("Login(%q, %q): expected ErrInvalidCredentials, got %v", tc.user, tc.pw, err)
		}
	}
}

func TestRegister_AcceptsPasswordsLongerThanBcryptLimit(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	long := strings.Repeat("p", 100)

	id, err := svc.Register(ctx, "longpw", long)
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	got, err := svc.Login(ctx, "longpw", long)
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if got != id {
		t.Fatalf("expected user id %d, got %d", id, got)
	}

	// Passwords sharing the first 72 bytes must still differ.
	if _, err := svc.Login(ctx, "longpw", strings.Repeat("p", 72)+"x"); !errors.Is(err, apperr.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for a different long password, got %v", err)
	}
}

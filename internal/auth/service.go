package auth

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

// UserStore defines the interface for user persistence.
type UserStore interface {
	CreateUser(ctx context.Context, username, hashedPassword string, dailyGoal float64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service registers users and verifies their credentials.
type Service struct {
	users     UserStore
	dailyGoal float64
	cost      int
}

func NewService(users UserStore, dailyGoal float64) *Service {
	if dailyGoal <= 0 {
		dailyGoal = models.DefaultDailyGoal
	}
	return &Service{users: users, dailyGoal: dailyGoal, cost: bcrypt.DefaultCost}
}

// Register creates a user with a bcrypt-hashed password and the default
// daily goal. Usernames are matched exactly, case included.
func (s *Service) Register(ctx context.Context, username, password string) (int64, error) {
	if username == "" || password == "" {
		return 0, apperr.ErrInvalidInput
	}

	_, err := s.users.GetUserByUsername(ctx, username)
	if err == nil {
		return 0, apperr.ErrDuplicateUsername
	}
	if !errors.Is(err, apperr.ErrNotFound) {
		return 0, fmt.Errorf("register: %w", err)
	}

	hashed, err := bcrypt.GenerateFromPassword(prehash(password), s.cost)
	if err != nil {
		return 0, fmt.Errorf("hash password: %w", err)
	}

	user, err := s.users.CreateUser(ctx, username, string(hashed), s.dailyGoal)
	if err != nil {
		return 0, err
	}
	return user.ID, nil
}

// Login returns the user id when password matches the stored hash.
func (s *Service) Login(ctx context.Context, username, password string) (int64, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if errors.Is(err, apperr.ErrNotFound) {
		return 0, apperr.ErrInvalidCredentials
	}
	if err != nil {
		return 0, fmt.Errorf("login: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), prehash(password)); err != nil {
		return 0, apperr.ErrInvalidCredentials
	}
	return user.ID, nil
}

// prehash digests password to a fixed 44 bytes so bcrypt's 72-byte input
// limit never rejects or truncates a password.
func prehash(password string) []byte {
	sum := sha256.Sum256([]byte(password))
	out := make([]byte, base64.StdEncoding.EncodedLen(len(sum)))
	base64.StdEncoding.Encode(out, sum[:])
	return out
}

package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/hydrate-app/hydrate/internal/apperr"
	"github.com/hydrate-app/hydrate/internal/models"
)

const (
	SessionTTL    = 24 * time.Hour
	FlashTTL      = 10 * time.Minute
	SessionCookie = "session_id"
)

// SessionStore wraps Redis for session management. A session id may exist
// without a bound user; such sessions only carry flashes.
type SessionStore struct {
	rdb          *redis.Client
	secureCookie bool
}

func NewSessionStore(rdb *redis.Client, secureCookie bool) *SessionStore {
	return &SessionStore{rdb: rdb, secureCookie: secureCookie}
}

func sessionKey(sid string) string { return "session:" + sid }
func flashKey(sid string) string   { return "flash:" + sid }

// Create stores a new session mapping sessionID -> userID.
func (s *SessionStore) Create(ctx context.Context, userID int64) (string, error) {
	sid := uuid.New().String()
	err := s.rdb.Set(ctx, sessionKey(sid), strconv.FormatInt(userID, 10), SessionTTL).Err()
	return sid, err
}

// Get returns the userID bound to a session, or 0 if none / expired.
func (s *SessionStore) Get(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.rdb.Get(ctx, sessionKey(sessionID)).Result()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt session %s: %w", sessionID, err)
	}
	return id, nil
}

// Delete removes all state held for a session.
func (s *SessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKey(sessionID), flashKey(sessionID)).Err()
}

// UserIDFromRequest resolves the session cookie to a user id.
func (s *SessionStore) UserIDFromRequest(r *http.Request) (int64, error) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return 0, apperr.ErrUnauthenticated
	}
	userID, err := s.Get(r.Context(), cookie.Value)
	if err != nil {
		return 0, err
	}
	if userID == 0 {
		return 0, apperr.ErrUnauthenticated
	}
	return userID, nil
}

// AddFlash queues a notice for the next page view of the session.
func (s *SessionStore) AddFlash(ctx context.Context, sessionID string, f models.Flash) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	pipe := s.rdb.TxPipeline()
	pipe.RPush(ctx, flashKey(sessionID), data)
	pipe.Expire(ctx, flashKey(sessionID), FlashTTL)
	_, err = pipe.Exec(ctx)
	return err
}

// PopFlashes returns and clears the queued notices of a session.
func (s *SessionStore) PopFlashes(ctx context.Context, sessionID string) ([]models.Flash, error) {
	var items *redis.StringSliceCmd
	_, err := s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		items = pipe.LRange(ctx, flashKey(sessionID), 0, -1)
		pipe.Del(ctx, flashKey(sessionID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	flashes := make([]models.Flash, 0, len(items.Val()))
	for _, raw := range items.Val() {
		var f models.Flash
		if err := json.Unmarshal([]byte(raw), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

func (s *SessionStore) setCookie(w http.ResponseWriter, sid string) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(SessionTTL / time.Second),
	})
}

func (s *SessionStore) clearCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secureCookie,
		MaxAge:   -1,
	})
}

// ensureID returns the request's session id, issuing an anonymous one if
// the client has none.
func (s *SessionStore) ensureID(w http.ResponseWriter, r *http.Request) string {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		return cookie.Value
	}
	sid := uuid.New().String()
	s.setCookie(w, sid)
	return sid
}

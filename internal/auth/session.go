package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

var ctx = context.Background()

// SessionManager persists login sessions, one-shot flash messages and
// transient password-reset flow state in Redis. Session IDs are opaque;
// the browser only ever holds the cookie value.
type SessionManager struct {
	rdb *redis.Client
}

func NewSessionManager(rdb *redis.Client) *SessionManager {
	return &SessionManager{rdb: rdb}
}

// Flash is a one-shot notification consumed on the next read.
type Flash struct {
	Message string `json:"msg"`
	Type    string `json:"type"` // info, success, warning, error
}

// NewSessionID returns a 64-char random hex token.
func NewSessionID() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// Create stores a new session for the user and returns its ID.
func (s *SessionManager) Create(userID uint64, ttl time.Duration) (string, error) {
	sid, err := NewSessionID()
	if err != nil {
		return "", err
	}
	key := fmt.Sprintf("dbk:sess:%s", sid)
	if err := s.rdb.Set(ctx, key, userID, ttl).Err(); err != nil {
		return "", err
	}
	return sid, nil
}

// UserID resolves a session ID to the logged-in user, refreshing the TTL.
func (s *SessionManager) UserID(sid string, ttl time.Duration) (uint64, error) {
	key := fmt.Sprintf("dbk:sess:%s", sid)
	id, err := s.rdb.Get(ctx, key).Uint64()
	if err != nil {
		return 0, err
	}
	_ = s.rdb.Expire(ctx, key, ttl).Err()
	return id, nil
}

// Destroy removes the session, used during logout.
func (s *SessionManager) Destroy(sid string) error {
	return s.rdb.Del(ctx, fmt.Sprintf("dbk:sess:%s", sid)).Err()
}

// PushFlash appends a flash message to the session's queue.
func (s *SessionManager) PushFlash(sid string, f Flash) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	key := fmt.Sprintf("dbk:flash:%s", sid)
	if err := s.rdb.RPush(ctx, key, data).Err(); err != nil {
		return err
	}
	return s.rdb.Expire(ctx, key, time.Hour).Err()
}

// ConsumeFlashes drains and returns all queued flash messages.
func (s *SessionManager) ConsumeFlashes(sid string) ([]Flash, error) {
	key := fmt.Sprintf("dbk:flash:%s", sid)
	pipe := s.rdb.TxPipeline()
	lrange := pipe.LRange(ctx, key, 0, -1)
	pipe.Del(ctx, key)
	if _, err := pipe.Exec(ctx); err != nil && err != redis.Nil {
		return nil, err
	}
	raw, err := lrange.Result()
	if err != nil {
		return nil, err
	}
	flashes := make([]Flash, 0, len(raw))
	for _, item := range raw {
		var f Flash
		if err := json.Unmarshal([]byte(item), &f); err != nil {
			continue
		}
		flashes = append(flashes, f)
	}
	return flashes, nil
}

// SaveResetState stores serialized password-reset flow state under a token.
func (s *SessionManager) SaveResetState(token string, state []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, fmt.Sprintf("dbk:pwreset:%s", token), state, ttl).Err()
}

// ResetState loads reset flow state. Absent or expired state returns
// (nil, nil) so callers can redirect to step one instead of failing.
func (s *SessionManager) ResetState(token string) ([]byte, error) {
	data, err := s.rdb.Get(ctx, fmt.Sprintf("dbk:pwreset:%s", token)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	return data, err
}

// ClearResetState invalidates the flow once the password has been changed.
func (s *SessionManager) ClearResetState(token string) error {
	return s.rdb.Del(ctx, fmt.Sprintf("dbk:pwreset:%s", token)).Err()
}

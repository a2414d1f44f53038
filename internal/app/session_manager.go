package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"time"

	"quiz-host-service/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// tokenBytes is the size of the random session secret (256 bits).
const tokenBytes = 32

// SessionStore abstracts where admin sessions live (in-process map, Redis, etc).
type SessionStore interface {
	Add(ctx context.Context, session domain.Session) error
	List(ctx context.Context) ([]domain.Session, error)
	Delete(ctx context.Context, hash string) error
	DeleteExpired(ctx context.Context, now time.Time) error
}

// SessionManager issues and checks admin sessions. It is the only place the
// admin password is compared.
type SessionManager struct {
	store    SessionStore
	password string
	lifetime time.Duration
	cost     int
	now      func() time.Time
	random   io.Reader
}

// SessionOption tweaks a SessionManager.
type SessionOption func(*SessionManager)

// WithClock replaces time.Now, for deterministic expiry in tests.
func WithClock(now func() time.Time) SessionOption {
	return func(m *SessionManager) { m.now = now }
}

// WithHashCost sets the bcrypt cost used for new sessions.
func WithHashCost(cost int) SessionOption {
	return func(m *SessionManager) { m.cost = cost }
}

// WithRandom replaces crypto/rand as the token source.
func WithRandom(r io.Reader) SessionOption {
	return func(m *SessionManager) { m.random = r }
}

func NewSessionManager(store SessionStore, adminPassword string, lifetime time.Duration, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		store:    store,
		password: adminPassword,
		lifetime: lifetime,
		cost:     bcrypt.DefaultCost,
		now:      time.Now,
		random:   rand.Reader,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Lifetime is how long a new session stays valid.
func (m *SessionManager) Lifetime() time.Duration {
	return m.lifetime
}

// CreateSession checks the password and returns a fresh raw token. The token
// is returned exactly once; only its hash is stored.
func (m *SessionManager) CreateSession(ctx context.Context, password string) (string, error) {
	if m.password == "" || password != m.password {
		return "", domain.ErrInvalidCredentials
	}

	raw := make([]byte, tokenBytes)
	if _, err := io.ReadFull(m.random, raw); err != nil {
		return "", fmt.Errorf("%w: generate token: %v", domain.ErrInternal, err)
	}
	token := hex.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(token), m.cost)
	if err != nil {
		return "", fmt.Errorf("%w: hash token: %v", domain.ErrInternal, err)
	}

	if err := m.sweep(ctx); err != nil {
		return "", err
	}

	now := m.now()
	session := domain.Session{
		Hash:      string(hash),
		CreatedAt: now,
		ExpiresAt: now.Add(m.lifetime),
	}
	if err := m.store.Add(ctx, session); err != nil {
		return "", fmt.Errorf("%w: store session: %v", domain.ErrInternal, err)
	}
	return token, nil
}

// VerifyToken reports whether token belongs to a live session.
func (m *SessionManager) VerifyToken(ctx context.Context, token string) (bool, error) {
	if err := m.sweep(ctx); err != nil {
		return false, err
	}
	if !wellFormed(token) {
		return false, nil
	}

	_, ok, err := m.match(ctx, token)
	return ok, err
}

// RemoveSession drops the session owning token. Unknown tokens are ignored.
func (m *SessionManager) RemoveSession(ctx context.Context, token string) error {
	if !wellFormed(token) {
		return nil
	}
	hash, ok, err := m.match(ctx, token)
	if err != nil || !ok {
		return err
	}
	if err := m.store.Delete(ctx, hash); err != nil {
		return fmt.Errorf("%w: delete session: %v", domain.ErrInternal, err)
	}
	return nil
}

// ActiveSessions counts unexpired sessions.
func (m *SessionManager) ActiveSessions(ctx context.Context) (int, error) {
	if err := m.sweep(ctx); err != nil {
		return 0, err
	}
	sessions, err := m.store.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: list sessions: %v", domain.ErrInternal, err)
	}
	return len(sessions), nil
}

// match scans every stored hash; bcrypt salts each entry so there is no key
// to look the token up by.
func (m *SessionManager) match(ctx context.Context, token string) (string, bool, error) {
	sessions, err := m.store.List(ctx)
	if err != nil {
		return "", false, fmt.Errorf("%w: list sessions: %v", domain.ErrInternal, err)
	}
	now := m.now()
	for _, s := range sessions {
		if s.Expired(now) {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(s.Hash), []byte(token)) == nil {
			return s.Hash, true, nil
		}
	}
	return "", false, nil
}

func (m *SessionManager) sweep(ctx context.Context) error {
	if err := m.store.DeleteExpired(ctx, m.now()); err != nil {
		return fmt.Errorf("%w: sweep sessions: %v", domain.ErrInternal, err)
	}
	return nil
}

func wellFormed(token string) bool {
	if len(token) != tokenBytes*2 {
		return false
	}
	_, err := hex.DecodeString(token)
	return err == nil
}

package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"quiz-host-service/internal/domain"
	"github.com/redis/go-redis/v9"
)

const sessionsKey = "quiz:auth:sessions"

// SessionStore keeps admin sessions in a single Redis hash so that every
// instance behind a load balancer sees the same logins.
//
//	HSET quiz:auth:sessions {bcryptHash} {"createdAt":...,"expiresAt":...}
type SessionStore struct {
	client *redis.Client
	key    string
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client, key: sessionsKey}
}

func (s *SessionStore) Add(ctx context.Context, session domain.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.HSet(ctx, s.key, session.Hash, data).Err()
}

func (s *SessionStore) List(ctx context.Context) ([]domain.Session, error) {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, err
	}
	sessions := make([]domain.Session, 0, len(raw))
	for hash, value := range raw {
		var session domain.Session
		if err := json.Unmarshal([]byte(value), &session); err != nil {
			// unreadable entries are removed by the next sweep
			continue
		}
		session.Hash = hash
		sessions = append(sessions, session)
	}
	return sessions, nil
}

func (s *SessionStore) Delete(ctx context.Context, hash string) error {
	return s.client.HDel(ctx, s.key, hash).Err()
}

func (s *SessionStore) DeleteExpired(ctx context.Context, now time.Time) error {
	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return err
	}
	var stale []string
	for hash, value := range raw {
		var session domain.Session
		if err := json.Unmarshal([]byte(value), &session); err != nil || session.Expired(now) {
			stale = append(stale, hash)
		}
	}
	if len(stale) == 0 {
		return nil
	}
	return s.client.HDel(ctx, s.key, stale...).Err()
}

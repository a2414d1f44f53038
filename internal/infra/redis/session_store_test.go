package redis

import (
	"context"
	"testing"
	"time"

	"quiz-host-service/internal/app"
	"quiz-host-service/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
)

func TestSessionStoreSetsAndClearsFields(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	store := NewSessionStore(newClient(mr))
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	if err := store.Add(ctx, domain.Session{Hash: "h1", CreatedAt: now, ExpiresAt: now.Add(time.Hour)}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := store.Add(ctx, domain.Session{Hash: "h2", CreatedAt: now, ExpiresAt: now.Add(-time.Minute)}); err != nil {
		t.Fatalf("add: %v", err)
	}
	if got := mr.HGet(sessionsKey, "h1"); got == "" {
		t.Fatalf("expected redis field to be set")
	}

	if err := store.DeleteExpired(ctx, now); err != nil {
		t.Fatalf("delete expired: %v", err)
	}
	sessions, err := store.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(sessions) != 1 || sessions[0].Hash != "h1" || !sessions[0].ExpiresAt.Equal(now.Add(time.Hour)) {
		t.Fatalf("expected only h1 to survive, got %+v", sessions)
	}

	if err := store.Delete(ctx, "h1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if mr.Exists(sessionsKey) {
		t.Fatalf("expected redis key to be removed")
	}
}

func TestSessionManagerSharesSessionsThroughRedis(t *testing.T) {
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	defer mr.Close()

	ctx := context.Background()
	// two instances behind a load balancer
	first := app.NewSessionManager(NewSessionStore(newClient(mr)), "secret", time.Hour, app.WithHashCost(bcrypt.MinCost))
	second := app.NewSessionManager(NewSessionStore(newClient(mr)), "secret", time.Hour, app.WithHashCost(bcrypt.MinCost))

	token, err := first.CreateSession(ctx, "secret")
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	ok, err := second.VerifyToken(ctx, token)
	if err != nil || !ok {
		t.Fatalf("expected token valid on second instance, ok=%v err=%v", ok, err)
	}

	if err := second.RemoveSession(ctx, token); err != nil {
		t.Fatalf("remove: %v", err)
	}
	ok, _ = first.VerifyToken(ctx, token)
	if ok {
		t.Fatalf("expected logout to be visible on first instance")
	}
}

func newClient(mr *miniredis.Miniredis) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
}

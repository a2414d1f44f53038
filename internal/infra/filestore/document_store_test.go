package filestore

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"quiz-host-service/internal/domain"
)

func TestLoadMissingCollectionLeavesDestination(t *testing.T) {
	store, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	quizzes := []domain.Quiz{}
	if err := store.Load(context.Background(), "quizzes", &quizzes); err != nil {
		t.Fatalf("load: %v", err)
	}
	if quizzes == nil || len(quizzes) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", quizzes)
	}
}

func TestSaveWritesPrettyJSONFile(t *testing.T) {
	dir := t.TempDir()
	store, err := New(dir)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	ctx := context.Background()

	players := []domain.Player{{ID: "p1", Name: "Alice"}, {ID: "p2", Name: "Bob"}}
	if err := store.Save(ctx, "players", players); err != nil {
		t.Fatalf("save: %v", err)
	}

	raw, err := os.ReadFile(filepath.Join(dir, "players.json"))
	if err != nil {
		t.Fatalf("read file: %v", err)
	}
	if !strings.HasPrefix(string(raw), "[\n  {") {
		t.Fatalf("expected indented array, got %q", raw)
	}

	var loaded []domain.Player
	if err := store.Load(ctx, "players", &loaded); err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded) != 2 || loaded[1].Name != "Bob" {
		t.Fatalf("unexpected players %+v", loaded)
	}
}

package app

import (
	"context"
	"fmt"
)

// Collection names in the document store.
const (
	QuizzesCollection = "quizzes"
	PlayersCollection = "players"
	ResultsCollection = "results"
)

// DocumentStore reads and writes whole collections (JSON files, a Postgres
// JSONB table, ...). Load leaves dst untouched when the collection does not
// exist yet.
type DocumentStore interface {
	Load(ctx context.Context, collection string, dst any) error
	Save(ctx context.Context, collection string, v any) error
}

func loadAll[T any](ctx context.Context, store DocumentStore, collection string) ([]T, error) {
	items := []T{}
	if err := store.Load(ctx, collection, &items); err != nil {
		return nil, fmt.Errorf("read %s: %w", collection, err)
	}
	if items == nil {
		items = []T{}
	}
	return items, nil
}

func saveAll[T any](ctx context.Context, store DocumentStore, collection string, items []T) error {
	if err := store.Save(ctx, collection, items); err != nil {
		return fmt.Errorf("write %s: %w", collection, err)
	}
	return nil
}

// Package migrations holds the Postgres schema for the document store.
package migrations

import (
	"context"
	_ "embed"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

//go:embed 0001_create_documents.sql
var createDocumentsSQL string

// Migrations is applied by `migrate` and on `start` with the postgres driver.
var Migrations = migrate.NewMigrations()

func init() {
	Migrations.MustRegister(createDocuments, dropDocuments)
}

// createDocuments adds the table holding one JSONB array per collection
// (quizzes, players, results).
func createDocuments(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, createDocumentsSQL); err != nil {
		return fmt.Errorf("create documents table: %w", err)
	}
	return nil
}

// dropDocuments discards every stored collection.
func dropDocuments(ctx context.Context, db *bun.DB) error {
	if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS documents`); err != nil {
		return fmt.Errorf("drop documents table: %w", err)
	}
	return nil
}

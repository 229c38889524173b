package entity

import (
	"context"
	"testing"

	"github.com/kailas-cloud/campusbot/internal/db/migrations"
	"github.com/kailas-cloud/campusbot/internal/db/sqldb"
)

// newTestTables opens a migrated in-memory SQLite database.
func newTestTables(t *testing.T) *Tables {
	t.Helper()

	db, err := sqldb.Open(context.Background(), sqldb.Config{Driver: sqldb.SQLite, DSN: ":memory:"})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	m, err := migrations.New(db)
	if err != nil {
		t.Fatalf("migrator: %v", err)
	}
	if err := m.Up(); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	tables, err := NewTables(db)
	if err != nil {
		t.Fatalf("tables: %v", err)
	}
	return tables
}

func ptr[T any](v T) *T { return &v }

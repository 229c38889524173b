// Package migrations embeds the entity store schema and applies it with
// golang-migrate.
package migrations

import (
	"embed"
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database"
	pgxmigrate "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	sqlitemigrate "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"

	"github.com/kailas-cloud/campusbot/internal/db/sqldb"
)

//go:embed postgres/*.sql sqlite/*.sql
var files embed.FS

// Migrator applies the embedded schema to one database.
type Migrator struct {
	m *migrate.Migrate
}

// New creates a Migrator for db. The migrator shares db; Close does not close it.
func New(db *sqldb.DB) (*Migrator, error) {
	dir := string(db.Dialect())

	source, err := iofs.New(files, dir)
	if err != nil {
		return nil, fmt.Errorf("migration source: %w", err)
	}

	var driver database.Driver
	switch db.Dialect() {
	case sqldb.Postgres:
		driver, err = pgxmigrate.WithInstance(db.DB, &pgxmigrate.Config{})
	case sqldb.SQLite:
		driver, err = sqlitemigrate.WithInstance(db.DB, &sqlitemigrate.Config{})
	default:
		return nil, fmt.Errorf("no migrations for dialect %q", db.Dialect())
	}
	if err != nil {
		return nil, fmt.Errorf("migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, dir, driver)
	if err != nil {
		return nil, fmt.Errorf("create migrator: %w", err)
	}
	return &Migrator{m: m}, nil
}

// Up applies all pending migrations. Already current is not an error.
func (m *Migrator) Up() error {
	if err := m.m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// Down reverts all migrations.
func (m *Migrator) Down() error {
	if err := m.m.Down(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

// Version reports the applied version. A fresh database reports 0.
func (m *Migrator) Version() (uint, bool, error) {
	v, dirty, err := m.m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	return v, dirty, err
}

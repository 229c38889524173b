// Package sqldb opens the relational entity store and renders filter
// expressions into SQL for it.
package sqldb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"modernc.org/sqlite"
)

// casefold lowercases with Unicode rules; SQLite's lower() only folds ASCII.
func init() {
	sqlite.MustRegisterDeterministicScalarFunction("casefold", 1, casefold)
}

func casefold(_ *sqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
	switch v := args[0].(type) {
	case nil:
		return nil, nil
	case string:
		return strings.ToLower(v), nil
	case []byte:
		return strings.ToLower(string(v)), nil
	default:
		return v, nil
	}
}

// Dialect selects placeholder and matching syntax.
type Dialect string

// Supported dialects.
const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Config holds connection settings.
type Config struct {
	Driver          Dialect
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DB is a database handle that knows its dialect.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Open opens and pings the database.
func Open(ctx context.Context, cfg Config) (*DB, error) {
	var (
		raw *sql.DB
		err error
	)
	switch cfg.Driver {
	case Postgres:
		raw, err = sql.Open("pgx", cfg.DSN)
	case SQLite:
		raw, err = openSQLite(cfg.DSN)
	default:
		return nil, fmt.Errorf("sqldb: unsupported driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Driver == SQLite {
		// one writer; every connection to :memory: is a new database
		raw.SetMaxOpenConns(1)
	} else if cfg.MaxOpenConns > 0 {
		raw.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		raw.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		raw.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	if err := raw.PingContext(ctx); err != nil {
		raw.Close()
		return nil, fmt.Errorf("sqldb: ping: %w", err)
	}
	return &DB{DB: raw, dialect: cfg.Driver}, nil
}

// Wrap adopts an already opened handle.
func Wrap(raw *sql.DB, d Dialect) *DB {
	return &DB{DB: raw, dialect: d}
}

// Dialect returns the SQL dialect.
func (d *DB) Dialect() Dialect { return d.dialect }

// Ping checks connectivity.
func (d *DB) Ping(ctx context.Context) error {
	return d.PingContext(ctx)
}

func openSQLite(path string) (*sql.DB, error) {
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("sqldb: mkdir: %w", err)
		}
	}

	raw, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqldb: open: %w", err)
	}
	for _, p := range []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
	} {
		if _, err := raw.Exec(p); err != nil {
			raw.Close()
			return nil, fmt.Errorf("sqldb: %s: %w", p, err)
		}
	}
	return raw, nil
}

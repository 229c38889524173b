// Package entity stores the school records in a relational database.
package entity

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/kailas-cloud/campusbot/internal/db/sqldb"
	"github.com/kailas-cloud/campusbot/internal/domain"
	"github.com/kailas-cloud/campusbot/internal/domain/search/filter"
)

// ErrRequired signals a missing mandatory column on write.
var ErrRequired = fmt.Errorf("%w: required field missing", domain.ErrInvalidInput)

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// Table implements lookups and CRUD for one entity kind.
type Table[T any] struct {
	db        *sqldb.DB
	name      string
	cols      []column
	byName    map[string]int
	selectSQL string
}

// NewTable maps T onto table name. The first non-id column is required on write.
func NewTable[T any](db *sqldb.DB, name string) (*Table[T], error) {
	cols, err := columnsOf[T]()
	if err != nil {
		return nil, err
	}
	if len(cols) < 2 {
		return nil, fmt.Errorf("%s: no data columns", name)
	}
	byName := make(map[string]int, len(cols))
	quoted := make([]string, len(cols))
	for i, c := range cols {
		byName[c.name] = i
		quoted[i] = quote(c.name)
	}
	return &Table[T]{
		db:        db,
		name:      name,
		cols:      cols,
		byName:    byName,
		selectSQL: fmt.Sprintf("SELECT %s FROM %s", strings.Join(quoted, ", "), quote(name)),
	}, nil
}

// Name returns the table name.
func (t *Table[T]) Name() string { return t.name }

// FindMany returns every row matching expr ordered by sort ascending.
func (t *Table[T]) FindMany(ctx context.Context, expr filter.Expression, sort string) ([]T, error) {
	query, args, err := t.query(expr, sort)
	if err != nil {
		return nil, err
	}
	return t.queryMany(ctx, query, args...)
}

// FindFirst returns the first row matching expr or domain.ErrNotFound.
func (t *Table[T]) FindFirst(ctx context.Context, expr filter.Expression, sort string) (T, error) {
	query, args, err := t.query(expr, sort)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.queryOne(ctx, query+" LIMIT 1", args...)
}

// List returns a page of rows ordered by id.
func (t *Table[T]) List(ctx context.Context, limit, offset int) ([]T, error) {
	if limit <= 0 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	query := fmt.Sprintf("%s ORDER BY id LIMIT %d OFFSET %d", t.selectSQL, limit, offset)
	return t.queryMany(ctx, query)
}

// Get returns one row by id or domain.ErrNotFound.
func (t *Table[T]) Get(ctx context.Context, id int64) (T, error) {
	query := fmt.Sprintf("%s WHERE id = %s", t.selectSQL, t.db.Dialect().Placeholder(1))
	return t.queryOne(ctx, query, id)
}

// Create inserts rec and returns it with its new id.
func (t *Table[T]) Create(ctx context.Context, rec T) (T, error) {
	args := values(t.cols, rec)
	if args[0] == nil {
		var zero T
		return zero, fmt.Errorf("%s.%s: %w", t.name, t.cols[1].name, ErrRequired)
	}

	names := make([]string, 0, len(t.cols)-1)
	marks := make([]string, 0, len(t.cols)-1)
	for i, c := range t.cols[1:] {
		names = append(names, quote(c.name))
		marks = append(marks, t.db.Dialect().Placeholder(i+1))
	}
	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s) RETURNING id",
		quote(t.name), strings.Join(names, ", "), strings.Join(marks, ", "))

	var id int64
	if err := t.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		var zero T
		return zero, t.mapError("create", err)
	}
	setID(t.cols, &rec, id)
	return rec, nil
}

// Update replaces every column of row id with rec.
func (t *Table[T]) Update(ctx context.Context, id int64, rec T) (T, error) {
	args := values(t.cols, rec)
	if args[0] == nil {
		var zero T
		return zero, fmt.Errorf("%s.%s: %w", t.name, t.cols[1].name, ErrRequired)
	}

	sets := make([]string, 0, len(t.cols)-1)
	for i, c := range t.cols[1:] {
		sets = append(sets, fmt.Sprintf("%s = %s", quote(c.name), t.db.Dialect().Placeholder(i+1)))
	}
	query := fmt.Sprintf("UPDATE %s SET %s WHERE id = %s",
		quote(t.name), strings.Join(sets, ", "), t.db.Dialect().Placeholder(len(t.cols)))
	args = append(args, id)

	if err := t.execOne(ctx, query, args...); err != nil {
		var zero T
		return zero, t.mapError("update", err)
	}
	setID(t.cols, &rec, id)
	return rec, nil
}

// Delete removes row id.
func (t *Table[T]) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf("DELETE FROM %s WHERE id = %s", quote(t.name), t.db.Dialect().Placeholder(1))
	if err := t.execOne(ctx, query, id); err != nil {
		return t.mapError("delete", err)
	}
	return nil
}

func (t *Table[T]) query(expr filter.Expression, sort string) (string, []any, error) {
	where, args, err := t.db.Dialect().Where(expr, 1, t.column)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", t.name, err)
	}
	order, ok := t.column(sort)
	if !ok {
		order = "id"
	}
	return fmt.Sprintf("%s%s ORDER BY %s, id", t.selectSQL, where, order), args, nil
}

func (t *Table[T]) column(field string) (string, bool) {
	if _, ok := t.byName[field]; !ok {
		return "", false
	}
	return quote(field), true
}

func (t *Table[T]) scan(s scanner) (T, error) {
	targets := scanTargets(t.cols)
	if err := s.Scan(targets...); err != nil {
		var zero T
		return zero, err
	}
	return assign[T](t.cols, targets), nil
}

func (t *Table[T]) queryOne(ctx context.Context, query string, args ...any) (T, error) {
	rec, err := t.scan(t.db.QueryRowContext(ctx, query, args...))
	if err != nil {
		return rec, t.mapError("get", err)
	}
	return rec, nil
}

func (t *Table[T]) queryMany(ctx context.Context, query string, args ...any) ([]T, error) {
	rows, err := t.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, t.mapError("query", err)
	}
	defer rows.Close()

	out := make([]T, 0)
	for rows.Next() {
		rec, err := t.scan(rows)
		if err != nil {
			return nil, t.mapError("scan", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, t.mapError("query", err)
	}
	return out, nil
}

func (t *Table[T]) execOne(ctx context.Context, query string, args ...any) error {
	res, err := t.db.ExecContext(ctx, query, args...)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

const pgNotNullViolation = "23502"

// mapError translates driver errors to domain errors.
func (t *Table[T]) mapError(op string, err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", op, t.name, domain.ErrNotFound)
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgNotNullViolation {
		return fmt.Errorf("%s %s: %w", op, t.name, ErrRequired)
	}
	return fmt.Errorf("%s %s: %w", op, t.name, err)
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}

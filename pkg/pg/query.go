package pg

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// Querier is satisfied by *pgxpool.Pool, *pgx.Conn and pgx.Tx.
type Querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Query is a lazily evaluated SELECT usable as a pageable collection.
// Count wraps the statement in a count(*) subquery and Slice appends
// LIMIT/OFFSET, so the statement itself must not end with either.
type Query[T any] struct {
	db   Querier
	sql  string
	args []any
	scan pgx.RowToFunc[T]
}

// NewQuery prepares sql for paging. scan converts one row, e.g.
// pgx.RowToStructByName[Article].
func NewQuery[T any](db Querier, scan pgx.RowToFunc[T], sql string, args ...any) *Query[T] {
	return &Query[T]{db: db, sql: sql, args: args, scan: scan}
}

// NewMapQuery pages rows as column-name maps, ready for serialization.
func NewMapQuery(db Querier, sql string, args ...any) *Query[any] {
	return NewQuery(db, func(row pgx.CollectableRow) (any, error) {
		return pgx.RowToMap(row)
	}, sql, args...)
}

// Count returns the number of rows the statement yields.
func (q *Query[T]) Count(ctx context.Context) (int, error) {
	var n int64
	err := q.db.QueryRow(ctx, fmt.Sprintf("SELECT count(*) FROM (%s) AS q", q.sql), q.args...).Scan(&n)
	if err != nil {
		return 0, errors.Join(ErrQueryFailed, err)
	}
	return int(n), nil
}

// Slice returns rows [bottom, top).
func (q *Query[T]) Slice(ctx context.Context, bottom, top int) ([]T, error) {
	if top <= bottom {
		return []T{}, nil
	}
	n := len(q.args)
	args := append(q.args[:n:n], top-bottom, bottom)
	rows, err := q.db.Query(ctx, fmt.Sprintf("%s LIMIT $%d OFFSET $%d", q.sql, n+1, n+2), args...)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	items, err := pgx.CollectRows(rows, q.scan)
	if err != nil {
		return nil, errors.Join(ErrQueryFailed, err)
	}
	return items, nil
}

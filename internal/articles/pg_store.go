package articles

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/pkg/pagination"
	"github.com/dmitrymomot/restkit/pkg/pg"
)

// Schema creates the table PgStore reads and writes.
const Schema = `CREATE TABLE IF NOT EXISTS articles (
	id         serial PRIMARY KEY,
	title      text NOT NULL,
	body       text NOT NULL DEFAULT '',
	status     text NOT NULL DEFAULT 'draft',
	created_at timestamptz NOT NULL DEFAULT now()
)`

const selectArticles = `SELECT id, title, body, status, created_at FROM articles`

// DB is the subset of *pgxpool.Pool used by PgStore.
type DB interface {
	pg.Querier
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PgStore keeps articles in Postgres.
type PgStore struct {
	db DB
}

func NewPgStore(db DB) *PgStore { return &PgStore{db: db} }

// Migrate creates the articles table when it is missing.
func (s *PgStore) Migrate(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, Schema); err != nil {
		return errors.Join(pg.ErrQueryFailed, err)
	}
	return nil
}

func (s *PgStore) All() pagination.Sequence[any] {
	return pg.NewMapQuery(s.db, selectArticles+` ORDER BY id`)
}

func (s *PgStore) Get(ctx context.Context, id int) (Article, error) {
	items, err := pg.NewMapQuery(s.db, selectArticles+` WHERE id = $1`, id).Slice(ctx, 0, 1)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, core.ErrNotFound
	}
	return items[0].(map[string]any), nil
}

func (s *PgStore) Add(ctx context.Context, fields Article) (Article, error) {
	rows, err := s.db.Query(ctx,
		`INSERT INTO articles (title, body, status) VALUES ($1, $2, $3) RETURNING id, title, body, status, created_at`,
		fields["title"], fields["body"], fields["status"])
	if err != nil {
		return nil, errors.Join(pg.ErrQueryFailed, err)
	}
	a, err := pgx.CollectExactlyOneRow(rows, pgx.RowToMap)
	if err != nil {
		return nil, errors.Join(pg.ErrQueryFailed, err)
	}
	return a, nil
}

func (s *PgStore) Put(ctx context.Context, a Article) error {
	id, err := articleID(a)
	if err != nil {
		return err
	}
	var updated int
	err = s.db.QueryRow(ctx,
		`UPDATE articles SET title = $2, body = $3, status = $4 WHERE id = $1 RETURNING id`,
		id, a["title"], a["body"], a["status"]).Scan(&updated)
	if pg.IsNotFoundError(err) {
		return core.ErrNotFound
	}
	if err != nil {
		return errors.Join(pg.ErrQueryFailed, err)
	}
	return nil
}

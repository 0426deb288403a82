package articles_test

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/internal/articles"
	"github.com/dmitrymomot/restkit/pkg/pg"
)

type fakeDB struct {
	execs   []string
	queries []string
	rowErr  error
}

func (db *fakeDB) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	db.execs = append(db.execs, sql)
	return pgconn.NewCommandTag("CREATE TABLE"), nil
}

func (db *fakeDB) Query(_ context.Context, sql string, _ ...any) (pgx.Rows, error) {
	db.queries = append(db.queries, sql)
	return nil, errors.New("connection refused")
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, _ ...any) pgx.Row {
	db.queries = append(db.queries, sql)
	return fakeRow{err: db.rowErr}
}

type fakeRow struct{ err error }

func (r fakeRow) Scan(...any) error { return r.err }

func TestPgStore(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("migrate", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{}
		require.NoError(t, articles.NewPgStore(db).Migrate(ctx))
		assert.Equal(t, []string{articles.Schema}, db.execs)
	})

	t.Run("put unknown id", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{rowErr: pgx.ErrNoRows}
		err := articles.NewPgStore(db).Put(ctx, articles.Article{"id": 7, "title": "x"})
		assert.ErrorIs(t, err, core.ErrNotFound)
		require.Len(t, db.queries, 1)
		assert.Contains(t, db.queries[0], "UPDATE articles")
	})

	t.Run("query failures", func(t *testing.T) {
		t.Parallel()
		store := articles.NewPgStore(&fakeDB{})
		_, err := store.Add(ctx, articles.Article{"title": "x"})
		assert.ErrorIs(t, err, pg.ErrQueryFailed)
		_, err = store.Get(ctx, 1)
		assert.ErrorIs(t, err, pg.ErrQueryFailed)
	})
}

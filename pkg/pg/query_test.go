package pg_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restkit/pkg/pagination"
	"github.com/dmitrymomot/restkit/pkg/pg"
)

// fakeDB serves a fixed table and records the statements it receives.
type fakeDB struct {
	columns []string
	rows    [][]any
	err     error

	queries []string
	args    [][]any
}

func (db *fakeDB) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	db.queries = append(db.queries, sql)
	db.args = append(db.args, args)
	if db.err != nil {
		return nil, db.err
	}
	limit, offset := args[len(args)-2].(int), args[len(args)-1].(int)
	end := min(offset+limit, len(db.rows))
	start := min(offset, end)
	return &fakeRows{columns: db.columns, rows: db.rows[start:end], pos: -1}, nil
}

func (db *fakeDB) QueryRow(_ context.Context, sql string, args ...any) pgx.Row {
	db.queries = append(db.queries, sql)
	db.args = append(db.args, args)
	return fakeRow{n: int64(len(db.rows)), err: db.err}
}

type fakeRow struct {
	n   int64
	err error
}

func (r fakeRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.n
	return nil
}

type fakeRows struct {
	columns []string
	rows    [][]any
	pos     int
}

func (r *fakeRows) Close()                        {}
func (r *fakeRows) Err() error                    { return nil }
func (r *fakeRows) CommandTag() pgconn.CommandTag { return pgconn.CommandTag{} }
func (r *fakeRows) RawValues() [][]byte           { return nil }
func (r *fakeRows) Conn() *pgx.Conn               { return nil }
func (r *fakeRows) Values() ([]any, error)        { return r.rows[r.pos], nil }

func (r *fakeRows) Next() bool {
	r.pos++
	return r.pos < len(r.rows)
}

func (r *fakeRows) FieldDescriptions() []pgconn.FieldDescription {
	fds := make([]pgconn.FieldDescription, len(r.columns))
	for i, c := range r.columns {
		fds[i] = pgconn.FieldDescription{Name: c}
	}
	return fds
}

func (r *fakeRows) Scan(dest ...any) error {
	if len(dest) == 1 {
		if rs, ok := dest[0].(pgx.RowScanner); ok {
			return rs.ScanRow(r)
		}
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *int64:
			*p = r.rows[r.pos][i].(int64)
		case *string:
			*p = r.rows[r.pos][i].(string)
		default:
			return fmt.Errorf("unsupported scan target %T", d)
		}
	}
	return nil
}

type article struct {
	ID    int64
	Title string
}

func scanArticle(row pgx.CollectableRow) (article, error) {
	var a article
	err := row.Scan(&a.ID, &a.Title)
	return a, err
}

func articlesDB(n int) *fakeDB {
	db := &fakeDB{columns: []string{"id", "title"}}
	for i := range n {
		db.rows = append(db.rows, []any{int64(i + 1), fmt.Sprintf("article %d", i+1)})
	}
	return db
}

func TestQuery(t *testing.T) {
	t.Parallel()

	t.Run("counts with a subquery", func(t *testing.T) {
		t.Parallel()
		db := articlesDB(7)
		q := pg.NewQuery(db, scanArticle, "SELECT id, title FROM articles WHERE author_id = $1", 42)

		n, err := q.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 7, n)
		assert.Equal(t, "SELECT count(*) FROM (SELECT id, title FROM articles WHERE author_id = $1) AS q", db.queries[0])
		assert.Equal(t, []any{42}, db.args[0])
	})

	t.Run("slices with limit and offset after existing args", func(t *testing.T) {
		t.Parallel()
		db := articlesDB(7)
		q := pg.NewQuery(db, scanArticle, "SELECT id, title FROM articles WHERE author_id = $1", 42)

		items, err := q.Slice(context.Background(), 2, 5)
		require.NoError(t, err)
		assert.Equal(t, []article{{3, "article 3"}, {4, "article 4"}, {5, "article 5"}}, items)
		assert.Equal(t, "SELECT id, title FROM articles WHERE author_id = $1 LIMIT $2 OFFSET $3", db.queries[0])
		assert.Equal(t, []any{42, 3, 2}, db.args[0])
	})

	t.Run("map rows", func(t *testing.T) {
		t.Parallel()
		q := pg.NewMapQuery(articlesDB(2), "SELECT id, title FROM articles")

		items, err := q.Slice(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, map[string]any{"id": int64(2), "title": "article 2"}, items[1])
	})

	t.Run("wraps driver errors", func(t *testing.T) {
		t.Parallel()
		db := &fakeDB{err: errors.New("connection reset")}
		q := pg.NewMapQuery(db, "SELECT 1")

		_, err := q.Count(context.Background())
		assert.ErrorIs(t, err, pg.ErrQueryFailed)
		_, err = q.Slice(context.Background(), 0, 1)
		assert.ErrorIs(t, err, pg.ErrQueryFailed)
	})

	t.Run("paginates", func(t *testing.T) {
		t.Parallel()
		p, err := pagination.NewPaginator[article](pg.NewQuery(articlesDB(25), scanArticle, "SELECT id, title FROM articles"), 10)
		require.NoError(t, err)

		page, err := p.Page(context.Background(), "3")
		require.NoError(t, err)
		assert.Len(t, page.Items, 5)
		assert.Equal(t, int64(21), page.Items[0].ID)
		assert.Equal(t, 21, page.StartIndex())
		assert.Equal(t, 25, page.EndIndex())
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	assert.NoError(t, pg.Healthcheck(pinger{})(context.Background()))
	assert.ErrorIs(t, pg.Healthcheck(pinger{err: errors.New("down")})(context.Background()), pg.ErrHealthcheckFailed)
}

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

func TestConnectRequiresConnectionString(t *testing.T) {
	t.Parallel()
	_, err := pg.Connect(context.Background(), pg.Config{})
	assert.ErrorIs(t, err, pg.ErrEmptyConnectionString)
}

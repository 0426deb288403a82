// Package pg connects to PostgreSQL through pgx/v5 and exposes SELECT
// statements as pageable collections.
//
// # Usage
//
//	cfg, err := config.Load[pg.Config]()
//	if err != nil {
//	    return err
//	}
//	pool, err := pg.Connect(ctx, *cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	q := pg.NewMapQuery(pool, "SELECT id, title FROM articles WHERE author_id = $1 ORDER BY id", authorID)
//	p, _ := pagination.NewPaginator[any](q, 20)
//	page, err := p.Page(ctx, r.URL.Query().Get("page"))
//
// A Query counts with a count(*) subquery and reads each page with
// LIMIT/OFFSET, appending its own placeholders after the statement's.
//
// Healthcheck returns a readiness probe around Ping.
package pg

// Package redis connects to Redis and exposes Redis lists as pageable
// collections.
//
// A List counts with LLEN and reads one page with LRANGE, so it satisfies
// the pagination Sequence and Counter interfaces without loading the whole
// list:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	articles := redis.NewJSONList(client, "articles")
//	p, _ := pagination.NewPaginator[any](articles, 20)
//	page, err := p.Page(ctx, 1)
//
// Config is populated from the environment through pkg/config:
//
//	cfg, err := config.Load[redis.Config]()
//
// Healthcheck returns a probe suitable for readiness endpoints.
package redis

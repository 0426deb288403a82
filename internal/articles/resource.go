package articles

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cast"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/handler"
	"github.com/dmitrymomot/restkit/pkg/serializer"
)

type noRequest struct{}

// Resource serves the /articles endpoints.
type Resource struct {
	store  Store
	schema *serializer.Schema
	log    *slog.Logger
}

func NewResource(store Store, log *slog.Logger) *Resource {
	if log == nil {
		log = slog.Default()
	}
	return &Resource{store: store, schema: NewSchema(store), log: log}
}

func (res *Resource) Schema() *serializer.Schema { return res.schema }

// Routes mounts list, create, retrieve and update. Writes need an
// authenticated user.
func (res *Resource) Routes(r chi.Router) {
	r.Get("/", res.wrap(res.list))
	r.Post("/", res.wrap(res.create))
	r.Options("/", res.wrap(allow("GET, POST, OPTIONS")))
	r.Get("/{id}", res.wrap(res.retrieve))
	r.Put("/{id}", res.wrap(res.update(false)))
	r.Patch("/{id}", res.wrap(res.update(true)))
	r.Options("/{id}", res.wrap(allow("GET, PUT, PATCH, OPTIONS")))
}

func allow(methods string) func(handler.Context, noRequest) handler.Response {
	return func(handler.Context, noRequest) handler.Response {
		return handler.Empty().Header("Allow", methods)
	}
}

func (res *Resource) wrap(fn func(handler.Context, noRequest) handler.Response) http.HandlerFunc {
	return handler.Wrap(handler.HandlerFunc[handler.Context, noRequest](fn),
		handler.WithPermissions[handler.Context, noRequest](handler.IsAuthenticatedOrReadOnly),
		handler.WithLogger[handler.Context, noRequest](res.log),
	)
}

func (res *Resource) list(ctx handler.Context, _ noRequest) handler.Response {
	return handler.List(ctx, res.schema, res.store.All(), nil)
}

func (res *Resource) create(ctx handler.Context, _ noRequest) handler.Response {
	return handler.Create(ctx, res.schema, nil)
}

func (res *Resource) retrieve(ctx handler.Context, _ noRequest) handler.Response {
	a, err := res.lookup(ctx)
	if err != nil {
		return handler.Error(err)
	}
	return handler.Retrieve(ctx, res.schema, a)
}

func (res *Resource) update(partial bool) func(handler.Context, noRequest) handler.Response {
	return func(ctx handler.Context, _ noRequest) handler.Response {
		a, err := res.lookup(ctx)
		if err != nil {
			return handler.Error(err)
		}
		return handler.Update(ctx, res.schema, a, partial)
	}
}

func (res *Resource) lookup(ctx handler.Context) (Article, error) {
	id, err := cast.ToIntE(chi.URLParam(ctx.Request(), "id"))
	if err != nil {
		return nil, core.ErrNotFound
	}
	return res.store.Get(ctx, id)
}

func articleID(a Article) (int, error) {
	id, err := cast.ToIntE(a["id"])
	if err != nil {
		return 0, fmt.Errorf("articles: invalid id %v: %w", a["id"], err)
	}
	return id, nil
}

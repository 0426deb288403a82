package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/mitchellh/mapstructure"
)

// HandlerFunc handles one request with a custom context C and a bound
// request value R.
//
//	type listArticles struct {
//		Author string `json:"author"`
//	}
//
//	h := handler.HandlerFunc[handler.Context, listArticles](
//		func(ctx handler.Context, req listArticles) handler.Response {
//			return handler.List(ctx, ArticleSerializer, store.ByAuthor(req.Author), nil)
//		},
//	)
type HandlerFunc[C Context, R any] func(ctx C, req R) Response

// Response renders itself to an http.ResponseWriter.
type Response interface {
	Render(w http.ResponseWriter, r *http.Request) error
}

// Bind fills v from the request.
type Bind func(r *Request, v any) error

// ErrorHandler writes the response for a failed request.
type ErrorHandler[C Context] func(ctx C, err error)

// Decorator wraps a HandlerFunc. The first decorator passed to
// WithDecorators is the outermost.
type Decorator[C Context, R any] func(HandlerFunc[C, R]) HandlerFunc[C, R]

// WrapOption configures Wrap.
type WrapOption[C Context, R any] func(*wrapConfig[C, R])

type wrapConfig[C Context, R any] struct {
	binders        []Bind
	permissions    []Permission
	errorHandler   ErrorHandler[C]
	contextFactory func(http.ResponseWriter, *http.Request) C
	decorators     []Decorator[C, R]
	logger         *slog.Logger
}

// WithBinders sets the binders applied, in order, before the handler runs.
func WithBinders[C Context, R any](binders ...Bind) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.binders = append(c.binders, binders...)
	}
}

// WithPermissions sets the permissions checked before binding. Every one
// must grant the request.
func WithPermissions[C Context, R any](perms ...Permission) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.permissions = append(c.permissions, perms...)
	}
}

func WithErrorHandler[C Context, R any](h ErrorHandler[C]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if h != nil {
			c.errorHandler = h
		}
	}
}

func WithContextFactory[C Context, R any](f func(http.ResponseWriter, *http.Request) C) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if f != nil {
			c.contextFactory = f
		}
	}
}

func WithDecorators[C Context, R any](decorators ...Decorator[C, R]) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		c.decorators = append(c.decorators, decorators...)
	}
}

// WithLogger sets the logger used by responses and the default error
// handler. It defaults to slog.Default().
func WithLogger[C Context, R any](log *slog.Logger) WrapOption[C, R] {
	return func(c *wrapConfig[C, R]) {
		if log != nil {
			c.logger = log
		}
	}
}

// BindData decodes the request data (query for safe methods, body
// otherwise) into v by json tag names, converting scalar types.
func BindData() Bind {
	return func(r *Request, v any) error {
		data, err := r.Data()
		if err != nil {
			return err
		}
		return decodeInto(data, v)
	}
}

// BindQuery decodes the query parameters into v by json tag names.
func BindQuery() Bind {
	return func(r *Request, v any) error {
		return decodeInto(firstValues(r.QueryParams()), v)
	}
}

func decodeInto(data, v any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           v,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(data)
}

// Wrap converts a HandlerFunc into an http.HandlerFunc. Per request it
// checks permissions, runs the binders, calls the decorated handler and
// renders its response. Any failure goes to the error handler.
//
//	r.Get("/articles", handler.Wrap(listArticles,
//		handler.WithPermissions[handler.Context, listArticles](handler.IsAuthenticatedOrReadOnly),
//		handler.WithBinders[handler.Context, listArticles](handler.BindQuery()),
//	))
func Wrap[C Context, R any](h HandlerFunc[C, R], opts ...WrapOption[C, R]) http.HandlerFunc {
	cfg := &wrapConfig[C, R]{
		contextFactory: func(w http.ResponseWriter, r *http.Request) C {
			if c, ok := NewContext(w, r).(C); ok {
				return c
			}
			panic("handler: default context does not implement the custom context type, use WithContextFactory")
		},
	}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.logger == nil {
		cfg.logger = slog.Default()
	}
	if cfg.errorHandler == nil {
		cfg.errorHandler = NewErrorHandler[C](cfg.logger)
	}

	final := h
	for i := len(cfg.decorators) - 1; i >= 0; i-- {
		final = cfg.decorators[i](final)
	}

	return func(w http.ResponseWriter, r *http.Request) {
		r = r.WithContext(context.WithValue(r.Context(), loggerKey, cfg.logger))
		ctx := cfg.contextFactory(w, r)

		if err := CheckPermissions(ctx.API(), cfg.permissions...); err != nil {
			cfg.errorHandler(ctx, err)
			return
		}

		var req R
		for _, bind := range cfg.binders {
			if err := bind(ctx.API(), &req); err != nil {
				cfg.errorHandler(ctx, err)
				return
			}
		}

		response := final(ctx, req)
		if response == nil {
			cfg.errorHandler(ctx, ErrNilResponse)
			return
		}
		if err := response.Render(w, r); err != nil {
			cfg.errorHandler(ctx, err)
		}
	}
}

var loggerKey = NewContextKey("logger")

// LoggerFromContext returns the logger Wrap stored in ctx, or slog.Default().
func LoggerFromContext(ctx context.Context) *slog.Logger {
	if log, ok := ContextValueOK[*slog.Logger](ctx, loggerKey); ok && log != nil {
		return log
	}
	return slog.Default()
}

// Package handler turns serializer schemas into HTTP endpoints.
//
// Handlers are generic functions over a request context C and a bound
// request value R. Wrap adapts them to http.HandlerFunc, running permission
// checks, binding and error rendering around the call:
//
//	type listQuery struct {
//		Author string `json:"author"`
//	}
//
//	list := handler.HandlerFunc[handler.Context, listQuery](
//		func(ctx handler.Context, q listQuery) handler.Response {
//			return handler.List(ctx, articles, store.ByAuthor(q.Author), nil)
//		},
//	)
//
//	r.Get("/articles", handler.Wrap(list,
//		handler.WithBinders[handler.Context, listQuery](handler.BindQuery()),
//		handler.WithPermissions[handler.Context, listQuery](handler.IsAuthenticatedOrReadOnly),
//	))
//
// # Requests
//
// Request adapts an *http.Request to the shape serializers expect. Data
// returns query values for safe methods and the decoded body otherwise. JSON,
// urlencoded and multipart bodies are supported; anything else is reported as
// core.ErrUnsupportedMediaType.
//
// # Views
//
// List, Retrieve, Create and Update implement the usual resource operations
// on top of a serializer.Schema. List paginates through a pagination.Strategy
// and falls back to pagination.Default when none is given. Validation
// failures render as 400 with the field error map as the body.
//
// # Errors
//
// Every error returned by a Response reaches the ErrorHandler. The default
// handler classifies it with ClassifyError: validation errors and
// *core.APIError values keep their status and message, everything else
// becomes a generic 500 whose cause is only logged.
//
// # Middleware
//
// RequestID propagates X-Request-ID into the context and the logs.
// Metrics records per-route request counts and latencies for Prometheus.
package handler

package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/handler"
	"github.com/dmitrymomot/restkit/pkg/serializer"
	"github.com/dmitrymomot/restkit/pkg/validator"
)

type noRequest struct{}

func wrap(fn func(handler.Context, noRequest) handler.Response, opts ...handler.WrapOption[handler.Context, noRequest]) http.HandlerFunc {
	return handler.Wrap(handler.HandlerFunc[handler.Context, noRequest](fn), opts...)
}

func serve(h http.Handler, r *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body), w.Body.String())
	return body
}

func TestWrap(t *testing.T) {
	t.Parallel()

	t.Run("renders json", func(t *testing.T) {
		t.Parallel()
		h := wrap(func(ctx handler.Context, _ noRequest) handler.Response {
			return handler.JSON(map[string]any{"ok": true}, handler.WithJSONStatus(http.StatusAccepted))
		})

		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusAccepted, w.Code)
		assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))
		assert.JSONEq(t, `{"ok":true}`, w.Body.String())
	})

	t.Run("nil data has no body", func(t *testing.T) {
		t.Parallel()
		h := wrap(func(handler.Context, noRequest) handler.Response { return handler.JSON(nil) })
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Empty(t, w.Body.String())
	})

	t.Run("permission denied before the handler runs", func(t *testing.T) {
		t.Parallel()
		called := false
		h := wrap(func(handler.Context, noRequest) handler.Response {
			called = true
			return handler.Empty()
		}, handler.WithPermissions[handler.Context, noRequest](handler.IsAuthenticatedOrReadOnly))

		w := serve(h, httptest.NewRequest(http.MethodPost, "/", nil))
		assert.False(t, called)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, map[string]any{"detail": "You do not have permission to perform this action."}, decodeBody(t, w))

		w = serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, called)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("validation errors keep field order", func(t *testing.T) {
		t.Parallel()
		schema := serializer.NewSchema("Article",
			serializer.Declare("title", serializer.Char(serializer.MaxLength(5))),
			serializer.Declare("rating", serializer.Integer()),
		)
		h := wrap(func(ctx handler.Context, _ noRequest) handler.Response {
			return handler.Create(ctx, schema, nil)
		})

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"title":"far too long","rating":"x"}`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(h, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), `{"title":`), w.Body.String())
		body := decodeBody(t, w)
		assert.Contains(t, body, "title")
		assert.Contains(t, body, "rating")
	})

	t.Run("api errors", func(t *testing.T) {
		t.Parallel()
		h := wrap(func(handler.Context, noRequest) handler.Response {
			return handler.Error(core.NotFound("No article matches the given query."))
		})
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, map[string]any{"detail": "No article matches the given query."}, decodeBody(t, w))
	})

	t.Run("unexpected errors hide details", func(t *testing.T) {
		t.Parallel()
		h := wrap(func(handler.Context, noRequest) handler.Response {
			return handler.Error(errors.New("db password is hunter2"))
		})
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, map[string]any{"detail": "A server error occurred."}, decodeBody(t, w))
	})

	t.Run("nil response", func(t *testing.T) {
		t.Parallel()
		var got error
		h := wrap(
			func(handler.Context, noRequest) handler.Response { return nil },
			handler.WithErrorHandler[handler.Context, noRequest](func(ctx handler.Context, err error) {
				got = err
				ctx.ResponseWriter().WriteHeader(http.StatusTeapot)
			}),
		)
		w := serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.ErrorIs(t, got, handler.ErrNilResponse)
		assert.Equal(t, http.StatusTeapot, w.Code)
	})

	t.Run("binders", func(t *testing.T) {
		t.Parallel()
		type filter struct {
			Author string `json:"author"`
			Limit  int    `json:"limit"`
		}
		h := handler.Wrap(handler.HandlerFunc[handler.Context, filter](func(_ handler.Context, req filter) handler.Response {
			return handler.JSON(req)
		}), handler.WithBinders[handler.Context, filter](handler.BindQuery()))

		w := serve(h, httptest.NewRequest(http.MethodGet, "/?author=ada&limit=3", nil))
		assert.JSONEq(t, `{"author":"ada","limit":3}`, w.Body.String())
	})

	t.Run("bind data failure", func(t *testing.T) {
		t.Parallel()
		type payload struct {
			Title string `json:"title"`
		}
		h := handler.Wrap(handler.HandlerFunc[handler.Context, payload](func(_ handler.Context, req payload) handler.Response {
			return handler.JSON(req)
		}), handler.WithBinders[handler.Context, payload](handler.BindData()))

		r := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(h, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w)["detail"], "JSON parse error")
	})

	t.Run("decorators run outermost first", func(t *testing.T) {
		t.Parallel()
		var order []string
		trace := func(name string) handler.Decorator[handler.Context, noRequest] {
			return func(next handler.HandlerFunc[handler.Context, noRequest]) handler.HandlerFunc[handler.Context, noRequest] {
				return func(ctx handler.Context, req noRequest) handler.Response {
					order = append(order, name)
					return next(ctx, req)
				}
			}
		}
		h := wrap(func(handler.Context, noRequest) handler.Response {
			order = append(order, "handler")
			return handler.Empty()
		}, handler.WithDecorators(trace("first"), trace("second")))

		serve(h, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, []string{"first", "second", "handler"}, order)
	})

	t.Run("custom context", func(t *testing.T) {
		t.Parallel()
		h := handler.Wrap(handler.HandlerFunc[tenantContext, noRequest](func(ctx tenantContext, _ noRequest) handler.Response {
			return handler.JSON(map[string]string{"tenant": ctx.tenant})
		}), handler.WithContextFactory[tenantContext, noRequest](func(w http.ResponseWriter, r *http.Request) tenantContext {
			return tenantContext{Context: handler.NewContext(w, r), tenant: r.Header.Get("X-Tenant")}
		}))

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("X-Tenant", "acme")
		assert.JSONEq(t, `{"tenant":"acme"}`, serve(h, r).Body.String())
	})

	t.Run("logs payload at debug", func(t *testing.T) {
		t.Parallel()
		buf := &bytes.Buffer{}
		log := slog.New(slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
		h := wrap(func(handler.Context, noRequest) handler.Response {
			return handler.JSON(map[string]int{"count": 1})
		}, handler.WithLogger[handler.Context, noRequest](log))

		serve(h, httptest.NewRequest(http.MethodGet, "/articles", nil))
		var entry map[string]any
		require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
		assert.Equal(t, "DEBUG", entry["level"])
		assert.Equal(t, `{"count":1}`, entry["body"])
		assert.Equal(t, "/articles", entry["path"])
	})
}

type tenantContext struct {
	handler.Context
	tenant string
}

func TestClassifyError(t *testing.T) {
	t.Parallel()

	info := handler.ClassifyError(validator.NewError("invalid", "bad"))
	assert.Equal(t, http.StatusBadRequest, info.StatusCode)
	assert.Equal(t, []string{"bad"}, info.Body)
	assert.Equal(t, slog.LevelWarn, info.LogLevel)

	info = handler.ClassifyError(core.ErrMethodNotAllowed)
	assert.Equal(t, http.StatusMethodNotAllowed, info.StatusCode)

	info = handler.ClassifyError(errors.New("boom"))
	assert.Equal(t, http.StatusInternalServerError, info.StatusCode)
	assert.Equal(t, slog.LevelError, info.LogLevel)

	info = handler.ClassifyError(context.Canceled)
	assert.Equal(t, slog.LevelInfo, info.LogLevel)
}

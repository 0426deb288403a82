package handler_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/handler"
	"github.com/dmitrymomot/restkit/pkg/config"
	"github.com/dmitrymomot/restkit/pkg/pagination"
	"github.com/dmitrymomot/restkit/pkg/serializer"
)

func articleSchema() *serializer.Schema {
	return serializer.NewSchema("ArticleSerializer",
		serializer.Declare("id", serializer.Integer(serializer.ReadOnly())),
		serializer.Declare("title", serializer.Char(serializer.MaxLength(20))),
		serializer.Declare("author", serializer.Char(serializer.Optional())),
		serializer.WithCreate(func(ctx context.Context, s *serializer.ObjectSerializer, validated *orderedmap.OrderedMap[string, any]) (any, error) {
			if _, ok := s.Context()["request"].(*handler.Request); !ok {
				return nil, fmt.Errorf("request missing from serializer context")
			}
			out := map[string]any{"id": 100}
			for pair := validated.Oldest(); pair != nil; pair = pair.Next() {
				out[pair.Key] = pair.Value
			}
			return out, nil
		}),
	)
}

func articles(n int) pagination.Sequence[any] {
	out := make([]any, n)
	for i := range out {
		out[i] = map[string]any{"id": i + 1, "title": fmt.Sprintf("article %d", i+1), "author": "ada"}
	}
	return pagination.FromSlice(out)
}

func listHandler(strategy func() pagination.Strategy) http.HandlerFunc {
	schema := articleSchema()
	return wrap(func(ctx handler.Context, _ noRequest) handler.Response {
		var s pagination.Strategy
		if strategy != nil {
			s = strategy()
		}
		return handler.List(ctx, schema, articles(25), s)
	})
}

func pageNumber() pagination.Strategy {
	return pagination.NewPageNumberPagination(config.Defaults())
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("paginated envelope", func(t *testing.T) {
		t.Parallel()
		w := serve(listHandler(pageNumber), httptest.NewRequest(http.MethodGet, "/articles?page=3", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), `{"count":25,"has_next":false,"has_previous":true,"results":[{"id":21,"title":"article 21","author":"ada"}`), w.Body.String())

		body := decodeBody(t, w)
		assert.Len(t, body["results"], 5)
	})

	t.Run("last page", func(t *testing.T) {
		t.Parallel()
		w := serve(listHandler(pageNumber), httptest.NewRequest(http.MethodGet, "/articles?page=last", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, false, decodeBody(t, w)["has_next"])
	})

	t.Run("invalid page", func(t *testing.T) {
		t.Parallel()
		w := serve(listHandler(pageNumber), httptest.NewRequest(http.MethodGet, "/articles?page=9", nil))
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, map[string]any{"detail": `Invalid page "9": That page contains no results.`}, decodeBody(t, w))
	})

	t.Run("pagination disabled", func(t *testing.T) {
		t.Parallel()
		unpaged := func() pagination.Strategy {
			p := pagination.NewPageNumberPagination(config.Defaults())
			p.PageSize = 0
			return p
		}
		w := serve(listHandler(unpaged), httptest.NewRequest(http.MethodGet, "/articles", nil))
		require.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Body.String(), `[{"id":1,"title":"article 1","author":"ada"}`))
	})
}

func TestListDefaultStrategy(t *testing.T) {
	s := config.Defaults()
	s.PageSize = 4
	require.NoError(t, config.Reload(s))
	t.Cleanup(config.ResetCache)

	w := serve(listHandler(nil), httptest.NewRequest(http.MethodGet, "/articles", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, float64(25), body["count"])
	assert.Len(t, body["results"], 4)
}

func TestRetrieve(t *testing.T) {
	t.Parallel()
	schema := articleSchema()
	h := wrap(func(ctx handler.Context, _ noRequest) handler.Response {
		return handler.Retrieve(ctx, schema, map[string]any{"id": 7, "title": "Hello", "author": ""})
	})

	w := serve(h, httptest.NewRequest(http.MethodGet, "/articles/7", nil))
	assert.Equal(t, `{"id":7,"title":"Hello","author":""}`, strings.TrimSpace(w.Body.String()))
}

func TestCreate(t *testing.T) {
	t.Parallel()
	schema := articleSchema()
	h := wrap(func(ctx handler.Context, _ noRequest) handler.Response {
		return handler.Create(ctx, schema, map[string]any{"author": "system"})
	})

	t.Run("created", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(`{"id":5,"title":"Hello"}`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(h, r)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, `{"id":100,"title":"Hello","author":"system"}`, strings.TrimSpace(w.Body.String()))
	})

	t.Run("form data", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader("title=Form"))
		r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := serve(h, r)
		require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
		assert.Equal(t, "Form", decodeBody(t, w)["title"])
	})

	t.Run("invalid", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPost, "/articles", strings.NewReader(`{}`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(h, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, map[string]any{"title": []any{"this field is required"}}, decodeBody(t, w))
	})
}

func TestUpdate(t *testing.T) {
	t.Parallel()
	schema := articleSchema()
	h := func(partial bool) http.HandlerFunc {
		return wrap(func(ctx handler.Context, _ noRequest) handler.Response {
			instance := map[string]any{"id": 3, "title": "Old", "author": "ada"}
			return handler.Update(ctx, schema, instance, partial)
		})
	}

	t.Run("partial", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPatch, "/articles/3", strings.NewReader(`{"author":"grace"}`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(h(true), r)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, `{"id":3,"title":"Old","author":"grace"}`, strings.TrimSpace(w.Body.String()))
	})

	t.Run("full update requires every field", func(t *testing.T) {
		t.Parallel()
		r := httptest.NewRequest(http.MethodPut, "/articles/3", strings.NewReader(`{"author":"grace"}`))
		r.Header.Set("Content-Type", "application/json")
		w := serve(h(false), r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decodeBody(t, w), "title")
	})
}

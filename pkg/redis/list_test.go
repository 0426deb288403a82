package redis_test

import (
	"context"
	"sync"
	"testing"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restkit/pkg/pagination"
	"github.com/dmitrymomot/restkit/pkg/redis"
)

func setupRedis(t *testing.T) (*miniredis.Miniredis, *goredis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestList(t *testing.T) {
	t.Parallel()

	t.Run("counts and slices", func(t *testing.T) {
		t.Parallel()
		mr, client := setupRedis(t)
		_, err := mr.RPush("tags", "a", "b", "c", "d", "e")
		require.NoError(t, err)

		list := redis.NewStringList(client, "tags")
		n, err := list.Count(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, n)

		items, err := list.Slice(context.Background(), 1, 3)
		require.NoError(t, err)
		assert.Equal(t, []string{"b", "c"}, items)

		items, err = list.Slice(context.Background(), 3, 3)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("missing key is empty", func(t *testing.T) {
		t.Parallel()
		_, client := setupRedis(t)
		list := redis.NewStringList(client, "nothing")
		n, err := list.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("append and decode json", func(t *testing.T) {
		t.Parallel()
		_, client := setupRedis(t)
		list := redis.NewJSONList(client, "articles")
		require.NoError(t, list.Append(context.Background(),
			map[string]any{"id": 1, "title": "one"},
			map[string]any{"id": 2, "title": "two"},
		))

		items, err := list.Slice(context.Background(), 0, 10)
		require.NoError(t, err)
		require.Len(t, items, 2)
		assert.Equal(t, map[string]any{"id": float64(2), "title": "two"}, items[1])
	})

	t.Run("set replaces an element", func(t *testing.T) {
		t.Parallel()
		_, client := setupRedis(t)
		list := redis.NewJSONList(client, "articles")
		ctx := context.Background()
		require.NoError(t, list.Append(ctx, map[string]any{"id": 1, "title": "old"}))
		require.NoError(t, list.Set(ctx, 0, map[string]any{"id": 1, "title": "new"}))

		items, err := list.Slice(ctx, 0, 1)
		require.NoError(t, err)
		assert.Equal(t, []any{map[string]any{"id": float64(1), "title": "new"}}, items)

		assert.Error(t, list.Set(ctx, 5, "x"), "index out of range")
	})

	t.Run("append numbered assigns positions", func(t *testing.T) {
		t.Parallel()
		_, client := setupRedis(t)
		list := redis.NewJSONList(client, "articles")
		ctx := context.Background()

		n, err := list.AppendNumbered(ctx, "id", map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, 1, n)
		n, err = list.AppendNumbered(ctx, "id", map[string]any{"id": 99, "title": "two"})
		require.NoError(t, err)
		assert.Equal(t, 2, n)

		items, err := list.Slice(ctx, 0, 2)
		require.NoError(t, err)
		assert.Equal(t, []any{
			map[string]any{"id": float64(1)},
			map[string]any{"id": float64(2), "title": "two"},
		}, items)
	})

	t.Run("concurrent append numbered", func(t *testing.T) {
		t.Parallel()
		_, client := setupRedis(t)
		list := redis.NewJSONList(client, "articles")
		ctx := context.Background()

		const writers = 20
		ids := make([]int, writers)
		var wg sync.WaitGroup
		for i := range writers {
			wg.Add(1)
			go func() {
				defer wg.Done()
				n, err := list.AppendNumbered(ctx, "id", map[string]any{"writer": i})
				assert.NoError(t, err)
				ids[i] = n
			}()
		}
		wg.Wait()

		assert.ElementsMatch(t, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20}, ids)
		items, err := list.Slice(ctx, 0, writers)
		require.NoError(t, err)
		for pos, item := range items {
			assert.Equal(t, float64(pos+1), item.(map[string]any)["id"])
		}
	})

	t.Run("decode failure", func(t *testing.T) {
		t.Parallel()
		mr, client := setupRedis(t)
		_, err := mr.RPush("broken", "{not json")
		require.NoError(t, err)

		_, err = redis.NewJSONList(client, "broken").Slice(context.Background(), 0, 1)
		assert.ErrorIs(t, err, redis.ErrDecodeItem)
	})

	t.Run("paginates with orphans", func(t *testing.T) {
		t.Parallel()
		mr, client := setupRedis(t)
		for i := range 23 {
			_, err := mr.RPush("ids", string(rune('a'+i)))
			require.NoError(t, err)
		}

		p, err := pagination.NewPaginator[string](redis.NewStringList(client, "ids"), 10, pagination.Orphans(5))
		require.NoError(t, err)

		pages, err := p.NumPages(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 2, pages)

		page, err := p.Page(context.Background(), 2)
		require.NoError(t, err)
		assert.Len(t, page.Items, 13)
		assert.Equal(t, "w", page.Items[12])
	})
}

func TestHealthcheck(t *testing.T) {
	t.Parallel()

	mr, client := setupRedis(t)
	check := redis.Healthcheck(client)
	require.NoError(t, check(context.Background()))

	mr.Close()
	assert.ErrorIs(t, check(context.Background()), redis.ErrHealthcheckFailed)
}

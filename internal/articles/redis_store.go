package articles

import (
	"context"
	"maps"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/pkg/pagination"
	"github.com/dmitrymomot/restkit/pkg/redis"
)

// RedisStore keeps articles as JSON elements of one Redis list; an
// article's id is its 1-based list position.
type RedisStore struct {
	list *redis.List[any]
}

func NewRedisStore(client goredis.Cmdable, key string) *RedisStore {
	return &RedisStore{list: redis.NewJSONList(client, key)}
}

func (s *RedisStore) All() pagination.Sequence[any] { return s.list }

func (s *RedisStore) Get(ctx context.Context, id int) (Article, error) {
	if id < 1 {
		return nil, core.ErrNotFound
	}
	items, err := s.list.Slice(ctx, id-1, id)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, core.ErrNotFound
	}
	a, _ := items[0].(map[string]any)
	return a, nil
}

func (s *RedisStore) Add(ctx context.Context, fields Article) (Article, error) {
	a := maps.Clone(fields)
	a["created_at"] = time.Now().UTC().Format(time.RFC3339Nano)
	id, err := s.list.AppendNumbered(ctx, "id", a)
	if err != nil {
		return nil, err
	}
	a["id"] = id
	return a, nil
}

func (s *RedisStore) Put(ctx context.Context, a Article) error {
	id, err := articleID(a)
	if err != nil {
		return err
	}
	return s.list.Set(ctx, id-1, a)
}

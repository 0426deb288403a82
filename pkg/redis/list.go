package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"

	"github.com/redis/go-redis/v9"
)

// DecodeFunc turns a raw list element into an item.
type DecodeFunc[T any] func(raw string) (T, error)

// List exposes a Redis list as a pageable collection. It counts with LLEN
// and reads slices with LRANGE, so only the requested page leaves the server.
type List[T any] struct {
	client redis.Cmdable
	key    string
	decode DecodeFunc[T]
}

// NewList wraps the list stored at key.
func NewList[T any](client redis.Cmdable, key string, decode DecodeFunc[T]) *List[T] {
	return &List[T]{client: client, key: key, decode: decode}
}

// NewStringList wraps a list of plain strings.
func NewStringList(client redis.Cmdable, key string) *List[string] {
	return NewList(client, key, func(raw string) (string, error) { return raw, nil })
}

// NewJSONList wraps a list of JSON objects, decoding each into a map.
func NewJSONList(client redis.Cmdable, key string) *List[any] {
	return NewList(client, key, func(raw string) (any, error) {
		var item map[string]any
		if err := json.Unmarshal([]byte(raw), &item); err != nil {
			return nil, err
		}
		return item, nil
	})
}

func (l *List[T]) Key() string { return l.key }

// Count returns the list length. A missing key counts as empty.
func (l *List[T]) Count(ctx context.Context) (int, error) {
	n, err := l.client.LLen(ctx, l.key).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return 0, fmt.Errorf("llen %s: %w", l.key, err)
	}
	return int(n), nil
}

// Slice returns elements [bottom, top).
func (l *List[T]) Slice(ctx context.Context, bottom, top int) ([]T, error) {
	if top <= bottom {
		return []T{}, nil
	}
	raw, err := l.client.LRange(ctx, l.key, int64(bottom), int64(top-1)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("lrange %s: %w", l.key, err)
	}

	items := make([]T, 0, len(raw))
	for i, r := range raw {
		item, err := l.decode(r)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d]: %w", ErrDecodeItem, l.key, bottom+i, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// Append pushes items to the tail of the list, encoding each as JSON unless
// it is already a string.
func (l *List[T]) Append(ctx context.Context, items ...any) error {
	values := make([]any, 0, len(items))
	for _, item := range items {
		v, err := encode(item)
		if err != nil {
			return err
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil
	}
	return l.client.RPush(ctx, l.key, values...).Err()
}

// appendNumbered pushes the JSON object in ARGV[1] with the JSON-encoded
// key ARGV[2] prepended and set to the object's 1-based list position.
var appendNumbered = redis.NewScript(`
local n = redis.call("LLEN", KEYS[1]) + 1
local body = ARGV[1]
local sep = ","
if body == "{}" then
	sep = ""
end
redis.call("RPUSH", KEYS[1], "{" .. ARGV[2] .. ":" .. n .. sep .. string.sub(body, 2))
return n
`)

// AppendNumbered pushes item with field set to its 1-based position in the
// list and returns that position. Counting and pushing run as one script on
// the server, so concurrent writers never share a position.
func (l *List[T]) AppendNumbered(ctx context.Context, field string, item map[string]any) (int, error) {
	body := maps.Clone(item)
	delete(body, field)
	raw, err := json.Marshal(body)
	if err != nil {
		return 0, err
	}
	name, err := json.Marshal(field)
	if err != nil {
		return 0, err
	}

	n, err := appendNumbered.Run(ctx, l.client, []string{l.key}, string(raw), string(name)).Int()
	if err != nil {
		return 0, fmt.Errorf("append %s: %w", l.key, err)
	}
	return n, nil
}

// Set replaces the element at index, encoded like Append.
func (l *List[T]) Set(ctx context.Context, index int, item any) error {
	v, err := encode(item)
	if err != nil {
		return err
	}
	if err := l.client.LSet(ctx, l.key, int64(index), v).Err(); err != nil {
		return fmt.Errorf("lset %s[%d]: %w", l.key, index, err)
	}
	return nil
}

func encode(item any) (string, error) {
	if s, ok := item.(string); ok {
		return s, nil
	}
	b, err := json.Marshal(item)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

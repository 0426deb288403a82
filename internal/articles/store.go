package articles

import (
	"context"
	"maps"
	"sync"
	"time"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/pkg/pagination"
)

// Article is stored as a column-name map so every backend renders through
// the same schema.
type Article = map[string]any

// Store persists articles. Ids are assigned on Add and start at 1.
type Store interface {
	// All returns every article in id order as a pageable sequence.
	All() pagination.Sequence[any]
	// Get returns core.ErrNotFound for unknown ids.
	Get(ctx context.Context, id int) (Article, error)
	Add(ctx context.Context, fields Article) (Article, error)
	Put(ctx context.Context, a Article) error
}

// MemoryStore keeps articles in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	items []Article
	now   func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{now: time.Now}
}

func (s *MemoryStore) All() pagination.Sequence[any] {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]any, len(s.items))
	for i, a := range s.items {
		out[i] = maps.Clone(a)
	}
	return pagination.FromSlice(out)
}

func (s *MemoryStore) Get(_ context.Context, id int) (Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if id < 1 || id > len(s.items) {
		return nil, core.ErrNotFound
	}
	return maps.Clone(s.items[id-1]), nil
}

func (s *MemoryStore) Add(_ context.Context, fields Article) (Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a := maps.Clone(fields)
	a["id"] = len(s.items) + 1
	a["created_at"] = s.now().UTC()
	s.items = append(s.items, a)
	return maps.Clone(a), nil
}

func (s *MemoryStore) Put(_ context.Context, a Article) error {
	id, err := articleID(a)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if id < 1 || id > len(s.items) {
		return core.ErrNotFound
	}
	s.items[id-1] = maps.Clone(a)
	return nil
}

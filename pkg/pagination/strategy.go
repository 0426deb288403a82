package pagination

import (
	"context"
	"fmt"
	"sort"
	"sync"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/pkg/config"
)

// QueryParams is the read side of request query parameters. url.Values
// satisfies it.
type QueryParams interface {
	Get(key string) string
	Has(key string) bool
}

// Strategy adapts pagination to one request: it picks the page from the
// query parameters and wraps the rendered results in a response envelope.
// A Strategy keeps the current page, so create one per request.
type Strategy interface {
	// Paginate returns the items of the requested page, or nil when
	// pagination is disabled for the request.
	Paginate(ctx context.Context, objects Sequence[any], params QueryParams) ([]any, error)
	// PaginatedResponse wraps rendered page items in the response envelope.
	PaginatedResponse(data any) (*orderedmap.OrderedMap[string, any], error)
}

// Factory builds a strategy from settings.
type Factory func(s *config.Settings) Strategy

// PageNumberPaginationName is the registry name of PageNumberPagination.
const PageNumberPaginationName = "pagination.PageNumberPagination"

var registry = struct {
	sync.RWMutex
	factories map[string]Factory
}{factories: map[string]Factory{
	PageNumberPaginationName: func(s *config.Settings) Strategy { return NewPageNumberPagination(s) },
}}

// Register makes a strategy available under name, replacing any previous one.
func Register(name string, factory Factory) {
	registry.Lock()
	defer registry.Unlock()
	registry.factories[name] = factory
}

// Registered returns the registered strategy names in sorted order.
func Registered() []string {
	registry.RLock()
	defer registry.RUnlock()
	names := make([]string, 0, len(registry.factories))
	for name := range registry.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// New builds the strategy registered under name.
func New(name string, s *config.Settings) (Strategy, error) {
	registry.RLock()
	factory, ok := registry.factories[name]
	registry.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
	}
	return factory(s), nil
}

// Default builds the strategy selected by the current settings.
func Default() (Strategy, error) {
	s := config.Current()
	return New(s.DefaultPaginationClass, s)
}

package pagination

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/core"
	"github.com/dmitrymomot/restkit/pkg/config"
)

// PageNumberPagination selects pages by number, e.g. ?page=4 or, when
// PageSizeQueryParam is set, ?page=4&page_size=100.
type PageNumberPagination struct {
	// PageSize is the default page size. Zero disables pagination.
	PageSize       int
	PageQueryParam string
	// PageSizeQueryParam lets clients choose the page size. Empty disables it.
	PageSizeQueryParam string
	// MaxPageSize caps a client-chosen page size. Zero means no cap.
	MaxPageSize int
	// LastPageStrings are page values that select the last page.
	LastPageStrings []string
	// Orphans is passed to every paginator.
	Orphans int

	page *Page[any]
}

// NewPageNumberPagination configures the strategy from settings.
func NewPageNumberPagination(s *config.Settings) *PageNumberPagination {
	return &PageNumberPagination{
		PageSize:           s.PageSize,
		PageQueryParam:     s.PageQueryParam,
		PageSizeQueryParam: s.PageSizeQueryParam,
		MaxPageSize:        s.MaxPageSize,
		LastPageStrings:    slices.Clone(s.LastPageStrings),
	}
}

// Page returns the page selected by the last Paginate call.
func (p *PageNumberPagination) Page() *Page[any] { return p.page }

// Paginate returns the requested page's items, never nil once a page was
// selected. An invalid page number is reported as a core.ErrNotFound API
// error.
func (p *PageNumberPagination) Paginate(ctx context.Context, objects Sequence[any], params QueryParams) ([]any, error) {
	size := p.pageSize(params)
	if size <= 0 {
		return nil, nil
	}

	paginator, err := NewPaginator(objects, size, Orphans(p.Orphans))
	if err != nil {
		return nil, err
	}

	var number any = 1
	if params.Has(p.PageQueryParam) {
		number = params.Get(p.PageQueryParam)
	}
	if s, ok := number.(string); ok && slices.Contains(p.LastPageStrings, s) {
		if number, err = paginator.NumPages(ctx); err != nil {
			return nil, err
		}
	}

	page, err := paginator.Page(ctx, number)
	if err != nil {
		if errors.Is(err, ErrInvalidPage) {
			return nil, core.NotFound(fmt.Sprintf("Invalid page %q: %s.", fmt.Sprint(number), err))
		}
		return nil, err
	}

	p.page = page
	if page.Items == nil {
		return []any{}, nil
	}
	return page.Items, nil
}

// PaginatedResponse returns {count, has_next, has_previous, results}.
func (p *PageNumberPagination) PaginatedResponse(data any) (*orderedmap.OrderedMap[string, any], error) {
	if p.page == nil {
		return nil, ErrNotPaginated
	}
	out := orderedmap.New[string, any]()
	out.Set("count", p.page.paginator.count)
	out.Set("has_next", p.page.HasNext())
	out.Set("has_previous", p.page.HasPrevious())
	out.Set("results", data)
	return out, nil
}

// pageSize prefers a strictly positive client value, capped at MaxPageSize.
// Invalid client values fall back to the default silently.
func (p *PageNumberPagination) pageSize(params QueryParams) int {
	if p.PageSizeQueryParam != "" && params.Has(p.PageSizeQueryParam) {
		if n, err := strconv.Atoi(params.Get(p.PageSizeQueryParam)); err == nil && n > 0 {
			if p.MaxPageSize > 0 {
				n = min(n, p.MaxPageSize)
			}
			return n
		}
	}
	return p.PageSize
}

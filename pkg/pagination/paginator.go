package pagination

import (
	"context"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Option configures a Paginator.
type Option func(*options)

type options struct {
	orphans             int
	allowEmptyFirstPage bool
}

// Orphans merges a trailing page of at most n items into the page before it.
func Orphans(n int) Option {
	return func(o *options) { o.orphans = n }
}

// AllowEmptyFirstPage controls whether page 1 of an empty sequence is valid.
// It is allowed by default.
func AllowEmptyFirstPage(allow bool) Option {
	return func(o *options) { o.allowEmptyFirstPage = allow }
}

// Paginator splits a sequence into pages. The item count and page count are
// computed once and memoized, so a Paginator belongs to a single request.
type Paginator[T any] struct {
	objects             Sequence[T]
	perPage             int
	orphans             int
	allowEmptyFirstPage bool

	count       int
	counted     bool
	numPages    int
	hasNumPages bool
}

// NewPaginator creates a paginator serving perPage items per page.
func NewPaginator[T any](objects Sequence[T], perPage int, opts ...Option) (*Paginator[T], error) {
	o := options{allowEmptyFirstPage: true}
	for _, opt := range opts {
		opt(&o)
	}
	if perPage <= 0 {
		return nil, ErrInvalidPerPage
	}
	if o.orphans < 0 {
		return nil, ErrInvalidOrphans
	}
	return &Paginator[T]{
		objects:             objects,
		perPage:             perPage,
		orphans:             o.orphans,
		allowEmptyFirstPage: o.allowEmptyFirstPage,
	}, nil
}

func (p *Paginator[T]) PerPage() int              { return p.perPage }
func (p *Paginator[T]) Orphans() int              { return p.orphans }
func (p *Paginator[T]) AllowEmptyFirstPage() bool { return p.allowEmptyFirstPage }

// Count returns the total number of items, preferring the sequence's Count
// method over Len.
func (p *Paginator[T]) Count(ctx context.Context) (int, error) {
	if p.counted {
		return p.count, nil
	}
	n, err := count(ctx, p.objects)
	if err != nil {
		return 0, err
	}
	p.count, p.counted = n, true
	return n, nil
}

// NumPages returns the number of pages. Orphans never form their own page.
func (p *Paginator[T]) NumPages(ctx context.Context) (int, error) {
	if p.hasNumPages {
		return p.numPages, nil
	}
	n, err := p.Count(ctx)
	if err != nil {
		return 0, err
	}
	if n == 0 && !p.allowEmptyFirstPage {
		p.numPages = 0
	} else {
		hits := max(1, n-p.orphans)
		p.numPages = (hits + p.perPage - 1) / p.perPage
	}
	p.hasNumPages = true
	return p.numPages, nil
}

// PageRange returns the 1-based page numbers.
func (p *Paginator[T]) PageRange(ctx context.Context) ([]int, error) {
	n, err := p.NumPages(ctx)
	if err != nil {
		return nil, err
	}
	pages := make([]int, n)
	for i := range pages {
		pages[i] = i + 1
	}
	return pages, nil
}

// ValidateNumber converts number to an int and checks it is in range. Page
// 1 of an empty sequence is valid when empty first pages are allowed.
func (p *Paginator[T]) ValidateNumber(ctx context.Context, number any) (int, error) {
	n, err := toPageNumber(number)
	if err != nil {
		return 0, notAnInteger()
	}
	if _, err := p.NumPages(ctx); err != nil {
		return 0, err
	}
	return n, p.checkRange(n)
}

func (p *Paginator[T]) checkRange(n int) error {
	if n < 1 {
		return lessThanOne()
	}
	if n > p.numPages && (n != 1 || !p.allowEmptyFirstPage) {
		return noResults()
	}
	return nil
}

// Page returns the 1-based page number. The last page absorbs up to
// orphans trailing items.
func (p *Paginator[T]) Page(ctx context.Context, number any) (*Page[T], error) {
	if _, err := p.Count(ctx); err != nil {
		return nil, err
	}
	n, err := p.ValidateNumber(ctx, number)
	if err != nil {
		return nil, err
	}

	bottom := (n - 1) * p.perPage
	top := bottom + p.perPage
	if top+p.orphans >= p.count {
		top = p.count
	}

	items, err := p.objects.Slice(ctx, bottom, top)
	if err != nil {
		return nil, err
	}
	return &Page[T]{Items: items, Number: n, paginator: p}, nil
}

func toPageNumber(number any) (int, error) {
	switch v := number.(type) {
	case string:
		return strconv.Atoi(strings.TrimSpace(v))
	case bool, nil:
		return 0, strconv.ErrSyntax
	}
	return cast.ToIntE(number)
}

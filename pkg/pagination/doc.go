// Package pagination splits sequences into numbered pages and adapts that to
// HTTP requests.
//
// A Paginator works over any Sequence: an in-memory Slice, a Redis list or a
// SQL query. Sequences that implement Counter are counted lazily, others
// must implement Lengther.
//
//	p, err := pagination.NewPaginator(pagination.FromSlice(articles), 10, pagination.Orphans(3))
//	page, err := p.Page(ctx, r.URL.Query().Get("page"))
//	if errors.Is(err, pagination.ErrEmptyPage) {
//	    // out of range
//	}
//
// Page numbers may be ints or numeric strings. Invalid numbers produce a
// *PageError that matches ErrInvalidPage and either ErrPageNotAnInteger or
// ErrEmptyPage.
//
// # Strategies
//
// A Strategy reads the page from query parameters and builds the response
// envelope. PageNumberPagination is registered under
// PageNumberPaginationName and configured from config.Settings:
//
//	s, err := pagination.Default()
//	items, err := s.Paginate(ctx, pagination.AsAny(seq), r.URL.Query())
//	// render items...
//	body, err := s.PaginatedResponse(rendered)
//	// {"count": 25, "has_next": true, "has_previous": false, "results": [...]}
//
// Out-of-range or malformed page numbers become core.ErrNotFound API errors
// with a detail such as `Invalid page "9": That page contains no results.`
package pagination

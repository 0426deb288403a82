package pagination

import "fmt"

// Page is one slice of a paginated sequence.
type Page[T any] struct {
	Items     []T
	Number    int
	paginator *Paginator[T]
}

func (p *Page[T]) Paginator() *Paginator[T] { return p.paginator }
func (p *Page[T]) Len() int                 { return len(p.Items) }

func (p *Page[T]) String() string {
	return fmt.Sprintf("<Page %d of %d>", p.Number, p.paginator.numPages)
}

func (p *Page[T]) HasNext() bool       { return p.Number < p.paginator.numPages }
func (p *Page[T]) HasPrevious() bool   { return p.Number > 1 }
func (p *Page[T]) HasOtherPages() bool { return p.HasPrevious() || p.HasNext() }

// NextPageNumber returns the following page number, or an error when this
// is the last page.
func (p *Page[T]) NextPageNumber() (int, error) {
	return p.neighbour(p.Number + 1)
}

// PreviousPageNumber returns the preceding page number, or an error on the
// first page.
func (p *Page[T]) PreviousPageNumber() (int, error) {
	return p.neighbour(p.Number - 1)
}

func (p *Page[T]) neighbour(n int) (int, error) {
	if err := p.paginator.checkRange(n); err != nil {
		return 0, err
	}
	return n, nil
}

// StartIndex returns the 1-based position of the first item on the page,
// or 0 when the sequence is empty.
func (p *Page[T]) StartIndex() int {
	if p.paginator.count == 0 {
		return 0
	}
	return p.paginator.perPage*(p.Number-1) + 1
}

// EndIndex returns the 1-based position of the last item on the page. On
// the last page it is the item count, orphans included.
func (p *Page[T]) EndIndex() int {
	if p.Number == p.paginator.numPages {
		return p.paginator.count
	}
	return p.Number * p.paginator.perPage
}

package pagination

import "errors"

var (
	// ErrInvalidPage is matched by every page number error.
	ErrInvalidPage = errors.New("invalid page")

	// ErrPageNotAnInteger is returned when a page number is not an integer.
	ErrPageNotAnInteger = errors.New("page number is not an integer")

	// ErrEmptyPage is returned when a page number is out of range.
	ErrEmptyPage = errors.New("page contains no results")

	// ErrInvalidPerPage is returned when a paginator is built with a non-positive page size.
	ErrInvalidPerPage = errors.New("page size must be greater than zero")

	// ErrInvalidOrphans is returned when a paginator is built with negative orphans.
	ErrInvalidOrphans = errors.New("orphans must not be negative")

	// ErrUncountable is returned when a sequence has neither Count nor Len.
	ErrUncountable = errors.New("sequence cannot be counted")

	// ErrNotPaginated is returned when a paginated response is built before paginating.
	ErrNotPaginated = errors.New("no page has been paginated")

	// ErrUnknownStrategy is returned when a strategy name is not registered.
	ErrUnknownStrategy = errors.New("unknown pagination strategy")
)

// PageError describes why a page number was rejected. It matches both its
// kind (ErrPageNotAnInteger or ErrEmptyPage) and ErrInvalidPage.
type PageError struct {
	kind    error
	message string
}

func (e *PageError) Error() string { return e.message }

func (e *PageError) Unwrap() []error { return []error{e.kind, ErrInvalidPage} }

func notAnInteger() error {
	return &PageError{kind: ErrPageNotAnInteger, message: "That page number is not an integer"}
}

func lessThanOne() error {
	return &PageError{kind: ErrEmptyPage, message: "That page number is less than 1"}
}

func noResults() error {
	return &PageError{kind: ErrEmptyPage, message: "That page contains no results"}
}

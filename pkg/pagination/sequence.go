package pagination

import "context"

// Sequence is a sized collection that can be read one slice at a time.
// Bounds follow Go slicing: bottom inclusive, top exclusive.
type Sequence[T any] interface {
	Slice(ctx context.Context, bottom, top int) ([]T, error)
}

// Counter is implemented by sequences that count their items lazily, such
// as database queries. It takes precedence over Len.
type Counter interface {
	Count(ctx context.Context) (int, error)
}

// Lengther is implemented by in-memory sequences.
type Lengther interface {
	Len() int
}

// Slice adapts an in-memory slice to Sequence.
type Slice[T any] []T

// FromSlice wraps items as a Sequence.
func FromSlice[T any](items []T) Slice[T] {
	return Slice[T](items)
}

func (s Slice[T]) Len() int { return len(s) }

func (s Slice[T]) Slice(_ context.Context, bottom, top int) ([]T, error) {
	bottom = min(max(bottom, 0), len(s))
	top = min(max(top, bottom), len(s))
	return s[bottom:top], nil
}

// AsAny exposes a typed sequence as Sequence[any] for strategies, keeping
// its Count or Len.
func AsAny[T any](seq Sequence[T]) Sequence[any] {
	if s, ok := seq.(Sequence[any]); ok {
		return s
	}
	return anySequence[T]{seq: seq}
}

type anySequence[T any] struct {
	seq Sequence[T]
}

func (a anySequence[T]) Slice(ctx context.Context, bottom, top int) ([]any, error) {
	items, err := a.seq.Slice(ctx, bottom, top)
	if err != nil {
		return nil, err
	}
	out := make([]any, len(items))
	for i, item := range items {
		out[i] = item
	}
	return out, nil
}

func (a anySequence[T]) Count(ctx context.Context) (int, error) {
	return count(ctx, a.seq)
}

func count[T any](ctx context.Context, seq Sequence[T]) (int, error) {
	switch s := any(seq).(type) {
	case Counter:
		return s.Count(ctx)
	case Lengther:
		return s.Len(), nil
	}
	return 0, ErrUncountable
}

// Collect reads the whole sequence.
func Collect[T any](ctx context.Context, seq Sequence[T]) ([]T, error) {
	n, err := count(ctx, seq)
	if err != nil {
		return nil, err
	}
	return seq.Slice(ctx, 0, n)
}

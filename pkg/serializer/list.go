package serializer

import (
	"context"
	"fmt"
	"maps"
	"slices"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

var listMessages = map[string]string{
	CodeNotAList: `expected a list of items but got type "{input_type}"`,
	CodeEmpty:    "this list may not be empty",
}

// ListSerializer validates and renders a list of objects through one shared
// child serializer.
type ListSerializer struct {
	child      *ObjectSerializer
	instance   any
	data       any
	hasData    bool
	allowEmpty bool

	validated []any
	errors    any
	ran       bool

	rendered    any
	hasRendered bool
}

func (s *Schema) newList(o options) *ListSerializer {
	return &ListSerializer{
		child:      s.newObject(options{partial: o.partial, context: o.context}),
		instance:   o.instance,
		data:       o.data,
		hasData:    o.hasData,
		allowEmpty: o.allowEmpty,
	}
}

// Child returns the serializer every item is validated and rendered with.
func (l *ListSerializer) Child() *ObjectSerializer { return l.child }

// ValidatedData returns the validated items, or nil before successful validation.
func (l *ListSerializer) ValidatedData() []any { return l.validated }

// Errors returns the last validation detail: a per-item list when items
// failed, or a message list when the input itself was rejected.
func (l *ListSerializer) Errors() any { return l.errors }

func (l *ListSerializer) hasErrors() bool { return l.errors != nil }

func (l *ListSerializer) IsValid(ctx context.Context) bool {
	return l.Validate(ctx) == nil
}

func (l *ListSerializer) Validate(ctx context.Context) error {
	if !l.hasData {
		return ErrNoData
	}

	// ran is only set once validation reaches a verdict, so an aborted run
	// is retried on the next call.
	if !l.ran {
		l.hasRendered = false
		validated, err := l.RunValidation(ctx, l.data)
		if err != nil {
			verr := validator.ExtractValidationError(err)
			if verr == nil {
				return err
			}
			l.errors = verr.Detail
		} else {
			l.validated, _ = validated.([]any)
		}
		l.ran = true
	}

	if l.hasErrors() {
		return &validator.ValidationError{Code: validator.CodeInvalid, Detail: l.errors}
	}
	return nil
}

// RunValidation validates each item with the child. When any item fails,
// the error detail holds one entry per item, with an empty mapping for
// items that passed.
func (l *ListSerializer) RunValidation(ctx context.Context, data any) (any, error) {
	items, ok := toSlice(data)
	if !ok || data == nil {
		return nil, l.fail(CodeNotAList, map[string]any{"input_type": fmt.Sprintf("%T", data)})
	}
	if len(items) == 0 && !l.allowEmpty {
		return nil, l.fail(CodeEmpty, nil)
	}

	ret := make([]any, 0, len(items))
	errs := make([]any, 0, len(items))
	failed := false
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, err := l.child.RunValidation(ctx, item)
		if err != nil {
			verr := validator.ExtractValidationError(err)
			if verr == nil {
				return nil, err
			}
			errs = append(errs, verr.Detail)
			failed = true
			continue
		}
		ret = append(ret, value)
		errs = append(errs, validator.NewDetail())
	}

	if failed {
		return nil, validator.NewItemErrors(errs)
	}
	return ret, nil
}

func (l *ListSerializer) fail(code string, params map[string]any) *validator.ValidationError {
	return validator.NewError(code, validator.Format(listMessages[code], params))
}

// ToRepresentation renders each item with the child. A nil instance renders
// as an empty list.
func (l *ListSerializer) ToRepresentation(ctx context.Context, instance any) (any, error) {
	if instance == nil {
		return []any{}, nil
	}
	items, ok := toSlice(instance)
	if !ok {
		return nil, fmt.Errorf("%w: %T is not a list", ErrRepresentation, instance)
	}

	ret := make([]any, 0, len(items))
	for i, item := range items {
		value, err := l.child.ToRepresentation(ctx, item)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		ret = append(ret, value)
	}
	return ret, nil
}

func (l *ListSerializer) Data(ctx context.Context) (any, error) {
	if l.hasData && !l.ran {
		return nil, ErrNotValidated
	}
	if l.hasRendered {
		return l.rendered, nil
	}

	var (
		data any
		err  error
	)
	switch {
	case l.instance != nil && !l.hasErrors():
		data, err = l.ToRepresentation(ctx, l.instance)
	case len(l.validated) > 0 && !l.hasErrors():
		data, err = l.ToRepresentation(ctx, l.validated)
	default:
		data = l.data
	}
	if err != nil {
		return nil, err
	}

	l.rendered, l.hasRendered = data, true
	return data, nil
}

// Save creates one object per validated item, merging extra into each.
// Updating an existing list is not supported.
func (l *ListSerializer) Save(ctx context.Context, extra map[string]any) (any, error) {
	if l.hasErrors() {
		return nil, ErrSaveWithErrors
	}
	if l.instance != nil {
		return nil, ErrListUpdate
	}

	keys := slices.Sorted(maps.Keys(extra))
	created := make([]any, 0, len(l.validated))
	for i, item := range l.validated {
		attrs, ok := item.(*orderedmap.OrderedMap[string, any])
		if !ok {
			return nil, fmt.Errorf("item %d: unexpected validated type %T", i, item)
		}
		for _, k := range keys {
			attrs.Set(k, extra[k])
		}

		instance, err := l.child.schema.create(ctx, l.child, attrs)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if validator.IsEmpty(instance) {
			return nil, fmt.Errorf("%w: create()", ErrNilInstance)
		}
		created = append(created, instance)
	}

	l.instance = created
	l.hasRendered = false
	return created, nil
}

package serializer

import (
	"context"
	"fmt"
	"reflect"

	"github.com/microcosm-cc/bluemonday"
	"github.com/spf13/cast"
)

var strictPolicy = bluemonday.StrictPolicy()

type charKind struct {
	stripTags bool
}

// Char accepts strings. Scalars such as numbers and booleans are converted
// to their string form; collections are rejected.
func Char(opts ...FieldOption) *Field {
	return newField(&charKind{}, nil, opts)
}

// StripTags removes all HTML markup from char input.
func StripTags() FieldOption {
	return func(f *Field) {
		if k, ok := f.kind.(*charKind); ok {
			k.stripTags = true
		}
	}
}

func (k *charKind) ToInternal(_ context.Context, f *Field, value any) (any, error) {
	switch reflect.Indirect(reflect.ValueOf(value)).Kind() {
	case reflect.Map, reflect.Slice, reflect.Array, reflect.Struct:
		return nil, f.Fail(CodeConversion, map[string]any{"input": value})
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return nil, f.Fail(CodeConversion, map[string]any{"input": value})
	}
	if k.stripTags {
		s = strictPolicy.Sanitize(s)
	}
	return s, nil
}

func (k *charKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	if s, err := cast.ToStringE(value); err == nil {
		return s, nil
	}
	return fmt.Sprint(value), nil
}

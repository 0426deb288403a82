package serializer

import (
	"context"
	"reflect"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

var (
	trueValues  = map[string]struct{}{"t": {}, "T": {}, "true": {}, "True": {}, "TRUE": {}, "1": {}}
	falseValues = map[string]struct{}{"f": {}, "F": {}, "false": {}, "False": {}, "FALSE": {}, "0": {}}
)

type booleanKind struct{}

// Boolean coerces input through explicit true/false sets rather than
// truthiness, so the string "False" parses as false.
func Boolean(opts ...FieldOption) *Field {
	return newField(booleanKind{}, map[string]string{
		CodeInvalid: `"{input}" is not a valid boolean`,
	}, opts)
}

func (booleanKind) ToInternal(_ context.Context, f *Field, value any) (any, error) {
	if b, ok := lookupBool(value); ok {
		return b, nil
	}
	return nil, f.Fail(CodeInvalid, map[string]any{"input": value})
}

func (booleanKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	if b, ok := lookupBool(value); ok {
		return b, nil
	}
	return !validator.IsEmpty(value), nil
}

// lookupBool matches value against the true and false sets. Collections
// and other non-scalar values never match.
func lookupBool(value any) (bool, bool) {
	switch v := value.(type) {
	case bool:
		return v, true
	case string:
		if _, ok := trueValues[v]; ok {
			return true, true
		}
		if _, ok := falseValues[v]; ok {
			return false, true
		}
		return false, false
	}

	var n float64
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n = float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n = float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		n = rv.Float()
	default:
		return false, false
	}
	switch n {
	case 1:
		return true, true
	case 0:
		return false, true
	}
	return false, false
}

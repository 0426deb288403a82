package validator

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

type Numeric interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Validator checks a single rule against an already parsed value.
type Validator interface {
	Validate(value any) error
}

// Func adapts an ordinary function to the Validator interface.
type Func func(value any) error

func (f Func) Validate(value any) error {
	return f(value)
}

// ValidationError carries a structured detail describing what went wrong.
//
// Detail holds one of:
//   - []string: messages for a single value
//   - *orderedmap.OrderedMap[string, any]: field name to nested detail
//   - []any: one detail per list item, in input order
type ValidationError struct {
	Code   string
	Detail any

	cause error
}

// NewError builds a leaf error with a single message.
func NewError(code, message string) *ValidationError {
	return &ValidationError{Code: code, Detail: []string{message}}
}

// NewFieldErrors builds an error whose detail maps field names to details.
func NewFieldErrors(fields *orderedmap.OrderedMap[string, any]) *ValidationError {
	return &ValidationError{Code: CodeInvalid, Detail: fields}
}

// NewItemErrors builds an error whose detail holds one entry per list item.
func NewItemErrors(items []any) *ValidationError {
	return &ValidationError{Code: CodeInvalid, Detail: items}
}

// NewDetail returns an empty ordered field-to-detail mapping.
func NewDetail() *orderedmap.OrderedMap[string, any] {
	return orderedmap.New[string, any]()
}

// Unwrap returns the error that made the value uncheckable, if any.
func (e *ValidationError) Unwrap() error { return e.cause }

func (e *ValidationError) Error() string {
	parts := describe("", e.Detail)
	if len(parts) == 0 {
		return "validation failed"
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func describe(prefix string, detail any) []string {
	var parts []string
	switch d := detail.(type) {
	case []string:
		for _, msg := range d {
			if prefix == "" {
				parts = append(parts, msg)
				continue
			}
			parts = append(parts, fmt.Sprintf("%s: %s", prefix, msg))
		}
	case *orderedmap.OrderedMap[string, any]:
		for pair := d.Oldest(); pair != nil; pair = pair.Next() {
			parts = append(parts, describe(join(prefix, pair.Key), pair.Value)...)
		}
	case []any:
		for i, item := range d {
			parts = append(parts, describe(join(prefix, fmt.Sprintf("[%d]", i)), item)...)
		}
	}
	return parts
}

func join(prefix, key string) string {
	if prefix == "" {
		return key
	}
	return prefix + "." + key
}

// Messages returns the leaf messages, or nil when the detail is structured.
func (e *ValidationError) Messages() []string {
	msgs, _ := e.Detail.([]string)
	return msgs
}

// Fields returns the field mapping, or nil when the detail is not a mapping.
func (e *ValidationError) Fields() *orderedmap.OrderedMap[string, any] {
	fields, _ := e.Detail.(*orderedmap.OrderedMap[string, any])
	return fields
}

// Items returns the per-item details, or nil when the detail is not a list.
func (e *ValidationError) Items() []any {
	items, _ := e.Detail.([]any)
	return items
}

// Has reports whether the field mapping holds a detail for field.
func (e *ValidationError) Has(field string) bool {
	fields := e.Fields()
	if fields == nil {
		return false
	}
	_, ok := fields.Get(field)
	return ok
}

// Get returns the messages recorded for field, if its detail is a leaf.
func (e *ValidationError) Get(field string) []string {
	fields := e.Fields()
	if fields == nil {
		return nil
	}
	v, _ := fields.Get(field)
	msgs, _ := v.([]string)
	return msgs
}

// Run applies validators in order and returns the first failure.
func Run(value any, validators ...Validator) error {
	for _, v := range validators {
		if v == nil {
			continue
		}
		if err := v.Validate(value); err != nil {
			return err
		}
	}
	return nil
}

// Format substitutes {name} placeholders in template with params.
func Format(template string, params map[string]any) string {
	if len(params) == 0 {
		return template
	}
	pairs := make([]string, 0, len(params)*2)
	for k, v := range params {
		pairs = append(pairs, "{"+k+"}", fmt.Sprint(v))
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// IsEmpty reports whether value counts as blank input: nil, a zero
// number, false, or an empty string, slice, map or ordered map.
func IsEmpty(value any) bool {
	if value == nil {
		return true
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() == reflect.Pointer && rv.IsNil() {
		return true
	}
	if l, ok := value.(interface{ Len() int }); ok {
		return l.Len() == 0
	}
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Map, reflect.Array, reflect.Chan:
		return rv.Len() == 0
	case reflect.Bool:
		return !rv.Bool()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return rv.Float() == 0
	case reflect.Pointer, reflect.Interface, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// ExtractValidationError extracts a *ValidationError from an error chain.
func ExtractValidationError(err error) *ValidationError {
	if err == nil {
		return nil
	}

	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	return ExtractValidationError(err) != nil
}

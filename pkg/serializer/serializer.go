package serializer

import (
	"context"
	"fmt"
	"maps"
	"reflect"
	"slices"

	"github.com/mitchellh/mapstructure"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

// Serializer is the per-request contract shared by object and list
// serializers.
type Serializer interface {
	// IsValid validates the input once and reports whether it had no errors.
	IsValid(ctx context.Context) bool
	// Validate is IsValid returning the full error detail instead of a bool.
	Validate(ctx context.Context) error
	// Data renders the instance, the validated data, or the raw input, in that order.
	Data(ctx context.Context) (any, error)
	// Save creates or updates the instance from validated data merged with extra.
	Save(ctx context.Context, extra map[string]any) (any, error)
	RunValidation(ctx context.Context, data any) (any, error)
	ToRepresentation(ctx context.Context, instance any) (any, error)
}

// Option configures a serializer instance.
type Option func(*options)

type options struct {
	instance   any
	data       any
	hasData    bool
	partial    bool
	many       bool
	allowEmpty bool
	context    map[string]any
}

func buildOptions(opts []Option) options {
	o := options{allowEmpty: true}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// WithInstance sets the existing object to render or update.
func WithInstance(instance any) Option {
	return func(o *options) { o.instance = instance }
}

// WithData sets the raw input to validate.
func WithData(data any) Option {
	return func(o *options) {
		o.data = data
		o.hasData = true
	}
}

// Partial keeps the instance's current value for fields missing from input.
func Partial() Option {
	return func(o *options) { o.partial = true }
}

// Many switches Schema.New to list mode.
func Many() Option {
	return func(o *options) { o.many = true }
}

// AllowEmpty controls whether list mode accepts an empty list.
func AllowEmpty(allow bool) Option {
	return func(o *options) { o.allowEmpty = allow }
}

// WithContext passes request-scoped values available to methods and hooks.
func WithContext(values map[string]any) Option {
	return func(o *options) { o.context = values }
}

// ObjectSerializer validates and renders a single object. It is not safe for
// concurrent use; create one per request.
type ObjectSerializer struct {
	schema   *Schema
	instance any
	data     any
	hasData  bool
	partial  bool
	context  map[string]any

	fields   *orderedmap.OrderedMap[string, *Field]
	writable *orderedmap.OrderedMap[string, *Field]

	validated *orderedmap.OrderedMap[string, any]
	errors    *orderedmap.OrderedMap[string, any]
	ran       bool

	rendered    any
	hasRendered bool
}

func (s *Schema) newObject(o options) *ObjectSerializer {
	obj := &ObjectSerializer{
		schema:   s,
		instance: o.instance,
		data:     o.data,
		hasData:  o.hasData,
		partial:  o.partial,
		context:  o.context,
	}
	obj.fields, obj.writable = s.bind(obj)
	return obj
}

func (s *ObjectSerializer) Schema() *Schema          { return s.schema }
func (s *ObjectSerializer) Instance() any            { return s.instance }
func (s *ObjectSerializer) InitialData() any         { return s.data }
func (s *ObjectSerializer) IsPartial() bool          { return s.partial }
func (s *ObjectSerializer) Context() map[string]any  { return s.context }
func (s *ObjectSerializer) Fields() []*Field         { return values(s.fields) }
func (s *ObjectSerializer) WritableFields() []*Field { return values(s.writable) }
func (s *ObjectSerializer) hasErrors() bool          { return s.errors != nil && s.errors.Len() > 0 }

// Field returns the bound field exposed under name.
func (s *ObjectSerializer) Field(name string) (*Field, bool) {
	return s.fields.Get(name)
}

// Errors returns the field-to-detail mapping from the last validation.
func (s *ObjectSerializer) Errors() *orderedmap.OrderedMap[string, any] {
	if s.errors == nil {
		return validator.NewDetail()
	}
	return s.errors
}

// ValidatedData returns the validated mapping, or nil before successful validation.
func (s *ObjectSerializer) ValidatedData() *orderedmap.OrderedMap[string, any] {
	return s.validated
}

func (s *ObjectSerializer) IsValid(ctx context.Context) bool {
	return s.Validate(ctx) == nil
}

func (s *ObjectSerializer) Validate(ctx context.Context) error {
	if !s.hasData {
		return ErrNoData
	}

	if s.validated == nil {
		s.hasRendered = false
		validated, err := s.RunValidation(ctx, s.data)
		if err != nil {
			if !validator.IsValidationError(err) {
				return err
			}
		} else {
			s.validated, _ = validated.(*orderedmap.OrderedMap[string, any])
		}
		s.ran = true
	}

	if s.hasErrors() {
		return validator.NewFieldErrors(s.errors)
	}
	return nil
}

// RunValidation validates every writable field of data in declaration
// order. Field errors are collected rather than stopping at the first one;
// a non-validation error such as a cancelled context aborts immediately.
// Input that is not a mapping is treated as an empty mapping.
func (s *ObjectSerializer) RunValidation(ctx context.Context, data any) (any, error) {
	if !isMapping(data) {
		data = nil
	}

	ret := orderedmap.New[string, any]()
	errs := validator.NewDetail()
	for pair := s.writable.Oldest(); pair != nil; pair = pair.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		value, err := pair.Value.RunValidation(ctx, Attribute(data, pair.Key))
		if err != nil {
			verr := validator.ExtractValidationError(err)
			if verr == nil {
				return nil, err
			}
			errs.Set(pair.Key, verr.Detail)
			continue
		}
		ret.Set(pair.Key, value)
	}

	s.errors = errs
	if errs.Len() > 0 {
		return nil, validator.NewFieldErrors(errs)
	}
	return ret, nil
}

// ToRepresentation renders every field of instance in order. A field whose
// attribute is blank (nil, "", 0, false, empty collection) is emitted as
// that blank value without calling the field's render step.
func (s *ObjectSerializer) ToRepresentation(ctx context.Context, instance any) (any, error) {
	ret := orderedmap.New[string, any]()
	for pair := s.fields.Oldest(); pair != nil; pair = pair.Next() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		attr, err := pair.Value.GetAttribute(ctx, instance)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", pair.Key, err)
		}
		if validator.IsEmpty(attr) {
			ret.Set(pair.Key, attr)
			continue
		}

		value, err := pair.Value.ToRepresentation(ctx, attr)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", pair.Key, err)
		}
		ret.Set(pair.Key, value)
	}
	return ret, nil
}

func (s *ObjectSerializer) Data(ctx context.Context) (any, error) {
	if s.hasData && !s.ran {
		return nil, ErrNotValidated
	}
	if s.hasRendered {
		return s.rendered, nil
	}

	var (
		data any
		err  error
	)
	switch {
	case s.instance != nil && !s.hasErrors():
		data, err = s.ToRepresentation(ctx, s.instance)
	case s.validated != nil && s.validated.Len() > 0 && !s.hasErrors():
		data, err = s.ToRepresentation(ctx, s.validated)
	default:
		data = s.data
	}
	if err != nil {
		return nil, err
	}

	s.rendered, s.hasRendered = data, true
	return data, nil
}

func (s *ObjectSerializer) Save(ctx context.Context, extra map[string]any) (any, error) {
	if s.hasErrors() {
		return nil, ErrSaveWithErrors
	}

	if s.validated == nil {
		s.validated = orderedmap.New[string, any]()
	}
	for _, k := range slices.Sorted(maps.Keys(extra)) {
		s.validated.Set(k, extra[k])
	}

	var (
		instance any
		err      error
		method   = "create"
	)
	if s.instance == nil {
		instance, err = s.schema.create(ctx, s, s.validated)
	} else {
		method = "update"
		instance, err = s.schema.update(ctx, s, s.instance, s.validated)
	}
	if err != nil {
		return nil, err
	}
	if validator.IsEmpty(instance) {
		return nil, fmt.Errorf("%w: %s()", ErrNilInstance, method)
	}

	s.instance = instance
	s.hasRendered = false
	return instance, nil
}

// defaultCreate decodes validated data into a new Meta.Model value, or
// returns the validated mapping when no model is configured.
func defaultCreate(_ context.Context, s *ObjectSerializer, validated *orderedmap.OrderedMap[string, any]) (any, error) {
	model := s.schema.meta.Model
	if model == nil {
		return validated, nil
	}

	t := reflect.TypeOf(model)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	target := reflect.New(t)
	if err := decode(validated, target.Interface()); err != nil {
		return nil, err
	}
	return target.Interface(), nil
}

// defaultUpdate writes validated data into mappings and struct pointers in place.
func defaultUpdate(_ context.Context, _ *ObjectSerializer, instance any, validated *orderedmap.OrderedMap[string, any]) (any, error) {
	switch v := instance.(type) {
	case map[string]any:
		for pair := validated.Oldest(); pair != nil; pair = pair.Next() {
			v[pair.Key] = pair.Value
		}
		return v, nil
	case *orderedmap.OrderedMap[string, any]:
		for pair := validated.Oldest(); pair != nil; pair = pair.Next() {
			v.Set(pair.Key, pair.Value)
		}
		return v, nil
	}

	if rv := reflect.ValueOf(instance); rv.Kind() == reflect.Pointer && rv.Elem().Kind() == reflect.Struct {
		if err := decode(validated, instance); err != nil {
			return nil, err
		}
		return instance, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrNotUpdatable, instance)
}

func decode(validated *orderedmap.OrderedMap[string, any], target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           target,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return dec.Decode(plain(validated))
}

// plain converts ordered maps, including nested ones, into regular maps.
func plain(v any) any {
	switch t := v.(type) {
	case *orderedmap.OrderedMap[string, any]:
		m := make(map[string]any, t.Len())
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			m[pair.Key] = plain(pair.Value)
		}
		return m
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = plain(item)
		}
		return out
	}
	return v
}

func values[V any](m *orderedmap.OrderedMap[string, V]) []V {
	out := make([]V, 0, m.Len())
	for pair := m.Oldest(); pair != nil; pair = pair.Next() {
		out = append(out, pair.Value)
	}
	return out
}

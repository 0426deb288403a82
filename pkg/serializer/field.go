package serializer

import (
	"context"
	"maps"
	"slices"
	"sync/atomic"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

// Kind implements the type-specific half of a field: parsing input and
// rendering output. The shared policy (required, default, partial,
// validators) lives on Field.
type Kind interface {
	ToInternal(ctx context.Context, f *Field, value any) (any, error)
	ToRepresentation(ctx context.Context, f *Field, value any) (any, error)
}

// attributeGetter is implemented by kinds that compute their attribute
// instead of reading it from the instance.
type attributeGetter interface {
	GetAttribute(ctx context.Context, f *Field, instance any) (any, error)
}

// blankAccepter is implemented by kinds that parse an explicit empty string
// themselves instead of treating it as missing input.
type blankAccepter interface {
	AcceptsBlank() bool
}

// creationCounter orders fields by construction, which is the order they
// are declared in.
var creationCounter atomic.Uint64

// Field describes one schema attribute. Fields built by the constructors in
// this package are templates: every serializer instance binds its own copy.
type Field struct {
	kind       Kind
	order      uint64
	name       string
	required   bool
	readOnly   bool
	def        any
	partial    bool
	messages   map[string]string
	validators []validator.Validator
	parent     *ObjectSerializer
}

// FieldOption configures a field at construction time.
type FieldOption func(*Field)

func newField(kind Kind, messages map[string]string, opts []FieldOption) *Field {
	f := &Field{
		kind:     kind,
		order:    creationCounter.Add(1),
		required: true,
		messages: maps.Clone(defaultMessages),
	}
	maps.Copy(f.messages, messages)
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// NewField builds a field around a custom kind.
func NewField(kind Kind, opts ...FieldOption) *Field {
	return newField(kind, nil, opts)
}

// Raw returns a field that passes values through unchanged in both directions.
func Raw(opts ...FieldOption) *Field {
	return newField(rawKind{}, nil, opts)
}

type rawKind struct{}

func (rawKind) ToInternal(_ context.Context, _ *Field, value any) (any, error) {
	return value, nil
}

func (rawKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	return value, nil
}

// Optional allows the field to be omitted or blank.
func Optional() FieldOption {
	return func(f *Field) { f.required = false }
}

// ReadOnly excludes the field from input unless it has a default.
func ReadOnly() FieldOption {
	return func(f *Field) { f.readOnly = true }
}

// Default sets the value used when input for the field is blank.
func Default(value any) FieldOption {
	return func(f *Field) { f.def = value }
}

// WithValidators appends rule validators run after parsing.
func WithValidators(vs ...validator.Validator) FieldOption {
	return func(f *Field) { f.validators = append(f.validators, vs...) }
}

// MaxLength limits the length of the parsed value.
func MaxLength(limit int) FieldOption {
	return WithValidators(validator.MaxLength(limit))
}

// MinLength requires a minimum length of the parsed value.
func MinLength(limit int) FieldOption {
	return WithValidators(validator.MinLength(limit))
}

// MaxValue limits the parsed number.
func MaxValue[T validator.Numeric](limit T) FieldOption {
	return WithValidators(validator.MaxValue(limit))
}

// MinValue requires a minimum for the parsed number.
func MinValue[T validator.Numeric](limit T) FieldOption {
	return WithValidators(validator.MinValue(limit))
}

// ErrorMessages overrides message templates by error code.
func ErrorMessages(messages map[string]string) FieldOption {
	return func(f *Field) { maps.Copy(f.messages, messages) }
}

func (f *Field) Name() string                      { return f.name }
func (f *Field) Kind() Kind                        { return f.kind }
func (f *Field) IsRequired() bool                  { return f.required }
func (f *Field) IsReadOnly() bool                  { return f.readOnly }
func (f *Field) DefaultValue() any                 { return f.def }
func (f *Field) IsPartial() bool                   { return f.partial }
func (f *Field) Parent() *ObjectSerializer         { return f.parent }
func (f *Field) Validators() []validator.Validator { return slices.Clone(f.validators) }

// Writable reports whether the field takes part in input validation.
func (f *Field) Writable() bool {
	return !f.readOnly || f.def != nil
}

// Bind attaches the field to its owning serializer under name. The field
// inherits the parent's partial mode.
func (f *Field) Bind(parent *ObjectSerializer, name string) {
	f.parent = parent
	f.name = name
	if parent != nil {
		f.partial = parent.partial
	}
}

func (f *Field) clone() *Field {
	c := *f
	c.validators = slices.Clone(f.validators)
	c.parent = nil
	return &c
}

// Fail builds the validation error registered under code.
func (f *Field) Fail(code string, params map[string]any) *validator.ValidationError {
	template, ok := f.messages[code]
	if !ok {
		template = f.messages[CodeConversion]
	}
	return validator.NewError(code, validator.Format(template, params))
}

// RunValidation turns raw input into a validated value.
//
// Blank input is resolved without parsing: in partial mode the current value
// of the parent's instance is kept, then the default applies, then optional
// fields return the blank value as is, and required fields fail. Kinds that
// accept an empty string, such as OneOf with AllowBlank, parse it instead.
func (f *Field) RunValidation(ctx context.Context, data any) (any, error) {
	if f.readOnly {
		return f.def, nil
	}

	if validator.IsEmpty(data) && !f.acceptsBlank(data) {
		switch {
		case f.partial && f.parent != nil:
			return f.GetAttribute(ctx, f.parent.instance)
		case f.def != nil:
			return f.def, nil
		case !f.required:
			return data, nil
		default:
			return nil, f.Fail(CodeRequired, nil)
		}
	}

	value, err := f.ToInternal(ctx, data)
	if err != nil {
		return nil, err
	}
	if err := validator.Run(value, f.validators...); err != nil {
		return nil, err
	}
	return value, nil
}

func (f *Field) acceptsBlank(data any) bool {
	s, ok := data.(string)
	if !ok || s != "" {
		return false
	}
	b, ok := f.kind.(blankAccepter)
	return ok && b.AcceptsBlank()
}

// ToInternal parses input without applying validators.
func (f *Field) ToInternal(ctx context.Context, value any) (any, error) {
	return f.kind.ToInternal(ctx, f, value)
}

// ToRepresentation renders a value into a primitive for the response.
func (f *Field) ToRepresentation(ctx context.Context, value any) (any, error) {
	return f.kind.ToRepresentation(ctx, f, value)
}

// GetAttribute reads the field's value from instance. Missing attributes
// yield nil.
func (f *Field) GetAttribute(ctx context.Context, instance any) (any, error) {
	if g, ok := f.kind.(attributeGetter); ok {
		return g.GetAttribute(ctx, f, instance)
	}
	return Attribute(instance, f.name), nil
}

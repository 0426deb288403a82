package serializer

import (
	"context"
	"fmt"
	"maps"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

// Meta holds schema-level options.
type Meta struct {
	// Model is a prototype of the type the default create decodes validated
	// data into, e.g. Article{} or &Article{}. Nil keeps validated data as is.
	Model any
	// Fields lists the exposed fields in output order. Empty exposes every
	// declared field.
	Fields []string
	// Validators are appended to the named writable fields.
	Validators map[string][]validator.Validator
}

// CreateFunc builds a new object from validated data.
type CreateFunc func(ctx context.Context, s *ObjectSerializer, validated *orderedmap.OrderedMap[string, any]) (any, error)

// UpdateFunc applies validated data to an existing object.
type UpdateFunc func(ctx context.Context, s *ObjectSerializer, instance any, validated *orderedmap.OrderedMap[string, any]) (any, error)

// Schema is an immutable, ordered set of declared fields. Build it once with
// NewSchema and create a serializer per request with New.
type Schema struct {
	name     string
	declared *orderedmap.OrderedMap[string, *Field]
	exposed  []string
	meta     Meta
	methods  map[string]MethodFunc
	create   CreateFunc
	update   UpdateFunc
}

// SchemaOption configures a schema under construction.
type SchemaOption func(*schemaBuilder)

type declaration struct {
	name  string
	field *Field
}

type schemaBuilder struct {
	bases   []*Schema
	fields  []declaration
	meta    *Meta
	methods map[string]MethodFunc
	create  CreateFunc
	update  UpdateFunc
}

// Declare adds a field to the schema.
func Declare(name string, field *Field) SchemaOption {
	return func(b *schemaBuilder) {
		b.fields = append(b.fields, declaration{name: name, field: field})
	}
}

// Extends inherits fields, meta, methods and hooks from base schemas. Base
// fields come first; redeclared fields keep their base position and take
// the most derived definition.
func Extends(bases ...*Schema) SchemaOption {
	return func(b *schemaBuilder) {
		b.bases = append(b.bases, bases...)
	}
}

// WithMeta sets schema-level options.
func WithMeta(meta Meta) SchemaOption {
	return func(b *schemaBuilder) {
		b.meta = &meta
	}
}

// WithMethod registers a method resolvable by method fields.
func WithMethod(name string, fn MethodFunc) SchemaOption {
	return func(b *schemaBuilder) {
		b.methods[name] = fn
	}
}

// WithCreate overrides how Save builds a new object.
func WithCreate(fn CreateFunc) SchemaOption {
	return func(b *schemaBuilder) {
		b.create = fn
	}
}

// WithUpdate overrides how Save modifies an existing object.
func WithUpdate(fn UpdateFunc) SchemaOption {
	return func(b *schemaBuilder) {
		b.update = fn
	}
}

// NewSchema builds a schema. Own fields are ordered by construction of their
// Field values, not by option order. It panics when Meta references an
// undeclared field, since that is a programming error.
func NewSchema(name string, opts ...SchemaOption) *Schema {
	b := &schemaBuilder{methods: make(map[string]MethodFunc)}
	for _, opt := range opts {
		opt(b)
	}

	s := &Schema{
		name:     name,
		declared: orderedmap.New[string, *Field](),
		methods:  make(map[string]MethodFunc),
		create:   b.create,
		update:   b.update,
	}

	for _, base := range b.bases {
		for pair := base.declared.Oldest(); pair != nil; pair = pair.Next() {
			s.declared.Set(pair.Key, pair.Value)
		}
		for k, fn := range base.methods {
			if _, ok := s.methods[k]; !ok {
				s.methods[k] = fn
			}
		}
		if s.create == nil {
			s.create = base.create
		}
		if s.update == nil {
			s.update = base.update
		}
		if b.meta == nil {
			meta := base.meta
			b.meta = &meta
		}
	}
	maps.Copy(s.methods, b.methods)

	own := append([]declaration(nil), b.fields...)
	sort.SliceStable(own, func(i, j int) bool {
		return own[i].field.order < own[j].field.order
	})
	for _, d := range own {
		s.declared.Set(d.name, d.field)
	}

	if b.meta != nil {
		s.meta = *b.meta
	}
	s.exposed = s.meta.Fields
	if len(s.exposed) == 0 {
		for pair := s.declared.Oldest(); pair != nil; pair = pair.Next() {
			s.exposed = append(s.exposed, pair.Key)
		}
	}

	for _, name := range s.exposed {
		if _, ok := s.declared.Get(name); !ok {
			panic(fmt.Sprintf("serializer: schema %q exposes undeclared field %q", s.name, name))
		}
	}
	for name := range s.meta.Validators {
		f, ok := s.declared.Get(name)
		if !ok || !f.Writable() {
			panic(fmt.Sprintf("serializer: schema %q has validators for non-writable field %q", s.name, name))
		}
	}

	if s.create == nil {
		s.create = defaultCreate
	}
	if s.update == nil {
		s.update = defaultUpdate
	}
	return s
}

func (s *Schema) Name() string { return s.name }
func (s *Schema) Meta() Meta   { return s.meta }

// FieldNames returns the exposed field names in order.
func (s *Schema) FieldNames() []string {
	return append([]string(nil), s.exposed...)
}

// DeclaredField returns the template field declared under name.
func (s *Schema) DeclaredField(name string) (*Field, bool) {
	return s.declared.Get(name)
}

// New creates a serializer for one request. With Many it returns a
// *ListSerializer wrapping a single child, otherwise an *ObjectSerializer.
func (s *Schema) New(opts ...Option) Serializer {
	o := buildOptions(opts)
	if o.many {
		return s.newList(o)
	}
	return s.newObject(o)
}

// NewObject creates an object serializer regardless of the Many option.
func (s *Schema) NewObject(opts ...Option) *ObjectSerializer {
	return s.newObject(buildOptions(opts))
}

// NewList creates a list serializer regardless of the Many option.
func (s *Schema) NewList(opts ...Option) *ListSerializer {
	return s.newList(buildOptions(opts))
}

func (s *Schema) bind(parent *ObjectSerializer) (fields, writable *orderedmap.OrderedMap[string, *Field]) {
	fields = orderedmap.New[string, *Field]()
	writable = orderedmap.New[string, *Field]()
	for _, name := range s.exposed {
		tmpl, _ := s.declared.Get(name)
		f := tmpl.clone()
		f.Bind(parent, name)
		fields.Set(name, f)
		if f.Writable() {
			writable.Set(name, f)
		}
	}
	for name, vs := range s.meta.Validators {
		if f, ok := writable.Get(name); ok {
			f.validators = append(f.validators, vs...)
		}
	}
	return fields, writable
}

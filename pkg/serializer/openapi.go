package serializer

import (
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/spf13/cast"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

// OpenAPI describes the exposed fields of the schema as an object schema.
// Required lists writable fields that must be present in input.
func (s *Schema) OpenAPI() *openapi3.Schema {
	obj := openapi3.NewObjectSchema()
	obj.Title = s.name
	for _, name := range s.exposed {
		f, _ := s.declared.Get(name)
		obj.WithProperty(name, f.OpenAPI())
		if f.required && !f.readOnly && f.def == nil {
			obj.Required = append(obj.Required, name)
		}
	}
	return obj
}

// OpenAPI describes the field's value, including its limit validators.
func (f *Field) OpenAPI() *openapi3.Schema {
	var out *openapi3.Schema
	switch k := f.kind.(type) {
	case integerKind:
		out = openapi3.NewIntegerSchema()
	case *charKind:
		out = openapi3.NewStringSchema()
	case *dateTimeKind:
		out = openapi3.NewDateTimeSchema()
	case booleanKind:
		out = openapi3.NewBoolSchema()
	case *choiceKind:
		out = openapi3.NewSchema().WithEnum(k.Values()...)
	case *nestedKind:
		out = k.schema.OpenAPI()
		if k.many {
			out = openapi3.NewArraySchema().WithItems(out)
		}
	default:
		out = openapi3.NewSchema()
	}

	out.ReadOnly = f.readOnly
	if f.def != nil {
		out.Default = f.def
	}
	for _, v := range f.validators {
		limit, ok := v.(*validator.Limit)
		if !ok {
			continue
		}
		switch limit.Code {
		case validator.CodeMaxLength:
			out.WithMaxLength(cast.ToInt64(limit.Value))
		case validator.CodeMinLength:
			out.WithMinLength(cast.ToInt64(limit.Value))
		case validator.CodeMaxValue:
			out.WithMax(cast.ToFloat64(limit.Value))
		case validator.CodeMinValue:
			out.WithMin(cast.ToFloat64(limit.Value))
		}
	}
	return out
}

package serializer

import "context"

type nestedKind struct {
	schema *Schema
	many   bool
}

// Nested embeds another schema as a single object field.
func Nested(schema *Schema, opts ...FieldOption) *Field {
	return newField(&nestedKind{schema: schema}, nil, opts)
}

// NestedMany embeds another schema as a list-of-objects field.
func NestedMany(schema *Schema, opts ...FieldOption) *Field {
	return newField(&nestedKind{schema: schema, many: true}, nil, opts)
}

func (k *nestedKind) child(f *Field) Serializer {
	var opts []Option
	if f.partial {
		opts = append(opts, Partial())
	}
	if f.parent != nil && f.parent.context != nil {
		opts = append(opts, WithContext(f.parent.context))
	}
	if k.many {
		return k.schema.NewList(opts...)
	}
	return k.schema.NewObject(opts...)
}

func (k *nestedKind) ToInternal(ctx context.Context, f *Field, value any) (any, error) {
	return k.child(f).RunValidation(ctx, value)
}

func (k *nestedKind) ToRepresentation(ctx context.Context, f *Field, value any) (any, error) {
	return k.child(f).ToRepresentation(ctx, value)
}

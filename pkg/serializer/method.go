package serializer

import (
	"context"
	"fmt"
)

// MethodFunc computes a read-only value for a method field.
type MethodFunc func(ctx context.Context, s *ObjectSerializer, instance any) (any, error)

type methodKind struct {
	methodName string
}

// Method returns a read-only field whose value is computed by a schema
// method. The method is looked up as "get_<field name>" unless MethodName
// overrides it.
func Method(opts ...FieldOption) *Field {
	f := newField(&methodKind{}, nil, opts)
	f.readOnly = true
	return f
}

// MethodName sets the schema method a method field resolves to.
func MethodName(name string) FieldOption {
	return func(f *Field) {
		if k, ok := f.kind.(*methodKind); ok {
			k.methodName = name
		}
	}
}

func (k *methodKind) method(f *Field) string {
	if k.methodName != "" {
		return k.methodName
	}
	return "get_" + f.name
}

func (k *methodKind) GetAttribute(ctx context.Context, f *Field, instance any) (any, error) {
	name := k.method(f)
	if f.parent == nil {
		return nil, fmt.Errorf("%w: %s on unbound field", ErrMethodNotFound, name)
	}
	fn, ok := f.parent.schema.methods[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s.%s", ErrMethodNotFound, f.parent.schema.name, name)
	}
	return fn(ctx, f.parent, instance)
}

func (k *methodKind) ToInternal(_ context.Context, _ *Field, value any) (any, error) {
	return value, nil
}

func (k *methodKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	return value, nil
}

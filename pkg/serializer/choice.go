package serializer

import (
	"context"

	"github.com/samber/lo"
	"github.com/spf13/cast"
)

// Choice is one allowed value of a OneOf field with its display label.
type Choice struct {
	Value any
	Label string
}

type choiceKind struct {
	choices    []Choice
	aliases    map[string]any
	allowBlank bool
}

// OneOf accepts only the listed choice values. Input may be the native
// value or its string form, so "1" selects the choice 1; the native value
// is returned.
func OneOf(choices []Choice, opts ...FieldOption) *Field {
	k := &choiceKind{
		choices: choices,
		aliases: make(map[string]any, len(choices)),
	}
	for _, c := range choices {
		k.aliases[cast.ToString(c.Value)] = c.Value
	}
	return newField(k, map[string]string{
		CodeInvalidChoice: `"{input}" is not a valid choice`,
	}, opts)
}

// AllowBlank lets a OneOf field accept an explicit empty string.
func AllowBlank() FieldOption {
	return func(f *Field) {
		if k, ok := f.kind.(*choiceKind); ok {
			k.allowBlank = true
		}
	}
}

// AcceptsBlank reports whether an explicit empty string is a valid choice.
func (k *choiceKind) AcceptsBlank() bool { return k.allowBlank }

// Values returns the choice values in declaration order.
func (k *choiceKind) Values() []any {
	return lo.Map(k.choices, func(c Choice, _ int) any { return c.Value })
}

func (k *choiceKind) ToInternal(_ context.Context, f *Field, value any) (any, error) {
	if s, ok := value.(string); ok && s == "" && k.allowBlank {
		return "", nil
	}

	key, err := cast.ToStringE(value)
	if err != nil {
		return nil, f.Fail(CodeInvalidChoice, map[string]any{"input": value})
	}
	native, ok := k.aliases[key]
	if !ok {
		return nil, f.Fail(CodeInvalidChoice, map[string]any{"input": value})
	}
	return native, nil
}

func (k *choiceKind) ToRepresentation(_ context.Context, _ *Field, value any) (any, error) {
	if value == nil || value == "" {
		return value, nil
	}
	key, err := cast.ToStringE(value)
	if err != nil {
		return value, nil
	}
	if native, ok := k.aliases[key]; ok {
		return native, nil
	}
	return value, nil
}

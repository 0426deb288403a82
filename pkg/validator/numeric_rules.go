package validator

import (
	"errors"
	"fmt"

	"github.com/spf13/cast"
)

// Limit compares a cleaned value against a fixed limit.
// Blank values are never checked; presence is the field's concern.
type Limit struct {
	Code    string
	Value   any
	Message string

	bound    float64
	clean    func(value any) (float64, error)
	violated func(cleaned, bound float64) bool
}

func (l *Limit) Validate(value any) error {
	if IsEmpty(value) {
		return nil
	}

	cleaned, err := l.clean(value)
	if err != nil {
		return &ValidationError{
			Code:   CodeInvalid,
			Detail: []string{fmt.Sprintf("%q cannot be checked against %v", fmt.Sprint(value), l.Value)},
			cause:  err,
		}
	}

	if l.violated(cleaned, l.bound) {
		return NewError(l.Code, Format(l.Message, map[string]any{"limit_value": l.Value}))
	}
	return nil
}

// Equal reports whether both limits enforce the same rule with the same message.
func (l *Limit) Equal(other *Limit) bool {
	if other == nil {
		return false
	}
	return l.Code == other.Code && l.bound == other.bound && l.Message == other.Message
}

// MaxValue rejects numbers greater than limit.
func MaxValue[T Numeric](limit T, message ...string) *Limit {
	return &Limit{
		Code:     CodeMaxValue,
		Value:    limit,
		Message:  pick(message, "ensure this value is less than or equal to {limit_value}"),
		bound:    float64(limit),
		clean:    cleanNumber,
		violated: func(a, b float64) bool { return a > b },
	}
}

// MinValue rejects numbers lower than limit.
func MinValue[T Numeric](limit T, message ...string) *Limit {
	return &Limit{
		Code:     CodeMinValue,
		Value:    limit,
		Message:  pick(message, "ensure this value is greater than or equal to {limit_value}"),
		bound:    float64(limit),
		clean:    cleanNumber,
		violated: func(a, b float64) bool { return a < b },
	}
}

func cleanNumber(value any) (float64, error) {
	f, err := cast.ToFloat64E(value)
	if err != nil {
		return 0, errors.Join(ErrNotComparable, err)
	}
	return f, nil
}

func pick(custom []string, fallback string) string {
	if len(custom) > 0 && custom[0] != "" {
		return custom[0]
	}
	return fallback
}

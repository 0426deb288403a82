package validator

import (
	"reflect"
	"unicode/utf8"
)

// MaxLength rejects strings and collections longer than limit.
func MaxLength(limit int, message ...string) *Limit {
	return &Limit{
		Code:     CodeMaxLength,
		Value:    limit,
		Message:  pick(message, "ensure this value has at most {limit_value} characters"),
		bound:    float64(limit),
		clean:    cleanLength,
		violated: func(a, b float64) bool { return a > b },
	}
}

// MinLength rejects strings and collections shorter than limit.
func MinLength(limit int, message ...string) *Limit {
	return &Limit{
		Code:     CodeMinLength,
		Value:    limit,
		Message:  pick(message, "ensure this value has at least {limit_value} characters"),
		bound:    float64(limit),
		clean:    cleanLength,
		violated: func(a, b float64) bool { return a < b },
	}
}

// cleanLength counts characters for strings and elements for collections.
func cleanLength(value any) (float64, error) {
	switch v := value.(type) {
	case string:
		return float64(utf8.RuneCountInString(v)), nil
	case interface{ Len() int }:
		return float64(v.Len()), nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map, reflect.String:
		return float64(rv.Len()), nil
	}
	return 0, ErrNoLength
}

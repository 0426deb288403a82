package validator

import "errors"

// Error codes shared by validators and fields.
const (
	CodeInvalid   = "invalid"
	CodeMaxValue  = "max_value"
	CodeMinValue  = "min_value"
	CodeMaxLength = "max_length"
	CodeMinLength = "min_length"
)

var (
	// ErrNotComparable is returned when a value cannot be reduced to a number for a limit check.
	ErrNotComparable = errors.New("value is not comparable with the limit")

	// ErrNoLength is returned when a length validator receives a value without a length.
	ErrNoLength = errors.New("value has no length")
)

package serializer

import "errors"

// Error codes raised by fields and list serializers.
const (
	CodeRequired      = "required"
	CodeConversion    = "to_python"
	CodeInvalid       = "invalid"
	CodeDate          = "date"
	CodeInvalidChoice = "invalid_choice"
	CodeNotAList      = "not_a_list"
	CodeEmpty         = "empty"
)

var defaultMessages = map[string]string{
	CodeConversion: "invalid data",
	CodeRequired:   "this field is required",
}

var (
	// ErrNoData is returned by validation when the serializer was built without input data.
	ErrNoData = errors.New("serializer has no input data to validate")

	// ErrNotValidated is returned when data is read before validating supplied input.
	ErrNotValidated = errors.New("serializer input must be validated before reading data")

	// ErrSaveWithErrors is returned when saving a serializer that has validation errors.
	ErrSaveWithErrors = errors.New("cannot save a serializer with validation errors")

	// ErrNilInstance is returned when a create or update hook returns no instance.
	ErrNilInstance = errors.New("save did not return an object instance")

	// ErrMethodNotFound is returned when a method field cannot resolve its schema method.
	ErrMethodNotFound = errors.New("schema method not found")

	// ErrRepresentation is returned when a value cannot be rendered by its field.
	ErrRepresentation = errors.New("value cannot be represented")

	// ErrNotUpdatable is returned by the default update when the instance cannot be modified in place.
	ErrNotUpdatable = errors.New("instance cannot be updated in place")

	// ErrListUpdate is returned when saving a list serializer over an existing instance.
	ErrListUpdate = errors.New("list serializers do not support updating existing instances")
)

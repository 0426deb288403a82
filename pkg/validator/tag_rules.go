package validator

import (
	"errors"
	"fmt"

	playground "github.com/go-playground/validator/v10"
)

// tags is safe for concurrent use and caches parsed tag expressions.
var tags = playground.New(playground.WithRequiredStructEnabled())

// Tag checks a value against a go-playground validation expression such as
// "email", "url" or "oneof=draft published". Blank values are skipped.
func Tag(expr string, message ...string) Validator {
	return Func(func(value any) error {
		if IsEmpty(value) {
			return nil
		}

		err := tags.Var(value, expr)
		if err == nil {
			return nil
		}

		var failures playground.ValidationErrors
		if errors.As(err, &failures) && len(failures) > 0 {
			failed := failures[0]
			return NewError(failed.Tag(), pick(message, fmt.Sprintf("value does not satisfy the %q rule", failed.Tag())))
		}
		return NewError(CodeInvalid, pick(message, err.Error()))
	})
}

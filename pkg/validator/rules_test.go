package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/restkit/pkg/validator"
)

func TestMaxValue(t *testing.T) {
	t.Parallel()

	v := validator.MaxValue(10)
	assert.NoError(t, v.Validate(10))
	assert.NoError(t, v.Validate("9"))
	assert.NoError(t, v.Validate(0), "blank values are exempt")

	err := v.Validate(11)
	verr := validator.ExtractValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, validator.CodeMaxValue, verr.Code)
	assert.Equal(t, []string{"ensure this value is less than or equal to 10"}, verr.Messages())
}

func TestMinValue(t *testing.T) {
	t.Parallel()

	v := validator.MinValue(2.5, "too small, need {limit_value}")
	assert.NoError(t, v.Validate(3))

	verr := validator.ExtractValidationError(v.Validate(1))
	require.NotNil(t, verr)
	assert.Equal(t, validator.CodeMinValue, verr.Code)
	assert.Equal(t, []string{"too small, need 2.5"}, verr.Messages())

	err := v.Validate("abc")
	verr = validator.ExtractValidationError(err)
	require.NotNil(t, verr)
	assert.Equal(t, validator.CodeInvalid, verr.Code)
	assert.ErrorIs(t, err, validator.ErrNotComparable)
}

func TestLengthValidators(t *testing.T) {
	t.Parallel()

	t.Run("counts characters not bytes", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.MaxLength(5).Validate("привет"[:10]))
		assert.NoError(t, validator.MaxLength(6).Validate("привет"))
		assert.Error(t, validator.MaxLength(5).Validate("привет"))
	})

	t.Run("counts collection elements", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, validator.MinLength(2).Validate([]int{1}))
		assert.NoError(t, validator.MinLength(2).Validate(map[string]int{"a": 1, "b": 2}))
	})

	t.Run("skips blank values", func(t *testing.T) {
		t.Parallel()
		assert.NoError(t, validator.MinLength(3).Validate(""))
		assert.NoError(t, validator.MinLength(3).Validate(nil))
	})

	t.Run("rejects values without length", func(t *testing.T) {
		t.Parallel()
		err := validator.MaxLength(3).Validate(12345)
		verr := validator.ExtractValidationError(err)
		require.NotNil(t, verr)
		assert.Equal(t, validator.CodeInvalid, verr.Code)
		assert.ErrorIs(t, err, validator.ErrNoLength)
	})
}

func TestLimitEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, validator.MaxLength(5).Equal(validator.MaxLength(5)))
	assert.False(t, validator.MaxLength(5).Equal(validator.MaxLength(6)))
	assert.False(t, validator.MaxLength(5).Equal(validator.MinLength(5)))
	assert.False(t, validator.MaxLength(5).Equal(nil))
}

func TestTag(t *testing.T) {
	t.Parallel()

	email := validator.Tag("email")
	assert.NoError(t, email.Validate("user@example.com"))
	assert.NoError(t, email.Validate(""))

	verr := validator.ExtractValidationError(email.Validate("not-an-email"))
	require.NotNil(t, verr)
	assert.Equal(t, "email", verr.Code)
	assert.Equal(t, []string{`value does not satisfy the "email" rule`}, verr.Messages())

	custom := validator.Tag("oneof=draft published", "unknown status")
	verr = validator.ExtractValidationError(custom.Validate("archived"))
	require.NotNil(t, verr)
	assert.Equal(t, []string{"unknown status"}, verr.Messages())
}

package shared

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateEmail(t *testing.T) {
	valid := []string{
		"alice@x.com",
		"bob.smith@example.org",
		"a_b+c-d@some-host.co.uk",
		"n123@d1.io",
	}
	for _, email := range valid {
		got, err := ValidateEmail(email)
		assert.NoError(t, err, email)
		assert.Equal(t, email, got)
	}

	invalid := []string{
		"",
		"alice",
		"alice@",
		"@x.com",
		"alice@x",
		"alice x@x.com",
		"alice@x com.org",
	}
	for _, email := range invalid {
		_, err := ValidateEmail(email)
		assert.Error(t, err, email)
		assert.ErrorIs(t, err, ErrInvalidFormat, email)
	}
}

func TestValidateAge(t *testing.T) {
	got, err := ValidateAge(0)
	assert.NoError(t, err)
	assert.Equal(t, 0, got)

	got, err = ValidateAge(20)
	assert.NoError(t, err)
	assert.Equal(t, 20, got)

	_, err = ValidateAge(-1)
	assert.ErrorIs(t, err, ErrNegativeValue)
	assert.True(t, IsValidation(err))
}

func TestValidateRequired(t *testing.T) {
	got, err := ValidateRequired("  Alice  ", "name")
	assert.NoError(t, err)
	assert.Equal(t, "Alice", got)

	_, err = ValidateRequired("", "name")
	assert.ErrorIs(t, err, ErrMissingField)

	_, err = ValidateRequired("   ", "student_id")
	assert.ErrorIs(t, err, ErrMissingField)
	assert.Contains(t, err.Error(), "student_id")
}

func TestDomainErrorMatching(t *testing.T) {
	err := WrapError("student", "Submit", ErrDuplicateKey, "student already exists", nil)

	assert.True(t, IsDuplicateKey(err))
	assert.False(t, IsNotFound(err))
	assert.Contains(t, err.Error(), "student.Submit")
}

package shared

import (
	"fmt"
	"regexp"
	"strings"
)

// emailPattern is the shape every stored email must match: local@domain
// with a dotted domain part. Matching is case-sensitive on purpose.
var emailPattern = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9-.]+$`)

// ValidateEmail checks that s looks like local@domain and returns it
// unchanged. Returns ErrInvalidFormat otherwise.
func ValidateEmail(s string) (string, error) {
	if !emailPattern.MatchString(s) {
		return "", WrapError("person", "ValidateEmail", ErrInvalidFormat,
			fmt.Sprintf("invalid email format: %q", s), nil)
	}
	return s, nil
}

// ValidateAge checks that n is non-negative and returns it unchanged.
func ValidateAge(n int) (int, error) {
	if n < 0 {
		return 0, WrapError("person", "ValidateAge", ErrNegativeValue,
			fmt.Sprintf("invalid age: %d, age must be a non-negative integer", n), nil)
	}
	return n, nil
}

// ValidateRequired checks that s is non-empty after trimming whitespace
// and returns the trimmed value. The field name is carried in the error.
func ValidateRequired(s, field string) (string, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return "", WrapError("person", "ValidateRequired", ErrMissingField,
			fmt.Sprintf("%s is required", field), nil)
	}
	return trimmed, nil
}

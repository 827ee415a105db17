package content

import (
	"errors"
	"strings"
)

var (
	// ErrUnauthorized is returned when a mutation is attempted without an
	// authenticated owner session.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrValidation marks a payload that is missing required fields or
	// carries an unknown enum value.
	ErrValidation = errors.New("validation failed")
	// ErrStorage wraps any failure of the underlying store.
	ErrStorage = errors.New("storage failure")
)

// ValidationError lists the offending fields of a rejected payload.
type ValidationError struct {
	Missing []string
	Invalid []string
}

func (e *ValidationError) Error() string {
	var parts []string
	if len(e.Missing) > 0 {
		parts = append(parts, "missing required fields: "+strings.Join(e.Missing, ", "))
	}
	if len(e.Invalid) > 0 {
		parts = append(parts, "invalid values: "+strings.Join(e.Invalid, ", "))
	}
	return strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// check collects required-field failures. Field names are the JSON names.
type check struct {
	missing []string
	invalid []string
}

func (c *check) required(name, v string) {
	if isBlank(v) {
		c.missing = append(c.missing, name)
	}
}

func (c *check) requiredInt(name string, v int) {
	if v == 0 {
		c.missing = append(c.missing, name)
	}
}

func (c *check) err() error {
	if len(c.missing) == 0 && len(c.invalid) == 0 {
		return nil
	}
	return &ValidationError{Missing: c.missing, Invalid: c.invalid}
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

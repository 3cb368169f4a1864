// Package errs defines the error taxonomy shared by the profile and
// settings stores and consumed by the navigation controller.
package errs

import "errors"

// ErrNotFound reports that a referenced id does not exist. Callers treat
// it as a recoverable no-op.
var ErrNotFound = errors.New("not found")

// ValidationError reports caller-supplied data that violates a domain
// invariant. The originating screen may surface Message and let the user
// retry; state is unchanged.
type ValidationError struct {
	Field   string // which field violated the rule
	Rule    string // machine-readable rule name, e.g. "duplicate nickname"
	Message string
}

func (e *ValidationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return e.Rule
}

// Validation builds a ValidationError for field violating rule.
func Validation(field, rule, message string) *ValidationError {
	return &ValidationError{Field: field, Rule: rule, Message: message}
}

// IsValidation reports whether err is (or wraps) a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// AsValidation unwraps err into a ValidationError, or nil.
func AsValidation(err error) *ValidationError {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve
	}
	return nil
}

package config

import (
	"errors"
	"fmt"
)

// ErrValidationFailed indicates a setting has an unusable value.
var ErrValidationFailed = errors.New("validation failed")

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Path is the setting path that failed validation.
	Path string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
	// Source names the environment variable or file that supplied Value.
	// Empty for built-in defaults.
	Source string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s (value: %v)", e.Path, e.Message, e.Value)
	if e.Source != "" {
		msg += " (set by " + e.Source + ")"
	}
	return msg
}

// Is implements error matching for ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

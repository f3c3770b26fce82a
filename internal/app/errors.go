package app

import (
	"errors"
	"fmt"
)

// Application errors.
var (
	// ErrLineOutOfRange indicates a line index outside the document.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrInvalidConfig indicates the configuration failed validation.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// OperationError represents an error that occurred during a specific
// document operation.
type OperationError struct {
	Op     string // Operation name (e.g., "delete", "set")
	Target string // Target of the operation (e.g., "line 3")
	Err    error  // Underlying error
}

// NewOperationError creates a new OperationError.
func NewOperationError(op, target string, err error) *OperationError {
	return &OperationError{
		Op:     op,
		Target: target,
		Err:    err,
	}
}

func (e *OperationError) Error() string {
	msg := e.Op
	if e.Target != "" {
		msg = fmt.Sprintf("%s %s", e.Op, e.Target)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *OperationError) Unwrap() error {
	return e.Err
}

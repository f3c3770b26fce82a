package dispatcher

import (
	"errors"
	"fmt"

	"github.com/dshills/cmdhistory/internal/command"
)

// Dispatcher errors.
var (
	// ErrNothingToUndo indicates an undo was requested with an empty undo stack.
	ErrNothingToUndo = errors.New("dispatcher: nothing to undo")

	// ErrNothingToRedo indicates a redo was requested with an empty redo stack.
	ErrNothingToRedo = errors.New("dispatcher: nothing to redo")

	// ErrNilCommand indicates a nil command was passed to Execute.
	ErrNilCommand = errors.New("dispatcher: nil command")

	// ErrIncomparableCommand indicates an undoable command whose type cannot
	// be compared with ==, so it could never be found again in the history.
	ErrIncomparableCommand = errors.New("dispatcher: undoable command is not comparable")
)

// ObserverError reports a failure raised by an observer while it was being
// notified. The operation itself has already completed.
type ObserverError struct {
	SubscriptionID string
	Op             command.Operation
	Err            error
}

func (e *ObserverError) Error() string {
	return fmt.Sprintf("dispatcher: observer %s failed on %s: %v", e.SubscriptionID, e.Op, e.Err)
}

func (e *ObserverError) Unwrap() error {
	return e.Err
}

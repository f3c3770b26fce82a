package command

import (
	"fmt"
	"reflect"
)

// Command is a unit of work that can be executed.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute() error
}

// Undoable is a command that can be reversed and re-applied.
//
// Histories track undoable commands by identity: two values are the same
// command when == reports them equal. Implementations should be pointer
// types. A value type holding a slice, map or func cannot be compared and
// is rejected by the dispatcher.
type Undoable interface {
	Command

	// Undo reverses the command and returns an error if it fails.
	Undo() error

	// IsImplicit reports whether the command rides along with the explicit
	// command it follows. Fixed at construction.
	IsImplicit() bool
}

// AsUndoable reports whether c supports undo and returns it as an Undoable.
func AsUndoable(c Command) (Undoable, bool) {
	if c == nil {
		return nil, false
	}
	u, ok := c.(Undoable)
	return u, ok
}

// Comparable reports whether c can be compared with ==, and so tracked by
// identity in a history.
func Comparable(c Command) bool {
	return c != nil && reflect.TypeOf(c).Comparable()
}

// Func adapts a plain function to a non-undoable Command.
type Func func() error

// Execute calls f.
func (f Func) Execute() error {
	return f()
}

// Describe returns a short human-readable name for c, for logs and listings.
func Describe(c Command) string {
	switch v := c.(type) {
	case nil:
		return "<nil>"
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprintf("%T", c)
	}
}

package history

import (
	"errors"
	"slices"
)

// DefaultMaxSize is the undo capacity used when none is given.
const DefaultMaxSize = 20

// ErrStackInUse indicates the capacity was changed after items were added.
var ErrStackInUse = errors.New("history: capacity can only be changed before first use")

// Stack is a bounded pair of undo and redo sequences.
type Stack[T comparable] struct {
	undoStack []T
	redoStack []T

	maxSize int
	used    bool
}

// NewStack creates a stack holding at most maxSize undo items.
// A non-positive maxSize selects DefaultMaxSize.
func NewStack[T comparable](maxSize int) *Stack[T] {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Stack[T]{
		maxSize: maxSize,
	}
}

// MaxSize returns the undo capacity.
func (s *Stack[T]) MaxSize() int {
	return s.maxSize
}

// SetMaxSize changes the undo capacity. It fails with ErrStackInUse once an
// item has been added. A non-positive max selects DefaultMaxSize.
func (s *Stack[T]) SetMaxSize(max int) error {
	if s.used {
		return ErrStackInUse
	}
	if max <= 0 {
		max = DefaultMaxSize
	}
	s.maxSize = max
	return nil
}

// AddItem pushes item onto the undo sequence and clears the redo sequence.
// When the undo sequence is full its oldest item is evicted first.
func (s *Stack[T]) AddItem(item T) {
	s.used = true

	if len(s.undoStack) >= s.maxSize {
		excess := len(s.undoStack) - s.maxSize + 1
		s.undoStack = slices.Delete(s.undoStack, 0, excess)
	}
	s.undoStack = append(s.undoStack, item)

	clear(s.redoStack)
	s.redoStack = s.redoStack[:0]
}

// Undo moves the top undo item onto the redo sequence and returns it.
// Returns false if there is nothing to undo.
func (s *Stack[T]) Undo() (T, bool) {
	item, ok := pop(&s.undoStack)
	if !ok {
		return item, false
	}
	s.redoStack = append(s.redoStack, item)
	return item, true
}

// Redo moves the top redo item back onto the undo sequence and returns it.
// Returns false if there is nothing to redo.
func (s *Stack[T]) Redo() (T, bool) {
	item, ok := pop(&s.redoStack)
	if !ok {
		return item, false
	}
	s.undoStack = append(s.undoStack, item)
	return item, true
}

// UndoItems returns a live view of the undo sequence, oldest first.
func (s *Stack[T]) UndoItems() View[T] {
	return NewView(&s.undoStack)
}

// RedoItems returns a live view of the redo sequence, oldest first.
func (s *Stack[T]) RedoItems() View[T] {
	return NewView(&s.redoStack)
}

// CanUndo returns true if the undo sequence is not empty.
func (s *Stack[T]) CanUndo() bool {
	return len(s.undoStack) > 0
}

// CanRedo returns true if the redo sequence is not empty.
func (s *Stack[T]) CanRedo() bool {
	return len(s.redoStack) > 0
}

// CleanUp removes every given item from both sequences. Items that are not
// present are ignored.
func (s *Stack[T]) CleanUp(items ...T) {
	if len(items) == 0 {
		return
	}

	remove := make(map[T]struct{}, len(items))
	for _, item := range items {
		remove[item] = struct{}{}
	}
	drop := func(item T) bool {
		_, ok := remove[item]
		return ok
	}

	s.undoStack = slices.DeleteFunc(s.undoStack, drop)
	s.redoStack = slices.DeleteFunc(s.redoStack, drop)
}

// Reset removes all undo and redo items.
func (s *Stack[T]) Reset() {
	clear(s.undoStack)
	s.undoStack = s.undoStack[:0]
	clear(s.redoStack)
	s.redoStack = s.redoStack[:0]
}

// pop removes and returns the last element of *items.
func pop[T any](items *[]T) (T, bool) {
	var zero T
	n := len(*items)
	if n == 0 {
		return zero, false
	}
	item := (*items)[n-1]
	(*items)[n-1] = zero
	*items = (*items)[:n-1]
	return item, true
}

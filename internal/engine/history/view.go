package history

import (
	"iter"
	"slices"
)

// View is a read-only, order-preserving projection of a sequence.
// It reads through to the backing storage, so it always reflects the
// current contents. The zero View is empty.
type View[T any] struct {
	items *[]T
}

// NewView returns a view over *items.
func NewView[T any](items *[]T) View[T] {
	return View[T]{items: items}
}

func (v View[T]) get() []T {
	if v.items == nil {
		return nil
	}
	return *v.items
}

// Len returns the number of items.
func (v View[T]) Len() int {
	return len(v.get())
}

// At returns the item at index i, where 0 is the oldest.
// It panics if i is out of range.
func (v View[T]) At(i int) T {
	return v.get()[i]
}

// Last returns the newest item (the top of the stack).
func (v View[T]) Last() (T, bool) {
	items := v.get()
	if len(items) == 0 {
		var zero T
		return zero, false
	}
	return items[len(items)-1], true
}

// All iterates oldest to newest.
func (v View[T]) All() iter.Seq2[int, T] {
	return slices.All(v.get())
}

// Backward iterates newest to oldest.
func (v View[T]) Backward() iter.Seq2[int, T] {
	return slices.Backward(v.get())
}

// Slice returns a copy of the current items.
func (v View[T]) Slice() []T {
	return slices.Clone(v.get())
}

package command

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Delegate is an undoable command backed by two functions.
type Delegate struct {
	execute  func() error
	undo     func() error
	implicit bool
	label    string
}

// DelegateOption configures a Delegate.
type DelegateOption func(*Delegate)

// Implicit marks the delegate as an implicit command.
func Implicit() DelegateOption {
	return func(d *Delegate) {
		d.implicit = true
	}
}

// WithImplicit sets the implicit flag explicitly.
func WithImplicit(implicit bool) DelegateOption {
	return func(d *Delegate) {
		d.implicit = implicit
	}
}

// WithLabel sets the display label returned by String.
func WithLabel(label string) DelegateOption {
	return func(d *Delegate) {
		d.label = label
	}
}

// NewDelegate creates an undoable command from execute and undo functions.
// Both are required.
func NewDelegate(execute, undo func() error, opts ...DelegateOption) (*Delegate, error) {
	if execute == nil {
		return nil, fmt.Errorf("%w: execute", ErrArgumentRequired)
	}
	if undo == nil {
		return nil, fmt.Errorf("%w: undo", ErrArgumentRequired)
	}

	d := &Delegate{
		execute: execute,
		undo:    undo,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d, nil
}

// MustDelegate is like NewDelegate but panics on error.
func MustDelegate(execute, undo func() error, opts ...DelegateOption) *Delegate {
	d, err := NewDelegate(execute, undo, opts...)
	if err != nil {
		panic(err)
	}
	return d
}

// Execute invokes the execute function.
func (d *Delegate) Execute() error {
	return d.execute()
}

// Undo invokes the undo function.
func (d *Delegate) Undo() error {
	return d.undo()
}

// IsImplicit reports whether the delegate is implicit.
func (d *Delegate) IsImplicit() bool {
	return d.implicit
}

// Label returns the display label, which may be empty.
func (d *Delegate) Label() string {
	return d.label
}

// String returns the label, falling back to the execute function's name.
func (d *Delegate) String() string {
	if d.label != "" {
		return d.label
	}
	return funcName(d.execute)
}

// funcName returns the unqualified name of fn.
func funcName(fn func() error) string {
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "delegate"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}

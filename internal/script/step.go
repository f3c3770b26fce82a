package script

import (
	"errors"
	"fmt"
	"strconv"
)

// Kind identifies what a step does.
type Kind uint8

const (
	KindInvalid Kind = iota
	KindAppend
	KindDelete
	KindSet
	KindUndo
	KindRedo
	KindReset
	KindShow
	KindScope
)

func (k Kind) String() string {
	switch k {
	case KindAppend:
		return "append"
	case KindDelete:
		return "delete"
	case KindSet:
		return "set"
	case KindUndo:
		return "undo"
	case KindRedo:
		return "redo"
	case KindReset:
		return "reset"
	case KindShow:
		return "show"
	case KindScope:
		return "scope"
	default:
		return "invalid"
	}
}

// Errors returned while decoding or validating steps.
var (
	ErrEmptyStep     = errors.New("script: step has no operation")
	ErrAmbiguousStep = errors.New("script: step has more than one operation")
	ErrBadArgument   = errors.New("script: bad argument")
)

// SetArgs are the arguments of a set step.
type SetArgs struct {
	Line int    `yaml:"line"`
	Text string `yaml:"text"`
}

// ScopeBlock groups steps run through one execution scope.
type ScopeBlock struct {
	Steps []Step `yaml:"steps"`
	// Keep leaves the scope open so its commands stay in the history.
	Keep bool `yaml:"keep,omitempty"`
}

// Step is one operation of a script. Exactly one field is set.
type Step struct {
	Append *string     `yaml:"append,omitempty"`
	Delete *int        `yaml:"delete,omitempty"`
	Set    *SetArgs    `yaml:"set,omitempty"`
	Undo   *int        `yaml:"undo,omitempty"`
	Redo   *int        `yaml:"redo,omitempty"`
	Reset  bool        `yaml:"reset,omitempty"`
	Show   bool        `yaml:"show,omitempty"`
	Scope  *ScopeBlock `yaml:"scope,omitempty"`
}

// Kind returns the operation of the step, or KindInvalid if none or more
// than one is set.
func (s Step) Kind() Kind {
	kind := KindInvalid
	set := 0
	mark := func(ok bool, k Kind) {
		if ok {
			set++
			kind = k
		}
	}
	mark(s.Append != nil, KindAppend)
	mark(s.Delete != nil, KindDelete)
	mark(s.Set != nil, KindSet)
	mark(s.Undo != nil, KindUndo)
	mark(s.Redo != nil, KindRedo)
	mark(s.Reset, KindReset)
	mark(s.Show, KindShow)
	mark(s.Scope != nil, KindScope)
	if set != 1 {
		return KindInvalid
	}
	return kind
}

// Validate checks that the step names exactly one operation with usable
// arguments. Scope blocks are validated recursively.
func (s Step) Validate() error {
	switch s.Kind() {
	case KindInvalid:
		if s.isEmpty() {
			return ErrEmptyStep
		}
		return ErrAmbiguousStep
	case KindDelete:
		if *s.Delete < 0 {
			return fmt.Errorf("%w: delete line %d", ErrBadArgument, *s.Delete)
		}
	case KindSet:
		if s.Set.Line < 0 {
			return fmt.Errorf("%w: set line %d", ErrBadArgument, s.Set.Line)
		}
	case KindScope:
		for i, inner := range s.Scope.Steps {
			if err := inner.Validate(); err != nil {
				return fmt.Errorf("scope step %d: %w", i+1, err)
			}
		}
	}
	return nil
}

func (s Step) isEmpty() bool {
	return s.Append == nil && s.Delete == nil && s.Set == nil &&
		s.Undo == nil && s.Redo == nil && !s.Reset && !s.Show && s.Scope == nil
}

// String renders the step in REPL syntax. Scope blocks render as a summary.
func (s Step) String() string {
	switch s.Kind() {
	case KindAppend:
		return "append " + *s.Append
	case KindDelete:
		return "delete " + strconv.Itoa(*s.Delete)
	case KindSet:
		return fmt.Sprintf("set %d %s", s.Set.Line, s.Set.Text)
	case KindUndo:
		return "undo " + strconv.Itoa(*s.Undo)
	case KindRedo:
		return "redo " + strconv.Itoa(*s.Redo)
	case KindReset:
		return "reset"
	case KindShow:
		return "show"
	case KindScope:
		return fmt.Sprintf("scope (%d steps)", len(s.Scope.Steps))
	default:
		return "invalid"
	}
}

// AppendStep returns a step appending text.
func AppendStep(text string) Step { return Step{Append: &text} }

// DeleteStep returns a step deleting line.
func DeleteStep(line int) Step { return Step{Delete: &line} }

// SetStep returns a step replacing line with text.
func SetStep(line int, text string) Step { return Step{Set: &SetArgs{Line: line, Text: text}} }

// UndoStep returns a step undoing count explicit commands.
func UndoStep(count int) Step { return Step{Undo: &count} }

// RedoStep returns a step redoing count explicit commands.
func RedoStep(count int) Step { return Step{Redo: &count} }

// ResetStep returns a step clearing the history.
func ResetStep() Step { return Step{Reset: true} }

// ShowStep returns a step printing the document and history.
func ShowStep() Step { return Step{Show: true} }

// ScopeStep returns a step running steps in their own scope.
func ScopeStep(keep bool, steps ...Step) Step {
	return Step{Scope: &ScopeBlock{Steps: steps, Keep: keep}}
}

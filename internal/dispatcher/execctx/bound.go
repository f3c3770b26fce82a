package execctx

import (
	"fmt"

	"github.com/dshills/cmdhistory/internal/command"
)

// ProduceFunc builds a ready-to-run undoable command from an invocation
// parameter.
type ProduceFunc func(param any) (command.Undoable, error)

// CanExecuteFunc reports whether a command may run with the given parameter.
type CanExecuteFunc func(param any) bool

// Runner executes commands; *Scope implements it.
type Runner interface {
	Execute(c command.Command) error
}

// BoundCommand is a parameterised action bound to a scope. Each invocation
// builds a concrete undoable command and runs it through the scope, so the
// result lands in the shared history and is retracted with the scope.
type BoundCommand struct {
	runner     Runner
	produce    ProduceFunc
	canExecute CanExecuteFunc
}

// NewBoundCommand binds produce to runner. canExecute may be nil, meaning
// the command can always execute.
func NewBoundCommand(runner Runner, produce ProduceFunc, canExecute CanExecuteFunc) (*BoundCommand, error) {
	if runner == nil {
		return nil, fmt.Errorf("%w: runner", command.ErrArgumentRequired)
	}
	if produce == nil {
		return nil, fmt.Errorf("%w: produce", command.ErrArgumentRequired)
	}
	return &BoundCommand{
		runner:     runner,
		produce:    produce,
		canExecute: canExecute,
	}, nil
}

// CanExecute reports whether the command may run with param.
func (b *BoundCommand) CanExecute(param any) bool {
	return b.canExecute == nil || b.canExecute(param)
}

// Execute builds the command for param and runs it through the scope.
func (b *BoundCommand) Execute(param any) error {
	cmd, err := b.produce(param)
	if err != nil {
		return fmt.Errorf("produce command: %w", err)
	}
	if cmd == nil {
		return fmt.Errorf("produce command: %w", command.ErrArgumentRequired)
	}
	return b.runner.Execute(cmd)
}

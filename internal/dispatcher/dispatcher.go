package dispatcher

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/cmdhistory/internal/command"
	"github.com/dshills/cmdhistory/internal/engine/history"
)

// Stack is the undo/redo storage used by a Dispatcher.
// *history.Stack[command.Undoable] implements it.
type Stack interface {
	AddItem(item command.Undoable)
	Undo() (command.Undoable, bool)
	Redo() (command.Undoable, bool)
	UndoItems() history.View[command.Undoable]
	RedoItems() history.View[command.Undoable]
	CanUndo() bool
	CanRedo() bool
	CleanUp(items ...command.Undoable)
	Reset()
}

// Dispatcher executes commands and drives undo and redo against a Stack.
// Several dispatchers may share one stack to share one history.
//
// A Dispatcher is not safe for concurrent use; callers that need it must
// serialize access to the dispatcher and its stack together.
type Dispatcher struct {
	stack  Stack
	config Config
	logger zerolog.Logger

	metrics   *Metrics
	observers []*Subscription
}

// New creates a dispatcher over stack.
func New(stack Stack, config Config) *Dispatcher {
	d := &Dispatcher{
		stack:  stack,
		config: config,
		logger: config.Logger.With().Str("component", "dispatcher").Logger(),
	}

	if config.EnableMetrics {
		d.metrics = NewMetrics()
	}

	return d
}

// NewWithDefaults creates a dispatcher over stack with default configuration.
func NewWithDefaults(stack Stack) *Dispatcher {
	return New(stack, DefaultConfig())
}

// Execute runs c. An undoable command is added to the history before it
// runs, and stays there even if it fails. The command's error is returned
// unchanged. An undoable command of an incomparable type is rejected with
// ErrIncomparableCommand before it runs.
func (d *Dispatcher) Execute(c command.Command) error {
	if c == nil {
		return ErrNilCommand
	}
	start := time.Now()

	if u, ok := command.AsUndoable(c); ok {
		if !command.Comparable(u) {
			return fmt.Errorf("%w: %T", ErrIncomparableCommand, u)
		}
		d.stack.AddItem(u)
	}

	if err := c.Execute(); err != nil {
		d.recordMetrics(command.OpExecute, start, err)
		d.logger.Debug().Err(err).Str("command", command.Describe(c)).Msg("execute failed")
		return err
	}

	d.recordMetrics(command.OpExecute, start, nil)
	return d.notify(c, command.OpExecute)
}

// Undo reverses count explicit commands. Implicit commands undone along the
// way do not count toward count. Returns ErrNothingToUndo if the history runs
// out first; commands already undone stay undone.
func (d *Dispatcher) Undo(count int) error {
	for done := 0; done < count; {
		start := time.Now()

		cmd, ok := d.stack.Undo()
		if !ok {
			d.recordMetrics(command.OpUndo, start, ErrNothingToUndo)
			return ErrNothingToUndo
		}

		if err := cmd.Undo(); err != nil {
			d.recordMetrics(command.OpUndo, start, err)
			d.logger.Debug().Err(err).Str("command", command.Describe(cmd)).Msg("undo failed")
			return err
		}

		d.recordMetrics(command.OpUndo, start, nil)
		if err := d.notify(cmd, command.OpUndo); err != nil {
			return err
		}

		if cmd.IsImplicit() {
			d.recordImplicit()
			continue
		}
		done++
	}
	return nil
}

// Redo re-applies count explicit commands. When the next pending redo item is
// implicit it is redone as part of the same step. Returns ErrNothingToRedo if
// the redo history runs out first.
func (d *Dispatcher) Redo(count int) error {
	for done := 0; done < count; {
		start := time.Now()

		cmd, ok := d.stack.Redo()
		if !ok {
			d.recordMetrics(command.OpRedo, start, ErrNothingToRedo)
			return ErrNothingToRedo
		}

		if err := cmd.Execute(); err != nil {
			d.recordMetrics(command.OpRedo, start, err)
			d.logger.Debug().Err(err).Str("command", command.Describe(cmd)).Msg("redo failed")
			return err
		}

		d.recordMetrics(command.OpRedo, start, nil)
		if err := d.notify(cmd, command.OpRedo); err != nil {
			return err
		}

		if next, ok := d.stack.RedoItems().Last(); ok && next.IsImplicit() {
			d.recordImplicit()
			continue
		}
		done++
	}
	return nil
}

// CanUndo returns true if the undo history holds at least one explicit command.
func (d *Dispatcher) CanUndo() bool {
	return hasExplicit(d.stack.UndoItems())
}

// CanRedo returns true if the redo history holds at least one explicit command.
func (d *Dispatcher) CanRedo() bool {
	return hasExplicit(d.stack.RedoItems())
}

func hasExplicit(items history.View[command.Undoable]) bool {
	for _, c := range items.Backward() {
		if !c.IsImplicit() {
			return true
		}
	}
	return false
}

// UndoItems returns a live view of the undo history, oldest first.
func (d *Dispatcher) UndoItems() history.View[command.Undoable] {
	return d.stack.UndoItems()
}

// RedoItems returns a live view of the redo history, oldest first.
func (d *Dispatcher) RedoItems() history.View[command.Undoable] {
	return d.stack.RedoItems()
}

// CleanUp removes the given commands from the history, wherever they are.
// Non-undoable and incomparable commands are ignored; Execute never lets the
// latter into the history.
func (d *Dispatcher) CleanUp(cmds ...command.Command) error {
	start := time.Now()

	undoable := make([]command.Undoable, 0, len(cmds))
	for _, c := range cmds {
		if u, ok := command.AsUndoable(c); ok && command.Comparable(u) {
			undoable = append(undoable, u)
		}
	}
	d.stack.CleanUp(undoable...)

	d.recordMetrics(command.OpCleanup, start, nil)
	return d.notify(nil, command.OpCleanup)
}

// Reset clears the whole history.
func (d *Dispatcher) Reset() error {
	start := time.Now()
	d.stack.Reset()
	d.recordMetrics(command.OpCleanup, start, nil)
	return d.notify(nil, command.OpCleanup)
}

// Metrics returns the metrics collector, or nil if metrics are disabled.
func (d *Dispatcher) Metrics() *Metrics {
	return d.metrics
}

// Config returns the dispatcher configuration.
func (d *Dispatcher) Config() Config {
	return d.config
}

// notify logs the operation and delivers it to observers.
func (d *Dispatcher) notify(c command.Command, op command.Operation) error {
	rec := command.Record{
		Command: c,
		Op:      op,
		CanUndo: d.stack.CanUndo(),
		CanRedo: d.stack.CanRedo(),
	}

	d.logger.Debug().
		Stringer("op", op).
		Str("command", command.Describe(c)).
		Bool("can_undo", rec.CanUndo).
		Bool("can_redo", rec.CanRedo).
		Msg("operation completed")

	return d.runObservers(rec)
}

func (d *Dispatcher) recordMetrics(op command.Operation, start time.Time, err error) {
	if d.metrics != nil {
		d.metrics.RecordOperation(op, time.Since(start), err)
	}
}

func (d *Dispatcher) recordImplicit() {
	if d.metrics != nil {
		d.metrics.RecordImplicit()
	}
}

// Package execctx provides execution scopes: short-lived groupings of
// commands that can later be retracted from the history as a unit.
//
// A Scope forwards commands to a dispatcher and remembers each one. Closing
// the scope removes exactly those commands from both the undo and the redo
// history, wherever they currently sit, without touching commands executed
// through other scopes:
//
//	scope := execctx.New(d)
//	defer scope.Close()
//
//	scope.Execute(cmd)
//
// Run wraps the same pattern and guarantees Close on every exit path.
package execctx

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dshills/cmdhistory/internal/command"
)

// Executor is the part of a dispatcher a scope needs.
// *dispatcher.Dispatcher implements it.
type Executor interface {
	Execute(c command.Command) error
	CleanUp(cmds ...command.Command) error
}

// Option configures a Scope.
type Option func(*Scope)

// WithLogger sets the logger used to report swallowed failures.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Scope) {
		s.logger = l
	}
}

// WithStrictErrors makes Execute return dispatcher failures instead of
// logging and swallowing them.
func WithStrictErrors() Option {
	return func(s *Scope) {
		s.strict = true
	}
}

// Scope records the commands executed through it and removes them from the
// history on Close. A Scope is not safe for concurrent use.
type Scope struct {
	id       string
	executor Executor
	logger   zerolog.Logger
	strict   bool

	executed []command.Command
	closed   bool
}

// New creates a scope bound to ex.
func New(ex Executor, opts ...Option) *Scope {
	s := &Scope{
		id:       uuid.NewString(),
		executor: ex,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.With().
		Str("component", "execctx").
		Str("scope_id", s.id).
		Logger()
	return s
}

// ID returns the unique scope identifier.
func (s *Scope) ID() string {
	return s.id
}

// Execute records c and forwards it to the executor.
//
// By default a failure from the executor (including the command's own error)
// is logged and swallowed so the rest of a batch can proceed; the command is
// still recorded. With WithStrictErrors the failure is returned.
func (s *Scope) Execute(c command.Command) error {
	if s.closed {
		return ErrScopeClosed
	}

	s.executed = append(s.executed, c)

	if err := s.executor.Execute(c); err != nil {
		if s.strict {
			return err
		}
		s.logger.Error().
			Err(err).
			Str("command", command.Describe(c)).
			Msg("command failed in scope")
	}
	return nil
}

// Commands returns the commands executed through the scope, in order.
func (s *Scope) Commands() []command.Command {
	out := make([]command.Command, len(s.executed))
	copy(out, s.executed)
	return out
}

// Len returns the number of commands executed through the scope.
func (s *Scope) Len() int {
	return len(s.executed)
}

// IsClosed returns true once Close has been called.
func (s *Scope) IsClosed() bool {
	return s.closed
}

// Close removes every command executed through the scope from the history
// and makes the scope unusable. Safe to call multiple times; only the first
// call has effect.
func (s *Scope) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	s.logger.Debug().Int("commands", len(s.executed)).Msg("closing scope")

	if err := s.executor.CleanUp(s.executed...); err != nil {
		return fmt.Errorf("close scope %s: %w", s.id, err)
	}
	return nil
}

// Run creates a scope, passes it to fn and closes it when fn returns or
// panics. Errors from fn and Close are joined.
func Run(ex Executor, fn func(*Scope) error, opts ...Option) (err error) {
	s := New(ex, opts...)
	defer func() {
		err = errors.Join(err, s.Close())
	}()
	return fn(s)
}

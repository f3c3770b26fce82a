// Package app wires the cmdhistory components together: one shared history,
// one dispatcher over it, the document being edited, and the execution
// scopes handed out to callers.
package app

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"

	"github.com/dshills/cmdhistory/internal/command"
	"github.com/dshills/cmdhistory/internal/config"
	"github.com/dshills/cmdhistory/internal/dispatcher"
	"github.com/dshills/cmdhistory/internal/dispatcher/execctx"
	"github.com/dshills/cmdhistory/internal/engine/history"
	"github.com/dshills/cmdhistory/internal/logging"
)

// App is the composition root. It is not safe for concurrent use.
type App struct {
	cfg        config.Config
	logger     zerolog.Logger
	stack      *history.Stack[command.Undoable]
	dispatcher *dispatcher.Dispatcher
	document   *Document
}

type options struct {
	logger    *zerolog.Logger
	logOutput io.Writer
	document  *Document
}

// Option configures an App.
type Option func(*options)

// WithLogger uses l instead of building a logger from the configuration.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) {
		o.logger = &l
	}
}

// WithLogOutput directs the configured logger to w.
func WithLogOutput(w io.Writer) Option {
	return func(o *options) {
		o.logOutput = w
	}
}

// WithDocument starts the app with doc instead of an empty document.
func WithDocument(doc *Document) Option {
	return func(o *options) {
		o.document = doc
	}
}

// New validates cfg and builds an App from it.
func New(cfg config.Config, opts ...Option) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	var logger zerolog.Logger
	if o.logger != nil {
		logger = *o.logger
	} else {
		logCfg := logging.DefaultConfig()
		logCfg.Level = cfg.Logging.Level
		logCfg.Pretty = cfg.Logging.Pretty
		if o.logOutput != nil {
			logCfg.Output = o.logOutput
		}
		logger = logging.New(logCfg)
	}

	doc := o.document
	if doc == nil {
		doc = NewDocument()
	}

	stack := history.NewStack[command.Undoable](cfg.History.MaxSize)
	d := dispatcher.New(stack, dispatcher.DefaultConfig().
		WithLogger(logger).
		WithMetrics())

	logger.Debug().
		Int("max_size", stack.MaxSize()).
		Bool("strict_scopes", cfg.Scope.Strict).
		Msg("history ready")

	return &App{
		cfg:        cfg,
		logger:     logger,
		stack:      stack,
		dispatcher: d,
		document:   doc,
	}, nil
}

// Config returns the configuration the app was built from.
func (a *App) Config() config.Config {
	return a.cfg
}

// Logger returns the application logger.
func (a *App) Logger() zerolog.Logger {
	return a.logger
}

// Dispatcher returns the dispatcher over the shared history.
func (a *App) Dispatcher() *dispatcher.Dispatcher {
	return a.dispatcher
}

// History returns the shared undo/redo stack.
func (a *App) History() *history.Stack[command.Undoable] {
	return a.stack
}

// Document returns the document being edited.
func (a *App) Document() *Document {
	return a.document
}

// NewScope opens an execution scope over the shared history. Scopes are
// strict when the configuration says so.
func (a *App) NewScope() *execctx.Scope {
	return execctx.New(a.dispatcher, a.scopeOptions()...)
}

// RunScope runs fn inside a fresh scope and closes it afterwards.
func (a *App) RunScope(fn func(*execctx.Scope) error) error {
	return execctx.Run(a.dispatcher, fn, a.scopeOptions()...)
}

func (a *App) scopeOptions() []execctx.Option {
	opts := []execctx.Option{execctx.WithLogger(a.logger)}
	if a.cfg.Scope.Strict {
		opts = append(opts, execctx.WithStrictErrors())
	}
	return opts
}

// Checker is implemented by edits that can tell up front whether they
// apply to the current document.
type Checker interface {
	Check() error
}

// Edit runs an edit through r and, if it succeeds, the implicit
// MarkModified that rides along with it. An edit that fails its Check is
// not run at all.
func (a *App) Edit(r execctx.Runner, edit command.Undoable) error {
	if c, ok := edit.(Checker); ok {
		if err := c.Check(); err != nil {
			return err
		}
	}
	if err := r.Execute(edit); err != nil {
		return err
	}
	return r.Execute(NewMarkModified(a.document))
}

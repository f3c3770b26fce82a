package script

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/dshills/cmdhistory/internal/app"
	"github.com/dshills/cmdhistory/internal/command"
	"github.com/dshills/cmdhistory/internal/dispatcher"
	"github.com/dshills/cmdhistory/internal/dispatcher/execctx"
	"github.com/dshills/cmdhistory/internal/ui"
)

// Interpreter executes steps against an app.
type Interpreter struct {
	app    *app.App
	out    io.Writer
	logger zerolog.Logger
}

// NewInterpreter creates an interpreter writing show output to out.
func NewInterpreter(a *app.App, out io.Writer) *Interpreter {
	return &Interpreter{
		app:    a,
		out:    out,
		logger: a.Logger().With().Str("component", "script").Logger(),
	}
}

// App returns the app the interpreter drives.
func (in *Interpreter) App() *app.App {
	return in.app
}

// Run executes the steps of s in order and stops at the first failure.
// ctx is checked between steps.
func (in *Interpreter) Run(ctx context.Context, s *Script) error {
	in.logger.Debug().Str("script", s.Name).Int("steps", len(s.Steps)).Msg("running script")

	for i, step := range s.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := in.Exec(in.app.Dispatcher(), step); err != nil {
			return fmt.Errorf("step %d (%s): %w", i+1, step, err)
		}
	}
	return nil
}

// Exec executes one step. Edits go through r, which is the dispatcher or an
// open scope; history operations always go to the dispatcher.
func (in *Interpreter) Exec(r execctx.Runner, step Step) error {
	doc := in.app.Document()
	d := in.app.Dispatcher()

	switch step.Kind() {
	case KindAppend:
		return in.app.Edit(r, app.NewAppendLine(doc, *step.Append))
	case KindDelete:
		return in.app.Edit(r, app.NewDeleteLine(doc, *step.Delete))
	case KindSet:
		return in.app.Edit(r, app.NewSetLine(doc, step.Set.Line, step.Set.Text))
	case KindUndo:
		return d.Undo(*step.Undo)
	case KindRedo:
		return d.Redo(*step.Redo)
	case KindReset:
		return d.Reset()
	case KindShow:
		in.Show()
		return nil
	case KindScope:
		return in.runScope(step.Scope)
	default:
		return step.Validate()
	}
}

func (in *Interpreter) runScope(block *ScopeBlock) error {
	body := func(s *execctx.Scope) error {
		for i, step := range block.Steps {
			if err := in.Exec(s, step); err != nil {
				return fmt.Errorf("scope step %d (%s): %w", i+1, step, err)
			}
		}
		return nil
	}

	if block.Keep {
		return body(in.app.NewScope())
	}
	return in.app.RunScope(body)
}

// Show writes the document and the history state.
func (in *Interpreter) Show() {
	fmt.Fprint(in.out, RenderDocument(in.app.Document()))
	fmt.Fprint(in.out, RenderHistory(in.app.Dispatcher()))
}

// RenderDocument formats doc with line numbers.
func RenderDocument(doc *app.Document) string {
	var b strings.Builder

	state := ui.RenderPass("saved")
	if doc.IsModified() {
		state = ui.RenderWarn("modified")
	}
	fmt.Fprintf(&b, "%s %s\n", ui.RenderHeader(fmt.Sprintf("document (%d lines)", doc.Len())), state)

	width := len(strconv.Itoa(max(doc.Len()-1, 0)))
	for i, line := range doc.Lines() {
		num := fmt.Sprintf("%*d", width, i)
		fmt.Fprintf(&b, "%s%s%s\n", ui.RenderMuted(num), ui.RenderMuted(ui.Gutter), line)
	}
	return b.String()
}

// RenderHistory formats the undo and redo histories of d, newest first.
func RenderHistory(d *dispatcher.Dispatcher) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", ui.RenderHeader("undo"), availability(d.CanUndo()))
	for _, c := range d.UndoItems().Backward() {
		b.WriteString(renderItem(c))
	}
	fmt.Fprintf(&b, "%s %s\n", ui.RenderHeader("redo"), availability(d.CanRedo()))
	for _, c := range d.RedoItems().Backward() {
		b.WriteString(renderItem(c))
	}
	return b.String()
}

func availability(ok bool) string {
	if ok {
		return ui.RenderPass(ui.IconPass)
	}
	return ui.RenderMuted("-")
}

func renderItem(c command.Undoable) string {
	name := command.Describe(c)
	if c.IsImplicit() {
		return "  " + ui.RenderMuted(name+" (implicit)") + "\n"
	}
	return "  " + ui.RenderAccent(name) + "\n"
}

// RenderStats formats dispatcher metrics. It returns an empty string when
// metrics are disabled.
func RenderStats(m *dispatcher.Metrics) string {
	if m == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(ui.RenderHeader("operations") + "\n")
	for _, op := range []command.Operation{command.OpExecute, command.OpUndo, command.OpRedo, command.OpCleanup} {
		stats := m.Stats(op)
		if stats == nil {
			continue
		}
		line := fmt.Sprintf("  %-8s %d", op, stats.Count)
		if stats.ErrorCount > 0 {
			line += " " + ui.RenderFail(fmt.Sprintf("(%d failed)", stats.ErrorCount))
		}
		b.WriteString(line + "\n")
	}
	fmt.Fprintf(&b, "  %-8s %d\n", "implicit", m.ImplicitSteps())
	fmt.Fprintf(&b, "  %-8s %s\n", "time", m.TotalDuration().Round(time.Microsecond))
	return b.String()
}

package script

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cmdhistory/internal/app"
	"github.com/dshills/cmdhistory/internal/config"
	"github.com/dshills/cmdhistory/internal/dispatcher"
	"github.com/dshills/cmdhistory/internal/logging"
)

func newInterpreter(t *testing.T, lines ...string) (*Interpreter, *bytes.Buffer) {
	t.Helper()
	a, err := app.New(config.Default(),
		app.WithLogger(logging.Nop()),
		app.WithDocument(app.NewDocument(lines...)))
	require.NoError(t, err)

	var out bytes.Buffer
	return NewInterpreter(a, &out), &out
}

func TestRun_EditsAndHistory(t *testing.T) {
	in, _ := newInterpreter(t, "alpha", "beta")
	doc := in.App().Document()

	err := in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("gamma"),
		SetStep(0, "ALPHA"),
		DeleteStep(1),
	}})
	require.NoError(t, err)
	assert.Equal(t, []string{"ALPHA", "gamma"}, doc.Lines())

	require.NoError(t, in.Run(context.Background(), &Script{Steps: []Step{UndoStep(2)}}))
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, doc.Lines())

	require.NoError(t, in.Run(context.Background(), &Script{Steps: []Step{RedoStep(1)}}))
	assert.Equal(t, []string{"ALPHA", "beta", "gamma"}, doc.Lines())
	assert.True(t, in.App().Dispatcher().CanRedo())
}

func TestRun_StopsAtFirstFailure(t *testing.T) {
	in, _ := newInterpreter(t, "only")

	err := in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("one"),
		DeleteStep(9),
		AppendStep("never"),
	}})

	assert.ErrorIs(t, err, app.ErrLineOutOfRange)
	assert.ErrorContains(t, err, "step 2 (delete 9)")
	assert.Equal(t, []string{"only", "one"}, in.App().Document().Lines())
}

func TestRun_UndoPastStart(t *testing.T) {
	in, _ := newInterpreter(t)

	err := in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("x"),
		UndoStep(2),
	}})

	assert.ErrorIs(t, err, dispatcher.ErrNothingToUndo)
	assert.Empty(t, in.App().Document().Lines(), "the available step was still undone")
}

func TestRun_Cancelled(t *testing.T) {
	in, _ := newInterpreter(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := in.Run(ctx, &Script{Steps: []Step{AppendStep("x")}})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, in.App().Document().Len())
}

func TestRun_ScopeRetractsHistory(t *testing.T) {
	in, _ := newInterpreter(t)
	hist := in.App().History()

	err := in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("kept"),
		ScopeStep(false, AppendStep("scoped one"), AppendStep("scoped two")),
	}})
	require.NoError(t, err)

	assert.Equal(t, []string{"kept", "scoped one", "scoped two"}, in.App().Document().Lines())
	assert.Equal(t, 2, hist.UndoItems().Len(), "only the unscoped edit and its companion remain")

	require.NoError(t, in.Exec(in.App().Dispatcher(), UndoStep(1)))
	assert.Equal(t, []string{"scoped one", "scoped two"}, in.App().Document().Lines(),
		"undo removes the line the remaining command inserted")
}

func TestRun_KeptScope(t *testing.T) {
	in, _ := newInterpreter(t)

	err := in.Run(context.Background(), &Script{Steps: []Step{
		ScopeStep(true, AppendStep("a")),
	}})
	require.NoError(t, err)

	assert.Equal(t, 2, in.App().History().UndoItems().Len())
}

func TestRun_ScopeFailureStillCloses(t *testing.T) {
	a, err := app.New(func() config.Config {
		cfg := config.Default()
		cfg.Scope.Strict = true
		return cfg
	}(), app.WithLogger(logging.Nop()))
	require.NoError(t, err)
	in := NewInterpreter(a, &bytes.Buffer{})

	err = in.Run(context.Background(), &Script{Steps: []Step{
		ScopeStep(false, AppendStep("a"), SetStep(5, "x")),
	}})

	assert.ErrorIs(t, err, app.ErrLineOutOfRange)
	assert.ErrorContains(t, err, "scope step 2")
	assert.Equal(t, 0, a.History().UndoItems().Len())
}

func TestRun_Reset(t *testing.T) {
	in, _ := newInterpreter(t)

	err := in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("a"),
		UndoStep(1),
		AppendStep("b"),
		ResetStep(),
	}})
	require.NoError(t, err)

	d := in.App().Dispatcher()
	assert.False(t, d.CanUndo())
	assert.False(t, d.CanRedo())
	assert.Equal(t, []string{"b"}, in.App().Document().Lines())
}

func TestExec_InvalidStep(t *testing.T) {
	in, _ := newInterpreter(t)

	assert.ErrorIs(t, in.Exec(in.App().Dispatcher(), Step{}), ErrEmptyStep)
}

func TestShow(t *testing.T) {
	in, out := newInterpreter(t, "alpha")

	require.NoError(t, in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("beta"),
		ShowStep(),
	}}))

	text := out.String()
	assert.Contains(t, text, "document (2 lines)")
	assert.Contains(t, text, "modified")
	assert.Contains(t, text, "0 │ alpha")
	assert.Contains(t, text, "1 │ beta")
	assert.Contains(t, text, `append "beta"`)
	assert.Contains(t, text, "mark modified (implicit)")

	undoAt := strings.Index(text, "undo")
	redoAt := strings.Index(text, "redo")
	assert.Less(t, undoAt, redoAt)
}

func TestRenderStats(t *testing.T) {
	in, _ := newInterpreter(t)
	require.NoError(t, in.Run(context.Background(), &Script{Steps: []Step{
		AppendStep("a"),
		UndoStep(1),
	}}))

	text := RenderStats(in.App().Dispatcher().Metrics())

	assert.Contains(t, text, "execute")
	assert.Contains(t, text, "undo")
	assert.Contains(t, text, "implicit")
	assert.Empty(t, RenderStats(nil))
}

package dispatcher_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/cmdhistory/internal/command"
	"github.com/dshills/cmdhistory/internal/dispatcher"
	"github.com/dshills/cmdhistory/internal/engine/history"
)

// valueObject is nothing more than an object holding a number.
type valueObject struct {
	number int
}

type addOneCommand struct {
	obj      *valueObject
	implicit bool
}

func (c *addOneCommand) Execute() error   { c.obj.number++; return nil }
func (c *addOneCommand) Undo() error      { c.obj.number--; return nil }
func (c *addOneCommand) IsImplicit() bool { return c.implicit }

func newHandler(t *testing.T) (*dispatcher.Dispatcher, *history.Stack[command.Undoable]) {
	t.Helper()
	stack := history.NewStack[command.Undoable](0)
	return dispatcher.NewWithDefaults(stack), stack
}

func TestUndoAndRedoActions(t *testing.T) {
	d, _ := newHandler(t)
	obj := &valueObject{number: 1}

	require.NoError(t, d.Execute(&addOneCommand{obj: obj}))
	assert.Equal(t, 2, obj.number)

	require.NoError(t, d.Undo(1))
	assert.Equal(t, 1, obj.number)

	require.NoError(t, d.Redo(1))
	assert.Equal(t, 2, obj.number)
}

func TestLimitsAmountOfUndoableOperations(t *testing.T) {
	d, stack := newHandler(t)

	for i := 0; i < stack.MaxSize()+10; i++ {
		require.NoError(t, d.Execute(&addOneCommand{obj: &valueObject{}}))
	}

	assert.Equal(t, stack.MaxSize(), d.UndoItems().Len())
}

func TestUndoingTooOftenFails(t *testing.T) {
	d, _ := newHandler(t)
	obj := &valueObject{}
	require.NoError(t, d.Execute(&addOneCommand{obj: obj}))

	require.NoError(t, d.Undo(1))
	assert.Equal(t, 0, obj.number)

	assert.ErrorIs(t, d.Undo(1), dispatcher.ErrNothingToUndo)
}

func TestEmptyLayersHaveDifferentContracts(t *testing.T) {
	d, stack := newHandler(t)

	item, ok := stack.Undo()
	assert.False(t, ok)
	assert.Nil(t, item)

	assert.ErrorIs(t, d.Undo(1), dispatcher.ErrNothingToUndo)
	assert.ErrorIs(t, d.Redo(1), dispatcher.ErrNothingToRedo)
}

func TestUndoAndRedoMultipleLevels(t *testing.T) {
	d, _ := newHandler(t)
	obj := &valueObject{}

	for i := 0; i < 5; i++ {
		require.NoError(t, d.Execute(&addOneCommand{obj: obj}))
	}
	assert.Equal(t, 5, obj.number)

	require.NoError(t, d.Undo(3))
	assert.Equal(t, 2, obj.number)

	require.NoError(t, d.Redo(2))
	assert.Equal(t, 4, obj.number)
}

func TestItemCounts(t *testing.T) {
	d, _ := newHandler(t)
	assert.Equal(t, 0, d.UndoItems().Len())
	assert.Equal(t, 0, d.RedoItems().Len())

	for i := 0; i < 3; i++ {
		require.NoError(t, d.Execute(&testCommand{}))
	}
	assert.Equal(t, 3, d.UndoItems().Len())

	require.NoError(t, d.Undo(1))
	require.NoError(t, d.Undo(1))
	assert.Equal(t, 1, d.UndoItems().Len())
	assert.Equal(t, 2, d.RedoItems().Len())
}

func TestFailedCommandStaysOnStack(t *testing.T) {
	d, _ := newHandler(t)
	cmd := &testCommand{failExecute: errors.New("boom")}

	require.Error(t, d.Execute(cmd))

	require.Equal(t, 1, d.UndoItems().Len())
	assert.Same(t, cmd, d.UndoItems().At(0))

	require.NoError(t, d.Undo(1))
	assert.Equal(t, 1, cmd.undone)
}

func TestUndoFailureLeavesCommandOnRedo(t *testing.T) {
	d, _ := newHandler(t)
	cmd := &testCommand{failUndo: errors.New("boom")}
	require.NoError(t, d.Execute(cmd))

	require.Error(t, d.Undo(1))

	assert.Equal(t, 0, d.UndoItems().Len())
	assert.Equal(t, 1, d.RedoItems().Len())
}

// Implicit command tests

func TestUndoSkipsImplicitCommand(t *testing.T) {
	d, _ := newHandler(t)
	x := &testCommand{}
	y := &testCommand{implicit: true}
	require.NoError(t, d.Execute(x))
	require.NoError(t, d.Execute(y))

	require.NoError(t, d.Undo(1))

	assert.Equal(t, 1, x.undone)
	assert.Equal(t, 1, y.undone)
	assert.Equal(t, 0, d.UndoItems().Len())
	assert.Equal(t, 2, d.RedoItems().Len())
}

func TestUndoImplicitReducesUndoCountByTwo(t *testing.T) {
	d, _ := newHandler(t)
	first := &testCommand{}
	require.NoError(t, d.Execute(first))
	require.NoError(t, d.Execute(&testCommand{}))
	require.NoError(t, d.Execute(&testCommand{implicit: true}))
	before := d.UndoItems().Len()

	require.NoError(t, d.Undo(1))

	assert.Equal(t, before-2, d.UndoItems().Len())
	top, ok := d.UndoItems().Last()
	require.True(t, ok)
	assert.Same(t, first, top)
}

func TestRedoCarriesImplicitCommand(t *testing.T) {
	d, _ := newHandler(t)
	x := &testCommand{}
	y := &testCommand{implicit: true}
	z := &testCommand{}
	for _, c := range []*testCommand{x, y, z} {
		require.NoError(t, d.Execute(c))
	}

	require.NoError(t, d.Undo(2))
	assert.Equal(t, 0, d.UndoItems().Len())

	require.NoError(t, d.Redo(1))

	assert.Equal(t, 2, x.executed)
	assert.Equal(t, 2, y.executed)
	assert.Equal(t, 1, z.executed)
	assert.Equal(t, []command.Undoable{x, y}, d.UndoItems().Slice())
	assert.Equal(t, []command.Undoable{z}, d.RedoItems().Slice())

	require.NoError(t, d.Redo(1))
	assert.Equal(t, 2, z.executed)
	assert.False(t, d.CanRedo())
}

func TestImplicitChainRidesAlong(t *testing.T) {
	d, _ := newHandler(t)
	obj := &valueObject{}
	require.NoError(t, d.Execute(&addOneCommand{obj: obj}))
	require.NoError(t, d.Execute(&addOneCommand{obj: obj, implicit: true}))
	require.NoError(t, d.Execute(&addOneCommand{obj: obj, implicit: true}))
	require.NoError(t, d.Execute(&addOneCommand{obj: obj}))

	require.NoError(t, d.Undo(1))
	assert.Equal(t, 3, obj.number)

	require.NoError(t, d.Undo(1))
	assert.Equal(t, 0, obj.number)

	require.NoError(t, d.Redo(1))
	assert.Equal(t, 3, obj.number)
}

func TestCanUndoIgnoresImplicitOnlyHistory(t *testing.T) {
	d, stack := newHandler(t)
	require.NoError(t, d.Execute(&testCommand{implicit: true}))

	assert.True(t, stack.CanUndo())
	assert.False(t, d.CanUndo())

	require.NoError(t, d.Execute(&testCommand{}))
	assert.True(t, d.CanUndo())
}

func TestCanRedoIgnoresImplicitOnlyHistory(t *testing.T) {
	d, stack := newHandler(t)
	implicit := &testCommand{implicit: true}
	require.NoError(t, d.Execute(&testCommand{}))
	require.NoError(t, d.Execute(implicit))
	require.NoError(t, d.Undo(1))
	assert.True(t, d.CanRedo())

	require.NoError(t, d.CleanUp(d.RedoItems().At(1)))

	assert.True(t, stack.CanRedo())
	assert.False(t, d.CanRedo())
}

// Cleanup tests

func TestCleanUpRemovesFromBothSides(t *testing.T) {
	d, _ := newHandler(t)
	cmds := []*testCommand{{}, {}, {}, {}}
	for _, c := range cmds {
		require.NoError(t, d.Execute(c))
	}
	require.NoError(t, d.Undo(1))

	require.NoError(t, d.CleanUp(cmds[1], cmds[3]))

	assert.Equal(t, []command.Undoable{cmds[0], cmds[2]}, d.UndoItems().Slice())
	assert.Equal(t, 0, d.RedoItems().Len())
}

func TestResetClearsHistory(t *testing.T) {
	d, _ := newHandler(t)
	require.NoError(t, d.Execute(&testCommand{}))
	require.NoError(t, d.Execute(&testCommand{}))
	require.NoError(t, d.Undo(1))

	var last command.Record
	d.SubscribeFunc(func(rec command.Record) error {
		last = rec
		return nil
	})

	require.NoError(t, d.Reset())

	assert.False(t, d.CanUndo())
	assert.False(t, d.CanRedo())
	assert.Equal(t, command.OpCleanup, last.Op)
	assert.False(t, last.CanUndo)
	assert.False(t, last.CanRedo)
}

// Observer tests

func TestObserversRunInRegistrationOrder(t *testing.T) {
	d, _ := newHandler(t)

	var order []int
	for i := 1; i <= 3; i++ {
		d.SubscribeFunc(func(command.Record) error {
			order = append(order, i)
			return nil
		})
	}

	require.NoError(t, d.Execute(&testCommand{}))

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestRecordsSnapshotFlagsAfterOperation(t *testing.T) {
	d, _ := newHandler(t)
	var got []command.Record
	d.SubscribeFunc(func(rec command.Record) error {
		got = append(got, rec)
		return nil
	})

	require.NoError(t, d.Execute(&testCommand{}))
	require.NoError(t, d.Undo(1))
	require.NoError(t, d.Redo(1))

	require.Len(t, got, 3)
	assert.Equal(t, command.Record{Command: got[0].Command, Op: command.OpExecute, CanUndo: true, CanRedo: false}, got[0])
	assert.Equal(t, command.Record{Command: got[1].Command, Op: command.OpUndo, CanUndo: false, CanRedo: true}, got[1])
	assert.Equal(t, command.Record{Command: got[2].Command, Op: command.OpRedo, CanUndo: true, CanRedo: false}, got[2])
}

func TestImplicitUndoNotifiesEachCommand(t *testing.T) {
	d, _ := newHandler(t)
	x := &testCommand{}
	y := &testCommand{implicit: true}
	require.NoError(t, d.Execute(x))
	require.NoError(t, d.Execute(y))

	var undone []command.Command
	d.SubscribeFunc(func(rec command.Record) error {
		undone = append(undone, rec.Command)
		return nil
	})

	require.NoError(t, d.Undo(1))

	assert.Equal(t, []command.Command{y, x}, undone)
}

func TestObserverErrorPropagates(t *testing.T) {
	d, _ := newHandler(t)
	boom := errors.New("observer failed")
	laterCalled := false

	sub := d.SubscribeFunc(func(command.Record) error { return boom })
	d.SubscribeFunc(func(command.Record) error {
		laterCalled = true
		return nil
	})

	err := d.Execute(&testCommand{})

	require.ErrorIs(t, err, boom)
	var oe *dispatcher.ObserverError
	require.ErrorAs(t, err, &oe)
	assert.Equal(t, sub.ID(), oe.SubscriptionID)
	assert.Equal(t, command.OpExecute, oe.Op)
	assert.False(t, laterCalled)
	assert.Equal(t, 1, d.UndoItems().Len(), "operation itself completed")
}

func TestUnsubscribe(t *testing.T) {
	d, _ := newHandler(t)
	calls := 0
	sub := d.SubscribeFunc(func(command.Record) error {
		calls++
		return nil
	})
	assert.Equal(t, 1, d.ObserverCount())
	assert.True(t, sub.IsActive())
	assert.NotEmpty(t, sub.ID())

	require.NoError(t, d.Execute(&testCommand{}))
	assert.True(t, d.Unsubscribe(sub))
	assert.False(t, d.Unsubscribe(sub))
	require.NoError(t, d.Execute(&testCommand{}))

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, d.ObserverCount())
	assert.False(t, sub.IsActive())
}

func TestCancelDuringNotification(t *testing.T) {
	d, _ := newHandler(t)
	var second *dispatcher.Subscription
	secondCalls := 0

	d.SubscribeFunc(func(command.Record) error {
		second.Cancel()
		return nil
	})
	second = d.SubscribeFunc(func(command.Record) error {
		secondCalls++
		return nil
	})

	require.NoError(t, d.Execute(&testCommand{}))

	assert.Equal(t, 0, secondCalls)
	assert.Equal(t, 1, d.ObserverCount())
}

func TestSharedStackSharesHistory(t *testing.T) {
	stack := history.NewStack[command.Undoable](0)
	a := dispatcher.NewWithDefaults(stack)
	b := dispatcher.NewWithDefaults(stack)
	obj := &valueObject{}

	require.NoError(t, a.Execute(&addOneCommand{obj: obj}))
	require.NoError(t, b.Undo(1))

	assert.Equal(t, 0, obj.number)
	assert.True(t, a.CanRedo())
}

// Metrics tests

func TestMetrics(t *testing.T) {
	stack := history.NewStack[command.Undoable](0)
	d := dispatcher.New(stack, dispatcher.DefaultConfig().WithMetrics())
	m := d.Metrics()
	require.NotNil(t, m)

	require.NoError(t, d.Execute(&testCommand{}))
	require.NoError(t, d.Execute(&testCommand{implicit: true}))
	require.NoError(t, d.Undo(1))
	require.ErrorIs(t, d.Undo(1), dispatcher.ErrNothingToUndo)
	require.NoError(t, d.Redo(1))
	require.NoError(t, d.Reset())

	assert.Equal(t, uint64(2), m.Count(command.OpExecute))
	assert.Equal(t, uint64(3), m.Count(command.OpUndo))
	assert.Equal(t, uint64(2), m.Count(command.OpRedo))
	assert.Equal(t, uint64(1), m.Count(command.OpCleanup))
	assert.Equal(t, uint64(2), m.ImplicitSteps())
	assert.Equal(t, uint64(1), m.TotalErrors())

	stats := m.Stats(command.OpUndo)
	require.NotNil(t, stats)
	assert.Equal(t, uint64(1), stats.ErrorCount)

	m.Reset()
	assert.Equal(t, uint64(0), m.Count(command.OpExecute))
	assert.Nil(t, m.Stats(command.OpExecute))
}

// sliceCommand is an undoable value type that cannot be compared with ==.
type sliceCommand struct {
	steps []func()
}

func (c sliceCommand) Execute() error   { return nil }
func (c sliceCommand) Undo() error      { return nil }
func (c sliceCommand) IsImplicit() bool { return false }

func TestIncomparableCommandRejected(t *testing.T) {
	d, stack := newHandler(t)
	ran := false
	cmd := sliceCommand{steps: []func(){func() { ran = true }}}

	err := d.Execute(cmd)

	require.ErrorIs(t, err, dispatcher.ErrIncomparableCommand)
	assert.Contains(t, err.Error(), "sliceCommand")
	assert.Equal(t, 0, stack.UndoItems().Len())
	assert.False(t, ran)

	assert.NotPanics(t, func() {
		assert.NoError(t, d.CleanUp(cmd, &addOneCommand{obj: &valueObject{}}))
	})
}

// Package dispatcher executes commands and coordinates undo and redo.
//
// The Dispatcher sits between callers and a history.Stack. The stack only
// stores and moves commands; the dispatcher runs their behaviour, applies the
// implicit-command rule and tells observers what happened.
//
// # Execution
//
// When a command is executed:
//
//  1. If it is undoable (command.AsUndoable), it is pushed onto the stack
//  2. The command's Execute method runs
//  3. On success, observers receive an execute Record
//
// An undoable command that fails stays on the stack and its error is
// returned unchanged. Plain commands run but are never recorded.
//
// # Undo and Redo
//
// Undo(n) and Redo(n) perform n explicit steps. Implicit commands ride along
// with the explicit command they follow and do not count as a step:
//
//	d.Execute(insertLine)   // explicit
//	d.Execute(markModified) // implicit
//	d.Undo(1)               // undoes markModified, then insertLine
//
// An empty history is an error (ErrNothingToUndo, ErrNothingToRedo). Check
// CanUndo and CanRedo first; they ignore histories holding only implicit
// commands.
//
// # Observers
//
// Observers are called synchronously, in registration order, after every
// completed operation:
//
//	sub := d.SubscribeFunc(func(rec command.Record) error {
//	    fmt.Println(rec.Op, rec.CanUndo, rec.CanRedo)
//	    return nil
//	})
//	defer sub.Cancel()
//
// An observer error aborts delivery and is returned from the operation as an
// *ObserverError.
//
// # Cleanup
//
// CleanUp removes specific commands from both sides of the history and Reset
// removes everything; both notify observers with a cleanup Record. The
// execctx package uses CleanUp to retract a batch of commands when its scope
// closes.
package dispatcher

// Package command defines the units of work handled by the dispatcher.
//
// A Command is a plain, fire-and-forget action. A command that can also be
// reversed implements Undoable:
//
//	type Undoable interface {
//	    Command
//	    Undo() error
//	    IsImplicit() bool
//	}
//
// Only undoable commands are recorded in history. The dispatcher discovers the
// capability with AsUndoable; any type with the three methods qualifies.
//
// # Implicit Commands
//
// An implicit command augments the explicit command executed immediately
// before it (for example "mark document modified" after "insert line"). It is
// never targeted on its own by a user undo or redo: multi-step undo and redo
// treat it as riding along with its explicit neighbour.
//
// # Delegates
//
// Delegate wraps two closures as an undoable command:
//
//	cmd, err := command.NewDelegate(
//	    func() error { doc.Append("x"); return nil },
//	    func() error { return doc.RemoveLast() },
//	    command.WithLabel("Append x"),
//	)
//
// Stacks compare commands by identity, so undoable commands must be pointer
// types.
package command

// Package history provides the bounded undo/redo stack behind the command
// dispatcher.
//
// A Stack holds two ordered sequences, undo and redo, both oldest-first with
// the most recent item last ("top"). The stack only moves items around; it
// never runs command behaviour itself:
//
//	stack := history.NewStack[command.Undoable](20)
//
//	stack.AddItem(cmd)        // push onto undo, clear redo
//	item, ok := stack.Undo()  // move top of undo onto redo
//	item, ok = stack.Redo()   // move top of redo back onto undo
//
// # Capacity
//
// The undo sequence never holds more than MaxSize items. Adding to a full
// stack silently evicts the oldest undo item; an evicted item is gone for
// good. The capacity defaults to DefaultMaxSize and can only be changed
// before the first AddItem.
//
// # Views
//
// UndoItems and RedoItems return a View: a live, read-only projection of
// the backing sequence. A view reflects later mutations of the stack without
// being re-fetched.
//
// # Cleanup
//
// CleanUp removes specific items from both sequences by identity, wherever
// they currently sit, keeping the remaining items in order. Items are compared
// with ==, so store pointer types.
//
// A Stack is not safe for concurrent use.
package history

package command

// Operation identifies the kind of operation that has been performed.
type Operation int

const (
	// OpExecute is a first-time execution.
	OpExecute Operation = iota
	// OpUndo is the reversal of a recorded command.
	OpUndo
	// OpRedo is the re-application of an undone command.
	OpRedo
	// OpCleanup is the removal of commands from history, including a reset.
	OpCleanup
)

// String returns the operation name.
func (o Operation) String() string {
	switch o {
	case OpExecute:
		return "execute"
	case OpUndo:
		return "undo"
	case OpRedo:
		return "redo"
	case OpCleanup:
		return "cleanup"
	default:
		return "unknown"
	}
}

// Record describes a completed operation. It is delivered to observers.
type Record struct {
	// Command is the command involved. Nil for cleanup and reset.
	Command Command

	// Op is the kind of operation.
	Op Operation

	// CanUndo and CanRedo report whether the underlying stack holds any undo
	// or redo items after the operation.
	CanUndo bool
	CanRedo bool
}

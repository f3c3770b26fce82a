package script

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownCommand indicates a line names no known operation.
var ErrUnknownCommand = errors.New("script: unknown command")

// ParseLine parses one line of REPL syntax into a step:
//
//	append <text>
//	delete <line>
//	set <line> <text>
//	undo [count]
//	redo [count]
//	reset
//	show
//
// Counts default to 1. Text runs to the end of the line and keeps its inner
// spacing. Scope blocks have no single-line form.
func ParseLine(line string) (Step, error) {
	verb, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(verb) {
	case "append", "a":
		return AppendStep(rest), nil
	case "delete", "del", "d":
		n, err := parseInt("delete", rest)
		if err != nil {
			return Step{}, err
		}
		return DeleteStep(n), nil
	case "set", "s":
		lineArg, text, _ := strings.Cut(rest, " ")
		n, err := parseInt("set", lineArg)
		if err != nil {
			return Step{}, err
		}
		return SetStep(n, strings.TrimSpace(text)), nil
	case "undo", "u":
		n, err := parseCount("undo", rest)
		if err != nil {
			return Step{}, err
		}
		return UndoStep(n), nil
	case "redo", "r":
		n, err := parseCount("redo", rest)
		if err != nil {
			return Step{}, err
		}
		return RedoStep(n), nil
	case "reset":
		return ResetStep(), nil
	case "show", "ls":
		return ShowStep(), nil
	case "":
		return Step{}, ErrEmptyStep
	default:
		return Step{}, fmt.Errorf("%w: %q", ErrUnknownCommand, verb)
	}
}

func parseInt(op, s string) (int, error) {
	fields := strings.Fields(s)
	if len(fields) != 1 {
		return 0, fmt.Errorf("%w: %s needs a line number", ErrBadArgument, op)
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil || n < 0 {
		return 0, fmt.Errorf("%w: %s line %q", ErrBadArgument, op, fields[0])
	}
	return n, nil
}

func parseCount(op, s string) (int, error) {
	if s == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%w: %s count %q", ErrBadArgument, op, s)
	}
	return n, nil
}

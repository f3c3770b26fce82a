package script

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/cmdhistory/internal/dispatcher/execctx"
)

// ErrNoOpenScope indicates end or keep was used with no scope open.
var ErrNoOpenScope = errors.New("script: no open scope")

// Session runs REPL lines. Besides the ParseLine syntax it understands:
//
//	begin   open a scope; later edits run through it
//	end     close the innermost scope, retracting its commands
//	keep    leave the innermost scope without retracting its commands
//	stats   print operation counts; "stats reset" clears them
//	quit    end the session
//
// A comment starts at a '#' that begins the line, or at a lone '#' set off
// by whitespace. A '#' attached to a word, as in "issue #42", is text.
type Session struct {
	in     *Interpreter
	scopes []*execctx.Scope
}

// NewSession creates a session over in.
func NewSession(in *Interpreter) *Session {
	return &Session{in: in}
}

// Depth returns the number of open scopes.
func (s *Session) Depth() int {
	return len(s.scopes)
}

// Exec runs one line. quit is true when the line asks to end the session.
func (s *Session) Exec(line string) (quit bool, err error) {
	line = strings.TrimSpace(stripComment(line))

	switch strings.ToLower(line) {
	case "":
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	case "begin":
		s.scopes = append(s.scopes, s.in.App().NewScope())
		return false, nil
	case "end":
		scope, err := s.pop()
		if err != nil {
			return false, err
		}
		return false, scope.Close()
	case "keep":
		_, err := s.pop()
		return false, err
	case "stats":
		_, err := fmt.Fprint(s.in.out, RenderStats(s.in.App().Dispatcher().Metrics()))
		return false, err
	case "stats reset":
		if m := s.in.App().Dispatcher().Metrics(); m != nil {
			m.Reset()
		}
		return false, nil
	}

	step, err := ParseLine(line)
	if err != nil {
		return false, err
	}
	return false, s.in.Exec(s.runner(), step)
}

// Close closes every open scope, innermost first.
func (s *Session) Close() error {
	var errs []error
	for len(s.scopes) > 0 {
		scope, _ := s.pop()
		if err := scope.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Prompt returns the prompt for the current scope depth.
func (s *Session) Prompt() string {
	if len(s.scopes) == 0 {
		return "> "
	}
	return fmt.Sprintf("[%d]> ", len(s.scopes))
}

func (s *Session) runner() execctx.Runner {
	if len(s.scopes) == 0 {
		return s.in.App().Dispatcher()
	}
	return s.scopes[len(s.scopes)-1]
}

func (s *Session) pop() (*execctx.Scope, error) {
	if len(s.scopes) == 0 {
		return nil, ErrNoOpenScope
	}
	last := s.scopes[len(s.scopes)-1]
	s.scopes = s.scopes[:len(s.scopes)-1]
	return last, nil
}

// stripComment cuts line at the first '#' that begins the trimmed line or
// stands alone between blanks.
func stripComment(line string) string {
	line = strings.TrimLeft(line, " \t")
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || (isBlank(line[i-1]) && (i+1 == len(line) || isBlank(line[i+1]))) {
			return line[:i]
		}
	}
	return line
}

func isBlank(b byte) bool { return b == ' ' || b == '\t' }

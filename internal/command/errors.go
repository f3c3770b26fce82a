package command

import "errors"

// ErrArgumentRequired indicates a required constructor argument was nil.
var ErrArgumentRequired = errors.New("command: argument required")

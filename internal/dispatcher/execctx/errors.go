package execctx

import "errors"

// Scope errors.
var (
	// ErrScopeClosed indicates the scope was used after Close.
	ErrScopeClosed = errors.New("execution context: scope is closed")
)

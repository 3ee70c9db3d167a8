package lua

import "errors"

// Errors for Lua transform operations.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a call exceeds its time budget.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrUnknownFunction is returned when no global function has the name.
	ErrUnknownFunction = errors.New("unknown transform function")

	// ErrBadResult is returned when a function returns a table or function.
	ErrBadResult = errors.New("transform returned a non-text value")
)

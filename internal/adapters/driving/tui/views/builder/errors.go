package builder

import "errors"

// Error definitions for the builder view.
var (
	// ErrNoDispatcher indicates that no dispatcher was provided.
	ErrNoDispatcher = errors.New("dispatcher is required")
)

package tui

import "errors"

// ErrMissingBuilderService is returned when the builder service is not provided.
var ErrMissingBuilderService = errors.New("tui: builder service is required")

// ErrMissingDispatcher is returned when the command dispatcher is not provided.
var ErrMissingDispatcher = errors.New("tui: dispatcher is required")

// ErrInvalidPorts is returned when ports validation fails.
var ErrInvalidPorts = errors.New("tui: invalid ports configuration")

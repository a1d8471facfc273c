// Package mcp provides an MCP (Model Context Protocol) server adapter for folio.
// It lets AI assistants build and restyle the portfolio through the same
// command table the CLI and TUI use.
package mcp

import "errors"

// ErrMissingBuilderService is returned when the builder service is not provided.
var ErrMissingBuilderService = errors.New("mcp: builder service is required")

// ErrMissingDispatcher is returned when the command dispatcher is not provided.
var ErrMissingDispatcher = errors.New("mcp: dispatcher is required")

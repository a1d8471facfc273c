// Package domain defines the core business entities for folio.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Section: A typed content block of the portfolio
//   - Customization: The global theme record
//   - HistoryEntry: An immutable snapshot of sections and customization
//   - Command: A typed request routed through the dispatch table
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain

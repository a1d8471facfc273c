package mcp

import (
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the MCP server.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Builder exposes the live portfolio for reads.
	Builder driving.BuilderService

	// Dispatcher executes every mutating tool.
	Dispatcher driving.Dispatcher

	// Export renders the HTML resource.
	Export driving.ExportService

	// Templates lists the template catalogue.
	Templates driving.TemplateService
}

// Validate ensures all required ports are set.
// Returns an error if any required port is nil.
func (p *Ports) Validate() error {
	if p.Builder == nil {
		return ErrMissingBuilderService
	}
	if p.Dispatcher == nil {
		return ErrMissingDispatcher
	}
	// Export and Templates are optional
	return nil
}

// Package tui provides an interactive terminal user interface for folio.
// It implements a driving adapter following hexagonal architecture principles.
package tui

import (
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ports aggregates all driving port interfaces required by the TUI.
// This provides a single injection point for dependency injection.
type Ports struct {
	// Builder exposes the live portfolio state for rendering.
	Builder driving.BuilderService

	// Dispatcher executes every mutation the TUI issues.
	Dispatcher driving.Dispatcher

	// Export renders the text preview.
	Export driving.ExportService

	// Templates lists the template gallery.
	Templates driving.TemplateService

	// Settings supplies the default preview device.
	Settings driving.SettingsService
}

// NewPorts creates a new Ports aggregate with the required services.
func NewPorts(builder driving.BuilderService, dispatcher driving.Dispatcher) *Ports {
	return &Ports{
		Builder:    builder,
		Dispatcher: dispatcher,
	}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Builder == nil {
		return ErrMissingBuilderService
	}
	if p.Dispatcher == nil {
		return ErrMissingDispatcher
	}
	return nil
}

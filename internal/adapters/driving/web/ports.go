package web

import (
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ports aggregates the driving ports used by the preview server.
type Ports struct {
	// Builder exposes the live portfolio.
	Builder driving.BuilderService

	// Export renders HTML, previews and JSON.
	Export driving.ExportService

	// Share loads portfolios opened through a share link. Optional.
	Share driving.ShareService

	// Dispatcher accepts commands posted to /api/dispatch. Optional.
	Dispatcher driving.Dispatcher

	// DefaultDevice is used by /preview without a device.
	DefaultDevice domain.Device
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p.Builder == nil {
		return ErrMissingBuilderService
	}
	if p.Export == nil {
		return ErrMissingExportService
	}
	return nil
}

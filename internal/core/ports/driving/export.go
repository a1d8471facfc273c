package driving

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// ExportService renders and transfers the portfolio.
type ExportService interface {
	// RenderHTML renders the standalone HTML document for the current state.
	RenderHTML(ctx context.Context) ([]byte, error)

	// ExportHTML saves the portfolio, then writes the HTML document into dir
	// (the configured export dir when empty). Returns the written path.
	ExportHTML(ctx context.Context, dir string) (string, error)

	// ExportPDF is not available and always returns domain.ErrNotImplemented.
	ExportPDF(ctx context.Context) error

	// ExportJSON renders the JSON export document.
	ExportJSON(ctx context.Context) ([]byte, error)

	// ImportJSON replaces state from a JSON export document or persisted portfolio.
	ImportJSON(ctx context.Context, data []byte) error

	// RenderPreview renders a device frame page around the portfolio.
	RenderPreview(ctx context.Context, device domain.Device) ([]byte, error)

	// RenderMarkdown renders a Markdown rendition of the portfolio for text previews.
	RenderMarkdown(ctx context.Context) (string, error)
}

// ShareService encodes the portfolio into links and loads it back.
type ShareService interface {
	// Link returns the share link for the current state.
	Link(ctx context.Context) (string, error)

	// Load replaces state from a share link or bare payload.
	Load(ctx context.Context, link string) error

	// Decode parses a share link or bare payload without touching state.
	Decode(link string) (*domain.PersistedPortfolio, error)
}

// TemplateService lists the template catalogue.
type TemplateService interface {
	// List returns templates, optionally filtered by category ("" for all).
	List(ctx context.Context, category domain.TemplateCategory) ([]domain.Template, error)

	// Get returns one template.
	Get(ctx context.Context, id string) (*domain.Template, error)
}

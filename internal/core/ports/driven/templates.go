package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// TemplateCatalog provides ready-made portfolio templates.
type TemplateCatalog interface {
	// List returns every template in catalogue order.
	List(ctx context.Context) ([]domain.Template, error)

	// Get returns one template. Returns domain.ErrNotFound for unknown IDs.
	Get(ctx context.Context, id string) (*domain.Template, error)
}

package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// PortfolioStore persists saved portfolios under a string key.
// The builder uses the single key domain.StorageKey.
type PortfolioStore interface {
	// Save stores or replaces the portfolio under key.
	Save(ctx context.Context, key string, portfolio domain.PersistedPortfolio) error

	// Load retrieves the portfolio under key.
	// Returns domain.ErrNotFound if nothing was saved.
	Load(ctx context.Context, key string) (*domain.PersistedPortfolio, error)

	// Delete removes the portfolio under key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys lists every stored key.
	Keys(ctx context.Context) ([]string, error)
}

package driven

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// SessionStore persists the builder's working session (history log, cursor,
// selection) so undo and redo survive between process runs.
type SessionStore interface {
	// SaveSession replaces the stored session under key.
	SaveSession(ctx context.Context, key string, session domain.Session) error

	// LoadSession retrieves the session under key.
	// Returns domain.ErrNotFound if none exists.
	LoadSession(ctx context.Context, key string) (*domain.Session, error)

	// ClearSession removes the session under key.
	ClearSession(ctx context.Context, key string) error
}

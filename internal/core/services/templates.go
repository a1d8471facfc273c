package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ensure TemplateService implements the interface.
var _ driving.TemplateService = (*TemplateService)(nil)

// TemplateService lists the template catalogue.
type TemplateService struct {
	catalog driven.TemplateCatalog
}

// NewTemplateService creates a template service.
func NewTemplateService(catalog driven.TemplateCatalog) *TemplateService {
	return &TemplateService{catalog: catalog}
}

// List returns templates in catalogue order, optionally filtered by category.
func (s *TemplateService) List(ctx context.Context, category domain.TemplateCategory) ([]domain.Template, error) {
	if s.catalog == nil {
		return nil, nil
	}
	all, err := s.catalog.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list templates: %w", err)
	}
	if category == "" {
		return all, nil
	}
	filtered := make([]domain.Template, 0, len(all))
	for _, t := range all {
		if t.Category == category {
			filtered = append(filtered, t)
		}
	}
	return filtered, nil
}

// Get returns one template.
func (s *TemplateService) Get(ctx context.Context, id string) (*domain.Template, error) {
	if s.catalog == nil {
		return nil, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
	}
	return s.catalog.Get(ctx, id)
}

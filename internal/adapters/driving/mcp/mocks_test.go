package mcp

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/services"
)

// mockDispatcher records the last command and returns a canned result.
type mockDispatcher struct {
	last domain.Command
	res  domain.Result
	err  error
}

func (m *mockDispatcher) Dispatch(_ context.Context, cmd domain.Command) (domain.Result, error) {
	m.last = cmd
	res := m.res
	res.Action = cmd.Action()
	return res, m.err
}

func (m *mockDispatcher) Actions() []domain.Action {
	return domain.AllActions()
}

// mockTemplateService is a mock implementation of driving.TemplateService.
type mockTemplateService struct {
	templates []domain.Template
	err       error
}

func (m *mockTemplateService) List(_ context.Context, category domain.TemplateCategory) ([]domain.Template, error) {
	if m.err != nil {
		return nil, m.err
	}
	var out []domain.Template
	for _, t := range m.templates {
		if category == "" || t.Category == category {
			out = append(out, t)
		}
	}
	return out, nil
}

func (m *mockTemplateService) Get(_ context.Context, id string) (*domain.Template, error) {
	for _, t := range m.templates {
		if t.ID == id {
			tpl := t
			return &tpl, nil
		}
	}
	return nil, domain.ErrNotFound
}

func sampleTemplates() *mockTemplateService {
	return &mockTemplateService{templates: []domain.Template{
		{
			ID:            "minimal-mono",
			Name:          "Minimal Mono",
			Category:      domain.CategoryMinimal,
			Sections:      []domain.Section{domain.NewSection("about", domain.SectionAbout)},
			Customization: domain.DefaultCustomization(),
		},
		{
			ID:            "bold-type",
			Name:          "Bold Type",
			Category:      domain.CategoryBold,
			Featured:      true,
			Customization: domain.DefaultCustomization(),
		},
	}}
}

// newServices wires real services over memory stores.
func newServices(t *testing.T) (*services.Builder, *Ports) {
	t.Helper()
	templates := sampleTemplates()
	catalog := catalogAdapter{templates}

	builder := services.NewBuilder(memory.NewPortfolioStore(), memory.NewSessionStore(), catalog, 0)
	require.NoError(t, builder.Init(context.Background()))

	exporter := services.NewExportService(builder, services.NewRenderer(nil), catalog, nil)
	share := services.NewShareService(builder, nil)

	return builder, &Ports{
		Builder:    builder,
		Dispatcher: services.NewDispatcher(builder, exporter, share, nil),
		Export:     exporter,
		Templates:  templates,
	}
}

// catalogAdapter serves the mock templates as a driven catalogue.
type catalogAdapter struct {
	m *mockTemplateService
}

func (c catalogAdapter) List(ctx context.Context) ([]domain.Template, error) {
	return c.m.List(ctx, "")
}

func (c catalogAdapter) Get(ctx context.Context, id string) (*domain.Template, error) {
	return c.m.Get(ctx, id)
}

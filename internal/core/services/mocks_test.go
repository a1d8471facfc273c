package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

var errStoreDown = errors.New("store down")

// stubCatalog is an in-memory TemplateCatalog.
type stubCatalog struct {
	templates []domain.Template
}

func (c *stubCatalog) List(_ context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, len(c.templates))
	copy(out, c.templates)
	return out, nil
}

func (c *stubCatalog) Get(_ context.Context, id string) (*domain.Template, error) {
	for _, t := range c.templates {
		if t.ID == id {
			tpl := t
			return &tpl, nil
		}
	}
	return nil, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
}

func newStubCatalog() *stubCatalog {
	dark := domain.DefaultCustomization()
	dark.Theme = domain.ThemeDark
	dark.AccentColor = "#00FF88"

	hero := domain.NewSection("dev-hero", domain.SectionHero)
	hero.Content["heading"] = "Jane Doe"
	about := domain.NewSection("dev-about", domain.SectionAbout)

	return &stubCatalog{templates: []domain.Template{
		{
			ID:            "developer-pro",
			Name:          "Developer Pro",
			Category:      domain.CategoryDeveloper,
			Featured:      true,
			Sections:      []domain.Section{hero, about},
			Customization: dark,
		},
		{
			ID:            "minimal-mono",
			Name:          "Minimal Mono",
			Category:      domain.CategoryMinimal,
			Sections:      []domain.Section{domain.NewSection("mono-about", domain.SectionAbout)},
			Customization: domain.DefaultCustomization(),
		},
	}}
}

// failingPortfolioStore fails every call.
type failingPortfolioStore struct{}

func (failingPortfolioStore) Save(context.Context, string, domain.PersistedPortfolio) error {
	return errStoreDown
}

func (failingPortfolioStore) Load(context.Context, string) (*domain.PersistedPortfolio, error) {
	return nil, errStoreDown
}

func (failingPortfolioStore) Delete(context.Context, string) error { return errStoreDown }

func (failingPortfolioStore) Keys(context.Context) ([]string, error) { return nil, errStoreDown }

// fakeClipboard records writes.
type fakeClipboard struct {
	mu   sync.Mutex
	text string
	err  error
}

func (c *fakeClipboard) WriteText(text string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) ReadText() (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text, c.err
}

// boldMarkdown wraps source in a strong paragraph so tests can tell
// rendered Markdown from plain fallbacks.
type boldMarkdown struct {
	err error
}

func (m boldMarkdown) Render(source string) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	return "<p><strong>" + source + "</strong></p>", nil
}

var _ driven.MarkdownRenderer = boldMarkdown{}

// testClock returns increasing timestamps.
type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(time.Second)
	return c.now
}

// builderFixture bundles a builder with the stores behind it.
type builderFixture struct {
	builder    *Builder
	portfolios *memory.PortfolioStore
	sessions   *memory.SessionStore
	catalog    *stubCatalog
}

func newBuilderFixture(t *testing.T) *builderFixture {
	t.Helper()
	f := &builderFixture{
		portfolios: memory.NewPortfolioStore(),
		sessions:   memory.NewSessionStore(),
		catalog:    newStubCatalog(),
	}
	f.builder = f.newBuilder()
	require.NoError(t, f.builder.Init(context.Background()))
	return f
}

// newBuilder creates an uninitialised builder sharing the fixture stores.
func (f *builderFixture) newBuilder() *Builder {
	b := NewBuilder(f.portfolios, f.sessions, f.catalog, domain.DefaultHistoryCapacity)
	clock := newTestClock()
	b.now = clock.Now
	n := 0
	b.newID = func() string {
		n++
		return fmt.Sprintf("section-%d", n)
	}
	return b
}

// add appends a default section of type t and returns it.
func (f *builderFixture) add(t *testing.T, st domain.SectionType) domain.Section {
	t.Helper()
	s, err := f.builder.NewSection(st)
	require.NoError(t, err)
	added, err := f.builder.AddSection(context.Background(), s)
	require.NoError(t, err)
	return added
}

func strPtr(s string) *string { return &s }

func boolPtr(b bool) *bool { return &b }

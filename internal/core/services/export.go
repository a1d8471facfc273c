package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/net/html"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure ExportService implements the interface.
var _ driving.ExportService = (*ExportService)(nil)

// ExportService renders the portfolio to HTML, JSON and text, and imports
// JSON documents.
type ExportService struct {
	builder   driving.BuilderService
	renderer  *Renderer
	templates driven.TemplateCatalog
	settings  driving.SettingsService
	now       func() time.Time
}

// NewExportService creates an export service. templates and settings may be nil.
func NewExportService(
	builder driving.BuilderService,
	renderer *Renderer,
	templates driven.TemplateCatalog,
	settings driving.SettingsService,
) *ExportService {
	return &ExportService{
		builder:   builder,
		renderer:  renderer,
		templates: templates,
		settings:  settings,
		now:       time.Now,
	}
}

// RenderHTML renders the standalone HTML document for the current state.
func (s *ExportService) RenderHTML(_ context.Context) ([]byte, error) {
	var buf bytes.Buffer
	if err := s.renderer.WriteDocument(&buf, s.builder.State()); err != nil {
		return nil, fmt.Errorf("rendering portfolio: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportHTML saves the portfolio, then writes the HTML document into dir.
// A storage failure during the save is logged and does not stop the export.
func (s *ExportService) ExportHTML(ctx context.Context, dir string) (string, error) {
	logger.Section("Export HTML")

	exportDir, filename := s.exportTarget()
	if dir != "" {
		exportDir = dir
	}

	if _, err := s.builder.Save(ctx); err != nil {
		if !errors.Is(err, domain.ErrStorageUnavailable) {
			return "", err
		}
		logger.Warn("exporting without saving: %v", err)
	}

	data, err := s.RenderHTML(ctx)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(exportDir, 0o755); err != nil {
		return "", fmt.Errorf("creating export dir: %w", err)
	}
	path := filepath.Join(exportDir, filename)
	if err := writeFileAtomic(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	logger.Debug("wrote %d bytes to %s", len(data), path)
	return path, nil
}

// writeFileAtomic writes data to a temporary file beside path and renames it
// into place.
func writeFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name) //nolint:errcheck // no-op once renamed

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(name, path)
}

func (s *ExportService) exportTarget() (dir, filename string) {
	defaults := domain.DefaultAppSettings().Export
	dir, filename = defaults.Dir, defaults.Filename
	if s.settings == nil {
		return dir, filename
	}
	settings, err := s.settings.Get()
	if err != nil {
		return dir, filename
	}
	if settings.Export.Dir != "" {
		dir = settings.Export.Dir
	}
	if settings.Export.Filename != "" {
		filename = settings.Export.Filename
	}
	return dir, filename
}

// ExportPDF is not available.
func (s *ExportService) ExportPDF(_ context.Context) error {
	return fmt.Errorf("pdf export: %w", domain.ErrNotImplemented)
}

// ExportJSON renders the JSON export document.
func (s *ExportService) ExportJSON(ctx context.Context) ([]byte, error) {
	state := s.builder.State()
	if state.Sections == nil {
		state.Sections = []domain.Section{}
	}
	doc := domain.ExportDocument{
		Sections:      state.Sections,
		Customization: state.Customization,
		Template:      s.currentTemplate(ctx),
		Version:       domain.ExportVersion,
		ExportedAt:    s.now().UTC(),
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding export: %w", err)
	}
	return data, nil
}

func (s *ExportService) currentTemplate(ctx context.Context) *domain.Template {
	id := s.builder.TemplateID()
	if id == "" || s.templates == nil {
		return nil
	}
	tpl, err := s.templates.Get(ctx, id)
	if err != nil {
		logger.Debug("template %s not in catalogue: %v", id, err)
		return nil
	}
	return tpl
}

// importDocument accepts both export documents and persisted portfolios.
type importDocument struct {
	Sections      []domain.Section      `json:"sections"`
	Customization *domain.Customization `json:"customization"`
	Template      *domain.Template      `json:"template"`
	Version       string                `json:"version"`
}

// ImportJSON replaces state from a JSON export document. Missing sections
// import as empty and a missing customization as the default.
func (s *ExportService) ImportJSON(ctx context.Context, data []byte) error {
	var doc importDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: import: %v", domain.ErrInvalidInput, err)
	}

	state := domain.State{Sections: doc.Sections, Customization: domain.DefaultCustomization()}
	if doc.Customization != nil {
		state.Customization = *doc.Customization
	}
	templateID := ""
	if doc.Template != nil {
		templateID = doc.Template.ID
	}
	if err := s.builder.Replace(ctx, state, templateID, domain.LabelImportPortfolio); err != nil {
		return fmt.Errorf("import: %w", err)
	}
	logger.Debug("imported %d sections (version %q)", len(doc.Sections), doc.Version)
	return nil
}

// RenderPreview renders a device frame page around the portfolio.
func (s *ExportService) RenderPreview(_ context.Context, device domain.Device) ([]byte, error) {
	if !device.IsValid() {
		return nil, fmt.Errorf("%w: device %q", domain.ErrInvalidInput, device)
	}
	page, err := s.renderer.RenderPreviewPage(s.builder.State(), device)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, page); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// RenderMarkdown renders the visible sections as a Markdown document.
func (s *ExportService) RenderMarkdown(_ context.Context) (string, error) {
	return MarkdownDocument(s.builder.State()), nil
}

// MarkdownDocument renders the visible sections of state as Markdown.
func MarkdownDocument(state domain.State) string {
	var b strings.Builder
	for _, sec := range state.Sections {
		if !sec.Visible {
			continue
		}
		writeMarkdownSection(&b, sec)
		b.WriteString("\n---\n\n")
	}
	if b.Len() == 0 {
		return "_No visible sections yet. Add one to start building your portfolio._\n"
	}
	return b.String()
}

func writeMarkdownSection(b *strings.Builder, s domain.Section) {
	c := s.Content
	switch s.Type {
	case domain.SectionHero:
		fmt.Fprintf(b, "# %s\n\n", domain.ContentString(c, "heading"))
		if sub := domain.ContentString(c, "subheading"); sub != "" {
			fmt.Fprintf(b, "_%s_\n\n", sub)
		}
		if cta := domain.ContentString(c, "ctaText"); cta != "" {
			fmt.Fprintf(b, "[%s](%s)\n\n", cta, domain.ContentString(c, "ctaLink"))
		}
		return
	case domain.SectionCustom:
		if h := domain.ContentString(c, "heading"); h != "" {
			fmt.Fprintf(b, "## %s\n\n", h)
		}
		fmt.Fprintf(b, "%s\n\n", domain.ContentString(c, "body"))
		return
	}

	fmt.Fprintf(b, "## %s\n\n", s.Heading())
	switch s.Type {
	case domain.SectionAbout:
		fmt.Fprintf(b, "%s\n\n", domain.ContentString(c, "text"))
	case domain.SectionProjects:
		for _, p := range items[domain.Project](s, "projects") {
			fmt.Fprintf(b, "### %s\n\n%s\n\n", p.Title, p.Description)
			if len(p.Tags) > 0 {
				fmt.Fprintf(b, "`%s`\n\n", strings.Join(p.Tags, "` `"))
			}
		}
	case domain.SectionSkills:
		for _, sk := range items[domain.Skill](s, "skills") {
			level := clamp(sk.Level, 0, 100)
			fmt.Fprintf(b, "- **%s** %s %d%%\n", sk.Name, strings.Repeat("█", level/10), level)
		}
		b.WriteString("\n")
	case domain.SectionExperience:
		for _, e := range items[domain.Experience](s, "entries") {
			fmt.Fprintf(b, "- **%s**, %s (%s)\n", e.Title, e.Company, e.Period)
		}
		b.WriteString("\n")
	case domain.SectionEducation:
		for _, e := range items[domain.Education](s, "entries") {
			fmt.Fprintf(b, "- **%s**, %s (%s)\n", e.Degree, e.Institution, e.Period)
		}
		b.WriteString("\n")
	case domain.SectionContact:
		if sub := domain.ContentString(c, "subheading"); sub != "" {
			fmt.Fprintf(b, "%s\n\n", sub)
		}
		if email := domain.ContentString(c, "email"); email != "" {
			fmt.Fprintf(b, "- Email: %s\n", email)
		}
		if phone := domain.ContentString(c, "phone"); phone != "" {
			fmt.Fprintf(b, "- Phone: %s\n", phone)
		}
		for _, l := range items[domain.SocialLink](s, "social") {
			fmt.Fprintf(b, "- [%s](%s)\n", l.Platform, l.URL)
		}
		b.WriteString("\n")
	case domain.SectionTestimonials:
		for _, q := range items[domain.Testimonial](s, "quotes") {
			fmt.Fprintf(b, "> %s\n>\n> -- %s", q.Quote, q.Author)
			if q.Role != "" {
				fmt.Fprintf(b, ", %s", q.Role)
			}
			b.WriteString("\n\n")
		}
	}
}

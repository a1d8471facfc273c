// Package templates provides the embedded portfolio template catalogue.
package templates

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Ensure Catalog implements the interface.
var _ driven.TemplateCatalog = (*Catalog)(nil)

// catalogFile is the YAML layout. Sections only carry what differs from a
// new section of their type.
type catalogFile struct {
	Templates []templateDoc `yaml:"templates"`
}

type templateDoc struct {
	ID            string         `yaml:"id"`
	Name          string         `yaml:"name"`
	Description   string         `yaml:"description"`
	Category      string         `yaml:"category"`
	Featured      bool           `yaml:"featured"`
	Customization map[string]any `yaml:"customization"`
	Sections      []sectionDoc   `yaml:"sections"`
}

type sectionDoc struct {
	ID      string         `yaml:"id"`
	Type    string         `yaml:"type"`
	Title   string         `yaml:"title"`
	Visible *bool          `yaml:"visible"`
	Content map[string]any `yaml:"content"`
}

// Catalog is a read-only template catalogue.
type Catalog struct {
	templates []domain.Template
	byID      map[string]int
}

// New parses the embedded catalogue.
func New() (*Catalog, error) {
	return Parse(catalogYAML)
}

// Parse builds a catalogue from YAML data.
func Parse(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing template catalogue: %w", err)
	}

	c := &Catalog{byID: make(map[string]int, len(file.Templates))}
	for _, doc := range file.Templates {
		tpl, err := doc.template()
		if err != nil {
			return nil, fmt.Errorf("template %q: %w", doc.ID, err)
		}
		if _, dup := c.byID[tpl.ID]; dup {
			return nil, fmt.Errorf("template %q: %w", tpl.ID, domain.ErrAlreadyExists)
		}
		c.byID[tpl.ID] = len(c.templates)
		c.templates = append(c.templates, tpl)
	}
	return c, nil
}

func (d templateDoc) template() (domain.Template, error) {
	if d.ID == "" {
		return domain.Template{}, fmt.Errorf("%w: missing id", domain.ErrInvalidInput)
	}
	category := domain.TemplateCategory(d.Category)
	if !category.IsValid() {
		return domain.Template{}, fmt.Errorf("%w: category %q", domain.ErrInvalidInput, d.Category)
	}

	custom := domain.DefaultCustomization()
	if len(d.Customization) > 0 {
		// Overlay through JSON so the domain's field names apply.
		raw, err := json.Marshal(d.Customization)
		if err != nil {
			return domain.Template{}, err
		}
		if err := json.Unmarshal(raw, &custom); err != nil {
			return domain.Template{}, fmt.Errorf("%w: customization: %v", domain.ErrInvalidInput, err)
		}
	}
	if err := custom.Validate(); err != nil {
		return domain.Template{}, err
	}

	tpl := domain.Template{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Category:      category,
		Featured:      d.Featured,
		Customization: custom,
		Sections:      make([]domain.Section, 0, len(d.Sections)),
	}
	for i, sd := range d.Sections {
		section, err := sd.section(d.ID, i)
		if err != nil {
			return domain.Template{}, err
		}
		tpl.Sections = append(tpl.Sections, section)
	}
	return tpl, nil
}

func (d sectionDoc) section(templateID string, order int) (domain.Section, error) {
	t, err := domain.ParseSectionType(d.Type)
	if err != nil {
		return domain.Section{}, err
	}
	id := d.ID
	if id == "" {
		id = t.String()
	}

	s := domain.NewSection(templateID+"-"+id, t)
	s.Order = order
	if d.Title != "" {
		s.Title = d.Title
	}
	if d.Visible != nil {
		s.Visible = *d.Visible
	}
	for k, v := range d.Content {
		s.Content[k] = v
	}
	content, err := domain.NormalizeContent(s.Content)
	if err != nil {
		return domain.Section{}, fmt.Errorf("section %q: %w", id, err)
	}
	s.Content = content
	return s, nil
}

// List returns every template in catalogue order.
func (c *Catalog) List(_ context.Context) ([]domain.Template, error) {
	out := make([]domain.Template, len(c.templates))
	for i, t := range c.templates {
		out[i] = cloneTemplate(t)
	}
	return out, nil
}

// Get returns one template.
func (c *Catalog) Get(_ context.Context, id string) (*domain.Template, error) {
	i, ok := c.byID[id]
	if !ok {
		return nil, fmt.Errorf("template %q: %w", id, domain.ErrNotFound)
	}
	t := cloneTemplate(c.templates[i])
	return &t, nil
}

func cloneTemplate(t domain.Template) domain.Template {
	sections := make([]domain.Section, len(t.Sections))
	for i, s := range t.Sections {
		sections[i] = s.Clone()
	}
	t.Sections = sections
	return t
}

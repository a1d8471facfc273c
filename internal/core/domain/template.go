package domain

// TemplateCategory groups templates in the catalogue.
type TemplateCategory string

// Available template categories.
const (
	CategoryDeveloper TemplateCategory = "developer"
	CategoryDesigner  TemplateCategory = "designer"
	CategoryCreative  TemplateCategory = "creative"
	CategoryBusiness  TemplateCategory = "business"
	CategoryMinimal   TemplateCategory = "minimal"
	CategoryBold      TemplateCategory = "bold"
)

// IsValid returns true if the category is recognised.
func (c TemplateCategory) IsValid() bool {
	switch c {
	case CategoryDeveloper, CategoryDesigner, CategoryCreative,
		CategoryBusiness, CategoryMinimal, CategoryBold:
		return true
	default:
		return false
	}
}

// AllTemplateCategories returns every category.
func AllTemplateCategories() []TemplateCategory {
	return []TemplateCategory{
		CategoryDeveloper,
		CategoryDesigner,
		CategoryCreative,
		CategoryBusiness,
		CategoryMinimal,
		CategoryBold,
	}
}

// Template is a ready-made portfolio: a section list plus a theme.
type Template struct {
	ID            string           `json:"id"`
	Name          string           `json:"name"`
	Description   string           `json:"description"`
	Category      TemplateCategory `json:"category"`
	Featured      bool             `json:"featured"`
	Sections      []Section        `json:"sections"`
	Customization Customization    `json:"customization"`
}

// State returns the template's sections and customization as builder state,
// with order re-packed from zero.
func (t Template) State() State {
	s := State{Sections: t.Sections, Customization: t.Customization}.Clone()
	for i := range s.Sections {
		s.Sections[i].Order = i
	}
	return s
}

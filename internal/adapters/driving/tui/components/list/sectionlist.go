// Package list provides list display components for the TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var titleCaser = cases.Title(language.English)

// Label title-cases an identifier for display, e.g. "developer" -> "Developer".
func Label(s string) string {
	return titleCaser.String(s)
}

// TypeLabel returns the display label for a section type, e.g. "Testimonials".
func TypeLabel(t domain.SectionType) string {
	return Label(string(t))
}

// SectionList displays portfolio sections in a navigable list.
type SectionList struct {
	sections []domain.Section
	cursor   int
	active   string
	styles   *styles.Styles
	width    int
	height   int
}

// NewSectionList creates a new section list component.
func NewSectionList(s *styles.Styles) *SectionList {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &SectionList{
		styles: s,
		width:  80,
		height: 10,
	}
}

// Init initialises the section list.
func (r *SectionList) Init() tea.Cmd {
	return nil
}

// Update handles list navigation messages.
func (r *SectionList) Update(msg tea.Msg) (*SectionList, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.String() {
		case "up", "k":
			r.MoveUp()
		case "down", "j":
			r.MoveDown()
		case "home", "g":
			r.cursor = 0
		case "end", "G":
			if len(r.sections) > 0 {
				r.cursor = len(r.sections) - 1
			}
		}
	}
	return r, nil
}

// View renders the section list.
func (r *SectionList) View() string {
	if len(r.sections) == 0 {
		return r.styles.Muted.Render("No sections yet. Press a to add one.")
	}

	lines := make([]string, 0, len(r.sections)+2)
	lines = append(lines, r.styles.Subtitle.Render(fmt.Sprintf("Sections (%d)", len(r.sections))), "")

	visible := r.height - 2
	if visible < 1 {
		visible = 1
	}
	start := 0
	if r.cursor >= visible {
		start = r.cursor - visible + 1
	}
	end := start + visible
	if end > len(r.sections) {
		end = len(r.sections)
	}

	for i := start; i < end; i++ {
		lines = append(lines, r.renderSection(i, &r.sections[i]))
	}
	return strings.Join(lines, "\n")
}

// renderSection formats one row: cursor, position, title, type and markers.
func (r *SectionList) renderSection(index int, s *domain.Section) string {
	indicator := "  "
	if index == r.cursor {
		indicator = "> "
	}

	title := s.Title
	if title == "" {
		title = "(Untitled)"
	}
	maxTitle := r.width - 30
	if maxTitle < 10 {
		maxTitle = 10
	}
	if len(title) > maxTitle {
		title = title[:maxTitle-3] + "..."
	}

	var markers []string
	if !s.Visible {
		markers = append(markers, "hidden")
	}
	if s.ID == r.active {
		markers = append(markers, "selected")
	}
	suffix := TypeLabel(s.Type)
	if len(markers) > 0 {
		suffix += " [" + strings.Join(markers, ", ") + "]"
	}

	row := fmt.Sprintf("%s%2d. %-*s  ", indicator, index+1, maxTitle, title)
	if index == r.cursor {
		return r.styles.Selected.Render(row + suffix)
	}
	if !s.Visible {
		return r.styles.Muted.Render(row + suffix)
	}
	return r.styles.Normal.Render(row) + r.styles.Muted.Render(suffix)
}

// SetSections replaces the list, keeping the cursor in range.
func (r *SectionList) SetSections(sections []domain.Section) {
	r.sections = sections
	if r.cursor >= len(sections) {
		r.cursor = len(sections) - 1
	}
	if r.cursor < 0 {
		r.cursor = 0
	}
}

// Sections returns the current sections.
func (r *SectionList) Sections() []domain.Section {
	return r.sections
}

// SetActive marks the section with id as the builder's selection.
func (r *SectionList) SetActive(id string) {
	r.active = id
}

// Cursor returns the index under the cursor.
func (r *SectionList) Cursor() int {
	return r.cursor
}

// SetCursor moves the cursor to index when it is in range.
func (r *SectionList) SetCursor(index int) {
	if index >= 0 && index < len(r.sections) {
		r.cursor = index
	}
}

// FocusID moves the cursor to the section with id, if present.
func (r *SectionList) FocusID(id string) {
	for i := range r.sections {
		if r.sections[i].ID == id {
			r.cursor = i
			return
		}
	}
}

// Current returns the section under the cursor, or nil if the list is empty.
func (r *SectionList) Current() *domain.Section {
	if len(r.sections) == 0 || r.cursor < 0 || r.cursor >= len(r.sections) {
		return nil
	}
	return &r.sections[r.cursor]
}

// MoveUp moves the cursor up.
func (r *SectionList) MoveUp() {
	if r.cursor > 0 {
		r.cursor--
	}
}

// MoveDown moves the cursor down.
func (r *SectionList) MoveDown() {
	if r.cursor < len(r.sections)-1 {
		r.cursor++
	}
}

// SetDimensions sets the component dimensions.
func (r *SectionList) SetDimensions(width, height int) {
	r.width = width
	r.height = height
}

// Count returns the number of sections.
func (r *SectionList) Count() int {
	return len(r.sections)
}

// IsEmpty returns whether the list is empty.
func (r *SectionList) IsEmpty() bool {
	return len(r.sections) == 0
}

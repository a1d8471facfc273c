// Package templates provides the template gallery view for the TUI.
package templates

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Error definitions for the templates view.
var (
	// ErrNoTemplateService indicates that no template service was provided.
	ErrNoTemplateService = errors.New("template service is required")

	// ErrNoDispatcher indicates that no dispatcher was provided.
	ErrNoDispatcher = errors.New("dispatcher is required")
)

// View is the template gallery with a category filter.
type View struct {
	styles     *styles.Styles
	service    driving.TemplateService
	dispatcher driving.Dispatcher
	ctx        context.Context

	// categories[0] is "" (all).
	categories []domain.TemplateCategory
	category   int
	templates  []domain.Template
	selected   int
	confirm    bool
	notice     domain.Notice
	err        error

	width  int
	height int
	ready  bool
}

// NewView creates a new templates view.
func NewView(s *styles.Styles, service driving.TemplateService, dispatcher driving.Dispatcher) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:     s,
		service:    service,
		dispatcher: dispatcher,
		ctx:        context.Background(),
		categories: append([]domain.TemplateCategory{""}, domain.AllTemplateCategories()...),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init loads templates for the current category.
func (v *View) Init() tea.Cmd {
	return v.load()
}

// Reset clears transient state before the view is shown again.
func (v *View) Reset() {
	v.confirm = false
	v.notice = domain.Notice{}
	v.err = nil
}

func (v *View) load() tea.Cmd {
	category := v.categories[v.category]
	return func() tea.Msg {
		if v.service == nil {
			return messages.TemplatesLoaded{Err: ErrNoTemplateService}
		}
		ts, err := v.service.List(v.ctx, category)
		return messages.TemplatesLoaded{Templates: ts, Err: err}
	}
}

func (v *View) dispatch(cmd domain.Command) tea.Cmd {
	return func() tea.Msg {
		if v.dispatcher == nil {
			return messages.ErrorOccurred{Err: ErrNoDispatcher}
		}
		res, err := v.dispatcher.Dispatch(v.ctx, cmd)
		return messages.CommandCompleted{Result: res, Err: err}
	}
}

// Update handles messages for the templates view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.TemplatesLoaded:
		v.err = msg.Err
		v.templates = msg.Templates
		if v.selected >= len(v.templates) {
			v.selected = 0
		}
		return v, nil

	case messages.CommandCompleted:
		v.notice = msg.Result.Notice
		return v, nil

	case messages.ErrorOccurred:
		v.notice = domain.Failure(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		return v.handleKey(msg)
	}
	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	if v.confirm {
		v.confirm = false
		if msg.String() == "y" {
			return v, v.dispatch(domain.ClearTemplateCommand{})
		}
		v.notice = domain.Info("Clear cancelled")
		return v, nil
	}

	switch msg.String() {
	case "esc":
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}
	case "q":
		return v, tea.Quit
	case "up", "k":
		if v.selected > 0 {
			v.selected--
		}
	case "down", "j":
		if v.selected < len(v.templates)-1 {
			v.selected++
		}
	case "tab":
		v.category = (v.category + 1) % len(v.categories)
		v.selected = 0
		return v, v.load()
	case "shift+tab":
		v.category = (v.category + len(v.categories) - 1) % len(v.categories)
		v.selected = 0
		return v, v.load()
	case "enter":
		if t := v.Current(); t != nil {
			return v, v.dispatch(domain.LoadTemplateCommand{TemplateID: t.ID})
		}
	case "c":
		v.confirm = true
		v.notice = domain.Warning("Clear all sections and reset the theme? Press y to confirm.")
	}
	return v, nil
}

// View renders the gallery.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	lines := make([]string, 0, len(v.templates)+8)
	lines = append(lines, v.styles.Title.Render("Templates"), v.renderCategories(), "")

	switch {
	case v.err != nil:
		lines = append(lines, v.styles.Error.Render("Error: "+v.err.Error()))
	case len(v.templates) == 0:
		lines = append(lines, v.styles.Muted.Render("No templates in this category"))
	default:
		for i := range v.templates {
			lines = append(lines, v.renderTemplate(i, &v.templates[i]))
		}
	}

	if !v.notice.IsZero() {
		lines = append(lines, "", v.styles.Notice(v.notice.Level).Render(v.notice.Message))
	}
	lines = append(lines, "", v.styles.Help.Render("[tab] category  [enter] load  [c] clear  [esc] back"))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (v *View) renderCategories() string {
	labels := make([]string, 0, len(v.categories))
	for i, c := range v.categories {
		label := "All"
		if c != "" {
			label = list.Label(string(c))
		}
		if i == v.category {
			labels = append(labels, v.styles.Subtitle.Render("["+label+"]"))
			continue
		}
		labels = append(labels, v.styles.Muted.Render(label))
	}
	return strings.Join(labels, " ")
}

func (v *View) renderTemplate(index int, t *domain.Template) string {
	name := t.Name
	if t.Featured {
		name += " ★"
	}
	head := fmt.Sprintf("%-24s %d sections", name, len(t.Sections))
	desc := v.styles.Muted.Render("    " + t.Description)
	if index == v.selected {
		return v.styles.Selected.Render("> "+head) + "\n" + desc
	}
	return v.styles.Normal.Render("  "+head) + "\n" + desc
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Category returns the active category filter ("" for all).
func (v *View) Category() domain.TemplateCategory {
	return v.categories[v.category]
}

// Templates returns the loaded templates.
func (v *View) Templates() []domain.Template {
	return v.templates
}

// Current returns the highlighted template, or nil.
func (v *View) Current() *domain.Template {
	if v.selected < 0 || v.selected >= len(v.templates) {
		return nil
	}
	return &v.templates[v.selected]
}

// Notice returns the latest notice.
func (v *View) Notice() domain.Notice {
	return v.notice
}

// Err returns the last load error.
func (v *View) Err() error {
	return v.err
}

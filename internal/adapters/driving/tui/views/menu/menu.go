// Package menu provides the main navigation menu view for the TUI.
package menu

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
)

// Item is one menu entry. Shortcut jumps straight to it.
type Item struct {
	Label    string
	Hint     string
	Shortcut string
	View     messages.ViewType
	Quit     bool
}

// Summary describes the portfolio shown under the title.
type Summary struct {
	Sections int
	Template string
	Dirty    bool
}

// View is the main menu.
type View struct {
	styles   *styles.Styles
	items    []Item
	selected int
	summary  Summary
	width    int
	height   int
	ready    bool
}

// NewView creates a new menu view.
func NewView(s *styles.Styles) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &View{
		styles: s,
		items: []Item{
			{Label: "Builder", Hint: "add, edit and reorder sections", Shortcut: "b", View: messages.ViewBuilder},
			{Label: "Preview", Hint: "see the portfolio at device widths", Shortcut: "p", View: messages.ViewPreview},
			{Label: "Customize", Hint: "colours, fonts and theme", Shortcut: "c", View: messages.ViewCustomize},
			{Label: "Templates", Hint: "start from a prebuilt layout", Shortcut: "t", View: messages.ViewTemplates},
			{Label: "Help", Shortcut: "?", View: messages.ViewHelp},
			{Label: "Quit", Shortcut: "q", Quit: true},
		},
		width:  80,
		height: 24,
	}
}

// Init initialises the menu view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch k := msg.String(); k {
		case "up", "k":
			v.selected = max(v.selected-1, 0)
		case "down", "j":
			v.selected = min(v.selected+1, len(v.items)-1)
		case "enter":
			return v, v.choose(v.items[v.selected])
		default:
			for i, item := range v.items {
				if item.Shortcut == k {
					v.selected = i
					return v, v.choose(item)
				}
			}
		}
	}
	return v, nil
}

func (v *View) choose(item Item) tea.Cmd {
	if item.Quit {
		return tea.Quit
	}
	return func() tea.Msg {
		return messages.ViewChanged{View: item.View}
	}
}

// View renders the menu.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(v.styles.Title.Render("Folio") + "  " + v.styles.Muted.Render("Portfolio Builder"))
	b.WriteString("\n")
	b.WriteString(v.styles.Muted.Render(v.summaryLine()))
	b.WriteString("\n\n")

	highlight := lipgloss.NewStyle().Foreground(v.styles.Theme().Secondary).Bold(true)
	for i, item := range v.items {
		key := v.styles.Muted.Render("[" + item.Shortcut + "]")
		if i != v.selected {
			fmt.Fprintf(&b, "  %s %s\n", key, v.styles.Normal.Render(item.Label))
			continue
		}
		line := fmt.Sprintf("> %s %s", key, highlight.Render(item.Label))
		if item.Hint != "" {
			line += "  " + v.styles.Muted.Render(item.Hint)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(v.styles.Help.Render("[j/k] Navigate  [Enter] Select  [q] Quit"))
	return b.String()
}

func (v *View) summaryLine() string {
	var parts []string
	switch v.summary.Sections {
	case 0:
		parts = append(parts, "no sections yet")
	case 1:
		parts = append(parts, "1 section")
	default:
		parts = append(parts, fmt.Sprintf("%d sections", v.summary.Sections))
	}
	if v.summary.Template != "" {
		parts = append(parts, "template "+v.summary.Template)
	}
	if v.summary.Dirty {
		parts = append(parts, "unsaved changes")
	}
	return strings.Join(parts, " · ")
}

// SetSummary updates the portfolio summary line.
func (v *View) SetSummary(s Summary) {
	v.summary = s
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
}

// Selected returns the currently selected index.
func (v *View) Selected() int {
	return v.selected
}

// Package status provides status bar components for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Bar displays the latest notice, the portfolio state and keybinding hints.
type Bar struct {
	styles   *styles.Styles
	keymap   *keymap.KeyMap
	notice   domain.Notice
	sections int
	dirty    bool
	canUndo  bool
	canRedo  bool
	builder  bool
	width    int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(msg tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the notice, or the portfolio summary when there is none.
func (s *Bar) renderLeft() string {
	if !s.notice.IsZero() {
		return s.styles.Notice(s.notice.Level).Render(s.notice.Message)
	}

	parts := []string{fmt.Sprintf("%d sections", s.sections)}
	if s.dirty {
		parts = append(parts, "unsaved")
	}
	if s.canUndo {
		parts = append(parts, "undo")
	}
	if s.canRedo {
		parts = append(parts, "redo")
	}
	return s.styles.Muted.Render(strings.Join(parts, " · "))
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	var bindings []key.Binding
	if s.builder {
		bindings = s.keymap.BuilderHelp()
	} else {
		bindings = s.keymap.ShortHelp()
	}

	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetNotice shows a notice until the next one or Clear.
func (s *Bar) SetNotice(n domain.Notice) {
	s.notice = n
}

// Notice returns the current notice.
func (s *Bar) Notice() domain.Notice {
	return s.notice
}

// Sync copies the portfolio summary from the builder.
func (s *Bar) Sync(b driving.BuilderService) {
	if b == nil {
		return
	}
	h := b.History()
	s.sections = len(b.Sections())
	s.dirty = b.Dirty()
	s.canUndo = h.CanUndo()
	s.canRedo = h.CanRedo()
}

// SectionCount returns the synced section count.
func (s *Bar) SectionCount() int {
	return s.sections
}

// Dirty reports whether the synced portfolio has unsaved changes.
func (s *Bar) Dirty() bool {
	return s.dirty
}

// CanUndo reports the synced undo availability.
func (s *Bar) CanUndo() bool {
	return s.canUndo
}

// CanRedo reports the synced redo availability.
func (s *Bar) CanRedo() bool {
	return s.canRedo
}

// SetBuilderHints switches the hints between the builder and global sets.
func (s *Bar) SetBuilderHints(on bool) {
	s.builder = on
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear removes the current notice.
func (s *Bar) Clear() {
	s.notice = domain.Notice{}
}

// Package styles provides colour themes and styling for the TUI.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// Theme is the TUI palette. Primary and Secondary follow the portfolio's own
// colours so the builder looks like the page being built.
type Theme struct {
	Primary    lipgloss.Color
	Secondary  lipgloss.Color
	Background lipgloss.Color
	Foreground lipgloss.Color
	Muted      lipgloss.Color
	Border     lipgloss.Color

	// Notice colours.
	Info    lipgloss.Color
	Success lipgloss.Color
	Warning lipgloss.Color
	Error   lipgloss.Color
}

// DefaultTheme returns the palette of a new portfolio on a dark terminal.
func DefaultTheme() *Theme {
	return ThemeFor(domain.DefaultCustomization())
}

// ThemeFor derives a palette from a portfolio customization. Invalid colours
// fall back to the defaults.
func ThemeFor(c domain.Customization) *Theme {
	def := domain.DefaultCustomization()
	t := &Theme{
		Primary:    hexOr(c.PrimaryColor, def.PrimaryColor),
		Secondary:  lipgloss.Color("#C9A227"),
		Background: lipgloss.Color("#1A1A1A"),
		Foreground: lipgloss.Color("#F4EFEA"),
		Muted:      lipgloss.Color("#8A8580"),
		Border:     hexOr(c.AccentColor, def.AccentColor),
		Info:       lipgloss.Color("#89B4FA"),
		Success:    lipgloss.Color("#A6E3A1"),
		Warning:    lipgloss.Color("#F9E2AF"),
		Error:      lipgloss.Color("#F38BA8"),
	}
	if c.Theme == domain.ThemeDark {
		t.Secondary = lipgloss.Color("#E0B84A")
	}
	return t
}

func hexOr(hex, fallback string) lipgloss.Color {
	if domain.IsHexColor(hex) {
		return lipgloss.Color(hex)
	}
	return lipgloss.Color(fallback)
}

// Styles holds the lipgloss styles built from a theme.
type Styles struct {
	theme *Theme

	Title      lipgloss.Style
	Subtitle   lipgloss.Style
	Normal     lipgloss.Style
	Muted      lipgloss.Style
	Selected   lipgloss.Style
	Info       lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Warning    lipgloss.Style
	InputField lipgloss.Style
	StatusBar  lipgloss.Style
	Help       lipgloss.Style
	Border     lipgloss.Style
}

// NewStyles creates styles from a theme. A nil theme means DefaultTheme.
func NewStyles(theme *Theme) *Styles {
	if theme == nil {
		theme = DefaultTheme()
	}
	fg := func(c lipgloss.Color) lipgloss.Style {
		return lipgloss.NewStyle().Foreground(c)
	}
	boxed := lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border)

	return &Styles{
		theme:    theme,
		Title:    fg(theme.Primary).Bold(true),
		Subtitle: fg(theme.Secondary).Bold(true),
		Normal:   fg(theme.Foreground),
		Muted:    fg(theme.Muted),
		Selected: lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.Background).
			Background(theme.Primary),
		Info:       fg(theme.Info),
		Error:      fg(theme.Error),
		Success:    fg(theme.Success),
		Warning:    fg(theme.Warning),
		InputField: boxed.Padding(0, 1),
		StatusBar:  fg(theme.Muted).Background(theme.Background).Padding(0, 1),
		Help:       fg(theme.Muted).Italic(true),
		Border:     boxed,
	}
}

// DefaultStyles returns styles with the default theme.
func DefaultStyles() *Styles {
	return NewStyles(DefaultTheme())
}

// Theme returns the theme used by these styles.
func (s *Styles) Theme() *Theme {
	return s.theme
}

// Notice returns the style for a notice level.
func (s *Styles) Notice(level domain.NoticeLevel) lipgloss.Style {
	switch level {
	case domain.NoticeSuccess:
		return s.Success
	case domain.NoticeWarning:
		return s.Warning
	case domain.NoticeError:
		return s.Error
	default:
		return s.Info
	}
}

// Swatch renders a small block in a hex colour, or "?" for invalid input.
func Swatch(hex string) string {
	if !domain.IsHexColor(hex) {
		return "?"
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("  ")
}

// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// ViewChanged is sent when navigating between views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which view is currently active.
type ViewType int

const (
	// ViewMenu is the main navigation menu.
	ViewMenu ViewType = iota
	// ViewBuilder is the section list editor.
	ViewBuilder
	// ViewPreview renders the portfolio at a device width.
	ViewPreview
	// ViewCustomize edits colours, fonts and theme.
	ViewCustomize
	// ViewTemplates browses and loads templates.
	ViewTemplates
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewMenu:
		return "menu"
	case ViewBuilder:
		return "builder"
	case ViewPreview:
		return "preview"
	case ViewCustomize:
		return "customize"
	case ViewTemplates:
		return "templates"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// CommandCompleted carries the result of a dispatched command.
type CommandCompleted struct {
	Result domain.Result
	Err    error
}

// StateChanged signals that the builder state changed outside the current view.
type StateChanged struct{}

// TemplatesLoaded carries the template catalogue.
type TemplatesLoaded struct {
	Templates []domain.Template
	Err       error
}

// PreviewRendered carries a rendered text preview.
type PreviewRendered struct {
	Device  domain.Device
	Content string
	Err     error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

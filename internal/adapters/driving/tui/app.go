package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/views/builder"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/views/customize"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/views/menu"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/views/preview"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/views/templates"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// App is the main TUI application following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	// ports provides access to core services via driving ports.
	ports *Ports

	// ctx is the context for cancellation.
	ctx context.Context

	// styles holds the TUI styles.
	styles *styles.Styles

	menuView      *menu.View
	builderView   *builder.View
	previewView   *preview.View
	customizeView *customize.View
	templatesView *templates.View

	// currentView tracks which view is active.
	currentView messages.ViewType

	// err holds the last error that occurred.
	err error

	// width and height are terminal dimensions.
	width  int
	height int

	// ready indicates if the app has initialised.
	ready bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new TUI application with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	device := domain.DeviceDesktop
	if ports.Settings != nil {
		if settings, err := ports.Settings.Get(); err == nil {
			device = settings.Preview.Device
		}
	}

	s := styles.NewStyles(styles.ThemeFor(ports.Builder.Customization()))
	km := keymap.DefaultKeyMap()

	a := &App{
		ports:         ports,
		ctx:           context.Background(),
		styles:        s,
		menuView:      menu.NewView(s),
		builderView:   builder.NewView(s, km, ports.Builder, ports.Dispatcher),
		previewView:   preview.NewView(s, ports.Export, device),
		customizeView: customize.NewView(s, ports.Builder, ports.Dispatcher),
		templatesView: templates.NewView(s, ports.Templates, ports.Dispatcher),
		currentView:   messages.ViewMenu,
	}
	a.refreshSummary()
	return a, nil
}

// refreshSummary copies the portfolio summary into the menu.
func (a *App) refreshSummary() {
	b := a.ports.Builder
	a.menuView.SetSummary(menu.Summary{
		Sections: len(b.Sections()),
		Template: b.TemplateID(),
		Dirty:    b.Dirty(),
	})
}

// WithContext sets the context for the app and its views.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	a.builderView.WithContext(ctx)
	a.previewView.WithContext(ctx)
	a.customizeView.WithContext(ctx)
	a.templatesView.WithContext(ctx)
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		tea.SetWindowTitle("folio - Portfolio Builder"),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		// Global quit with ctrl+c
		if msg.String() == "ctrl+c" {
			return a, tea.Quit
		}
		if a.currentView == messages.ViewHelp {
			switch msg.String() {
			case "esc":
				a.currentView = messages.ViewMenu
			case "q":
				return a, tea.Quit
			}
			return a, nil
		}

	case messages.ViewChanged:
		a.currentView = msg.View
		switch msg.View {
		case messages.ViewBuilder:
			a.builderView.Refresh()
			return a, a.builderView.Init()
		case messages.ViewPreview:
			return a, a.previewView.Init()
		case messages.ViewCustomize:
			a.customizeView.Reset()
			return a, a.customizeView.Init()
		case messages.ViewTemplates:
			a.templatesView.Reset()
			return a, a.templatesView.Init()
		case messages.ViewMenu:
			a.refreshSummary()
		case messages.ViewHelp:
		}
		return a, nil

	case messages.CommandCompleted:
		if msg.Err != nil {
			a.err = msg.Err
		}
		// Keep the builder list in sync with changes made from other views.
		if a.currentView != messages.ViewBuilder {
			a.builderView.Refresh()
		}
		a.refreshSummary()

	case messages.ErrorOccurred:
		a.err = msg.Err

	case messages.Quit:
		return a, tea.Quit
	}

	// Forward to the active view
	switch a.currentView {
	case messages.ViewMenu:
		a.menuView, cmd = a.menuView.Update(msg)
	case messages.ViewBuilder:
		a.builderView, cmd = a.builderView.Update(msg)
	case messages.ViewPreview:
		a.previewView, cmd = a.previewView.Update(msg)
	case messages.ViewCustomize:
		a.customizeView, cmd = a.customizeView.Update(msg)
	case messages.ViewTemplates:
		a.templatesView, cmd = a.templatesView.Update(msg)
	case messages.ViewHelp:
		// Help view doesn't need to handle other messages
	}

	return a, cmd
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	switch a.currentView {
	case messages.ViewMenu:
		return a.menuView.View()
	case messages.ViewBuilder:
		return a.builderView.View()
	case messages.ViewPreview:
		return a.previewView.View()
	case messages.ViewCustomize:
		return a.customizeView.View()
	case messages.ViewTemplates:
		return a.templatesView.View()
	case messages.ViewHelp:
		return a.viewHelp()
	default:
		return a.menuView.View()
	}
}

// viewHelp renders the help view.
func (a *App) viewHelp() string {
	return `Help

Navigation:
  esc         Back to Menu
  ctrl+c      Quit

Builder:
  j/k, ↑/↓    Move cursor
  enter       Select section
  a           Add section
  d           Remove section (y to confirm)
  e           Rename section
  K/J         Move section up/down
  v           Show/hide section
  u/r         Undo/redo
  s           Save
  x           Export HTML
  l           Copy share link

Preview:
  tab         Next device
  d/t/m       Desktop, tablet, mobile

Customize:
  enter       Edit value or toggle
  u/r         Undo/redo

Templates:
  tab         Next category
  enter       Load template
  c           Clear (y to confirm)

[esc] back to menu`
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// CurrentView returns the current view type.
func (a *App) CurrentView() messages.ViewType {
	return a.currentView
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has been initialised.
func (a *App) Ready() bool {
	return a.ready
}

// SetDimensions sets the terminal dimensions on the app and every view.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true
	a.menuView.SetDimensions(width, height)
	a.builderView.SetDimensions(width, height)
	a.previewView.SetDimensions(width, height)
	a.customizeView.SetDimensions(width, height)
	a.templatesView.SetDimensions(width, height)
}

// Package preview shows a terminal rendition of the portfolio at device widths.
package preview

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// ErrNoExportService indicates that no export service was provided.
var ErrNoExportService = errors.New("export service is required")

// DefaultGlamourStyle is the glamour style used outside tests.
const DefaultGlamourStyle = "dark"

// View renders the portfolio Markdown through glamour, wrapped at the
// active device's column width.
type View struct {
	styles   *styles.Styles
	export   driving.ExportService
	ctx      context.Context
	device   domain.Device
	style    string
	viewport viewport.Model
	content  string
	err      error
	width    int
	height   int
	ready    bool
}

// NewView creates a preview view starting at device.
func NewView(s *styles.Styles, export driving.ExportService, device domain.Device) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if !device.IsValid() {
		device = domain.DeviceDesktop
	}

	return &View{
		styles:   s,
		export:   export,
		ctx:      context.Background(),
		device:   device,
		style:    DefaultGlamourStyle,
		viewport: viewport.New(80, 20),
		width:    80,
		height:   24,
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// WithStyle sets the glamour style name ("dark", "light", "ascii", "notty").
func (v *View) WithStyle(style string) *View {
	v.style = style
	return v
}

// Init renders the preview for the current device.
func (v *View) Init() tea.Cmd {
	return v.render()
}

// render returns a command producing a PreviewRendered message.
func (v *View) render() tea.Cmd {
	device := v.device
	return func() tea.Msg {
		if v.export == nil {
			return messages.PreviewRendered{Device: device, Err: ErrNoExportService}
		}
		md, err := v.export.RenderMarkdown(v.ctx)
		if err != nil {
			return messages.PreviewRendered{Device: device, Err: err}
		}
		out, err := Render(md, device.Viewport().Columns, v.style)
		return messages.PreviewRendered{Device: device, Content: out, Err: err}
	}
}

// Render renders markdown through glamour wrapped at columns.
func Render(markdown string, columns int, style string) (string, error) {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(columns),
	)
	if err != nil {
		return "", fmt.Errorf("creating renderer: %w", err)
	}
	out, err := r.Render(markdown)
	if err != nil {
		return "", fmt.Errorf("rendering preview: %w", err)
	}
	return out, nil
}

// Update handles messages for the preview view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.PreviewRendered:
		// Drop renders for a device the user already cycled past.
		if msg.Device != v.device {
			return v, nil
		}
		v.err = msg.Err
		v.content = msg.Content
		v.viewport.SetContent(msg.Content)
		v.viewport.GotoTop()
		return v, nil

	case messages.StateChanged:
		return v, v.render()

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return v, func() tea.Msg {
				return messages.ViewChanged{View: messages.ViewMenu}
			}
		case "q":
			return v, tea.Quit
		case "tab":
			v.device = v.device.Next()
			return v, v.render()
		case "d":
			return v, v.setDevice(domain.DeviceDesktop)
		case "t":
			return v, v.setDevice(domain.DeviceTablet)
		case "m":
			return v, v.setDevice(domain.DeviceMobile)
		}
	}

	var cmd tea.Cmd
	v.viewport, cmd = v.viewport.Update(msg)
	return v, cmd
}

func (v *View) setDevice(d domain.Device) tea.Cmd {
	if d == v.device {
		return nil
	}
	v.device = d
	return v.render()
}

// View renders the preview.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	vp := v.device.Viewport()
	header := v.styles.Title.Render("Preview") + "  " +
		v.styles.Subtitle.Render(fmt.Sprintf("%s (%s × %s)", v.device, vp.Width, vp.Height))

	body := v.viewport.View()
	if v.err != nil {
		body = v.styles.Error.Render("Error: " + v.err.Error())
	}

	footer := v.styles.Help.Render("[tab] device  [d/t/m] desktop/tablet/mobile  [↑/↓] scroll  [esc] back")
	return lipgloss.JoinVertical(lipgloss.Left, header, "", body, "", footer)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.viewport.Width = width
	v.viewport.Height = height - 5
	if v.viewport.Height < 1 {
		v.viewport.Height = 1
	}
}

// Device returns the active device.
func (v *View) Device() domain.Device {
	return v.device
}

// Content returns the last rendered preview.
func (v *View) Content() string {
	return v.content
}

// Err returns the last render error.
func (v *View) Err() error {
	return v.err
}

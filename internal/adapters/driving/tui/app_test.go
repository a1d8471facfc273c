package tui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/services"
)

func newTestApp(t *testing.T) (*App, *services.Builder) {
	t.Helper()
	ports, b := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)
	app.SetDimensions(100, 40)
	return app, b
}

// send delivers msg and follows the returned command chain until it settles.
func send(t *testing.T, app *App, msg tea.Msg) {
	t.Helper()
	for i := 0; i < 5 && msg != nil; i++ {
		_, cmd := app.Update(msg)
		if cmd == nil {
			return
		}
		msg = cmd()
		if _, quit := msg.(tea.QuitMsg); quit {
			return
		}
	}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestNewApp_Success(t *testing.T) {
	ports, _ := newTestPorts(t)

	app, err := NewApp(ports)

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
	assert.False(t, app.Ready())
	assert.Equal(t, "Initialising...", app.View())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	ports, _ := newTestPorts(t)
	ports.Dispatcher = nil

	app, err := NewApp(ports)

	require.ErrorIs(t, err, ErrMissingDispatcher)
	assert.Nil(t, app)
}

func TestNewApp_PreviewDeviceFromSettings(t *testing.T) {
	ports, _ := newTestPorts(t)
	store := memory.NewConfigStore()
	require.NoError(t, store.Set("preview.device", "tablet"))
	ports.Settings = services.NewSettingsService(store)

	app, err := NewApp(ports)

	require.NoError(t, err)
	assert.Equal(t, domain.DeviceTablet, app.previewView.Device())
}

func TestApp_WithContext(t *testing.T) {
	app, _ := newTestApp(t)

	type contextKey string
	ctx := context.WithValue(context.Background(), contextKey("key"), "value")

	assert.Equal(t, app, app.WithContext(ctx))
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_Update_WindowSize(t *testing.T) {
	ports, _ := newTestPorts(t)
	app, err := NewApp(ports)
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 80, Height: 24})

	assert.Equal(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
}

func TestApp_CtrlCQuits(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(tea.KeyMsg{Type: tea.KeyCtrlC})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_QuitMessage(t *testing.T) {
	app, _ := newTestApp(t)

	_, cmd := app.Update(messages.Quit{})

	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestApp_MenuToBuilderAndBack(t *testing.T) {
	app, _ := newTestApp(t)

	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, messages.ViewBuilder, app.CurrentView())
	assert.Contains(t, app.View(), "Builder")

	send(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_BuilderAddsSection(t *testing.T) {
	app, b := newTestApp(t)
	send(t, app, messages.ViewChanged{View: messages.ViewBuilder})

	send(t, app, runeKey('a'))
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	require.Len(t, b.Sections(), 1)
	assert.Equal(t, domain.SectionHero, b.Sections()[0].Type)
	assert.Contains(t, app.View(), "Section added successfully!")
}

func TestApp_TemplateLoadRefreshesBuilder(t *testing.T) {
	app, b := newTestApp(t)

	send(t, app, messages.ViewChanged{View: messages.ViewTemplates})
	assert.Contains(t, app.View(), "Developer Pro")
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, "developer-pro", b.TemplateID())

	send(t, app, messages.ViewChanged{View: messages.ViewBuilder})
	assert.Contains(t, app.View(), "Sections (2)")
}

func TestApp_MenuShowsSummary(t *testing.T) {
	app, _ := newTestApp(t)
	assert.Contains(t, app.View(), "no sections yet")

	send(t, app, messages.ViewChanged{View: messages.ViewTemplates})
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})
	send(t, app, messages.ViewChanged{View: messages.ViewMenu})

	out := app.View()
	assert.Contains(t, out, "2 sections")
	assert.Contains(t, out, "template developer-pro")
}

func TestApp_PreviewRendersPortfolio(t *testing.T) {
	app, _ := newTestApp(t)
	app.previewView.WithStyle("ascii")

	send(t, app, messages.ViewChanged{View: messages.ViewPreview})

	assert.Equal(t, messages.ViewPreview, app.CurrentView())
	assert.Contains(t, app.View(), "No visible sections yet")
}

func TestApp_CustomizeTogglesTheme(t *testing.T) {
	app, b := newTestApp(t)
	send(t, app, messages.ViewChanged{View: messages.ViewCustomize})

	for i := 0; i < 7; i++ {
		send(t, app, runeKey('j'))
	}
	send(t, app, tea.KeyMsg{Type: tea.KeyEnter})

	assert.Equal(t, domain.ThemeDark, b.Customization().Theme)
}

func TestApp_HelpView(t *testing.T) {
	app, _ := newTestApp(t)

	send(t, app, messages.ViewChanged{View: messages.ViewHelp})
	assert.Contains(t, app.View(), "Builder:")

	send(t, app, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, messages.ViewMenu, app.CurrentView())
}

func TestApp_ErrorsAreRecorded(t *testing.T) {
	app, _ := newTestApp(t)
	send(t, app, messages.ViewChanged{View: messages.ViewBuilder})

	send(t, app, runeKey('u'))

	require.ErrorIs(t, app.Err(), domain.ErrNothingToUndo)
}

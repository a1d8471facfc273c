// Package builder provides the section editor view for the TUI.
package builder

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// TypePicker is the section type selection overlay.
type TypePicker struct {
	types    []domain.SectionType
	selected int
	visible  bool
}

// mode is what the view's keys currently drive.
type mode int

const (
	modeList mode = iota
	modePicker
	modeRename
	modeConfirmRemove
)

// View represents the builder with the section list, overlays and status bar.
type View struct {
	styles    *styles.Styles
	keymap    *keymap.KeyMap
	list      *list.SectionList
	input     *input.FieldInput
	statusbar *status.Bar
	picker    *TypePicker

	builder    driving.BuilderService
	dispatcher driving.Dispatcher
	ctx        context.Context

	mode       mode
	moveTarget int
	width      int
	height     int
	ready      bool
}

// NewView creates a new builder view.
func NewView(
	s *styles.Styles,
	km *keymap.KeyMap,
	builder driving.BuilderService,
	dispatcher driving.Dispatcher,
) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	bar := status.NewBar(s, km)
	bar.SetBuilderHints(true)

	v := &View{
		styles:     s,
		keymap:     km,
		list:       list.NewSectionList(s),
		input:      input.NewFieldInput(s, "Title"),
		statusbar:  bar,
		picker:     &TypePicker{types: domain.AllSectionTypes()},
		builder:    builder,
		dispatcher: dispatcher,
		ctx:        context.Background(),
		moveTarget: -1,
		width:      80,
		height:     24,
	}
	v.Refresh()
	return v
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	v.Refresh()
	return nil
}

// Refresh reloads sections and status from the builder.
func (v *View) Refresh() {
	if v.builder == nil {
		return
	}
	v.list.SetSections(v.builder.Sections())
	v.list.SetActive(v.builder.Selected())
	v.statusbar.Sync(v.builder)
}

// Update handles messages for the builder view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case tea.KeyMsg:
		return v.handleKeyMsg(msg)

	case messages.CommandCompleted:
		v.handleCommandCompleted(msg)
		return v, nil

	case messages.StateChanged:
		v.Refresh()
		return v, nil

	case messages.ErrorOccurred:
		v.statusbar.SetNotice(domain.Failure(msg.Err.Error()))
		return v, nil
	}

	return v, nil
}

// handleKeyMsg routes keys by mode.
func (v *View) handleKeyMsg(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch v.mode {
	case modePicker:
		return v.handlePickerKey(msg)
	case modeRename:
		return v.handleRenameKey(msg)
	case modeConfirmRemove:
		return v.handleConfirmKey(msg)
	}

	key := msg.String()
	km := v.keymap
	current := v.list.Current()

	switch {
	case keymap.Matches(key, km.Quit):
		return v, tea.Quit

	case keymap.Matches(key, km.Back):
		return v, func() tea.Msg {
			return messages.ViewChanged{View: messages.ViewMenu}
		}

	case keymap.Matches(key, km.MoveUp), keymap.Matches(key, km.MoveDown):
		if current == nil {
			return v, nil
		}
		from := v.list.Cursor()
		to := from + 1
		if keymap.Matches(key, km.MoveUp) {
			to = from - 1
		}
		if to < 0 || to >= v.list.Count() {
			return v, nil
		}
		v.moveTarget = to
		return v, v.dispatch(domain.ReorderSectionsCommand{From: from, To: to})

	case keymap.Matches(key, km.Up), keymap.Matches(key, km.Down):
		v.list, _ = v.list.Update(msg)
		return v, nil

	case keymap.Matches(key, km.Select):
		if current == nil {
			return v, nil
		}
		return v, v.dispatch(domain.SelectSectionCommand{ID: current.ID})

	case keymap.Matches(key, km.Add):
		v.picker.selected = 0
		v.picker.visible = true
		v.mode = modePicker
		return v, nil

	case keymap.Matches(key, km.Remove):
		if current == nil {
			return v, nil
		}
		v.mode = modeConfirmRemove
		v.statusbar.SetNotice(domain.Warning(
			fmt.Sprintf("Remove %q? Press y to confirm.", current.Title)))
		return v, nil

	case keymap.Matches(key, km.Edit):
		if current == nil {
			return v, nil
		}
		v.mode = modeRename
		v.input.SetValue(current.Title)
		return v, v.input.Focus()

	case keymap.Matches(key, km.Toggle):
		if current == nil {
			return v, nil
		}
		visible := !current.Visible
		return v, v.dispatch(domain.UpdateSectionCommand{
			ID:    current.ID,
			Patch: domain.SectionPatch{Visible: &visible},
		})

	case keymap.Matches(key, km.Undo):
		return v, v.dispatch(domain.UndoCommand{})

	case keymap.Matches(key, km.Redo):
		return v, v.dispatch(domain.RedoCommand{})

	case keymap.Matches(key, km.Save):
		return v, v.dispatch(domain.SaveCommand{})

	case keymap.Matches(key, km.Export):
		return v, v.dispatch(domain.ExportHTMLCommand{})

	case keymap.Matches(key, km.Share):
		return v, v.dispatch(domain.ShareLinkCommand{Copy: true})
	}

	return v, nil
}

// handlePickerKey processes keyboard input when the type picker is visible.
func (v *View) handlePickerKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		if v.picker.selected > 0 {
			v.picker.selected--
		}
	case "down", "j":
		if v.picker.selected < len(v.picker.types)-1 {
			v.picker.selected++
		}
	case "enter":
		t := v.picker.types[v.picker.selected]
		v.closeOverlay()
		return v, v.dispatch(domain.AddSectionCommand{Type: t})
	case "esc":
		v.closeOverlay()
	}
	return v, nil
}

// handleRenameKey processes keyboard input while renaming a section.
func (v *View) handleRenameKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	//nolint:exhaustive // handling only relevant key types
	switch msg.Type {
	case tea.KeyEsc:
		v.closeOverlay()
		return v, nil
	case tea.KeyEnter:
		current := v.list.Current()
		title := v.input.Value()
		v.closeOverlay()
		if current == nil || title == "" || title == current.Title {
			return v, nil
		}
		return v, v.dispatch(domain.UpdateSectionCommand{
			ID:    current.ID,
			Patch: domain.SectionPatch{Title: &title},
		})
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

// handleConfirmKey removes the section on y and cancels on anything else.
func (v *View) handleConfirmKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	current := v.list.Current()
	v.closeOverlay()
	if msg.String() != "y" || current == nil {
		v.statusbar.SetNotice(domain.Info("Remove cancelled"))
		return v, nil
	}
	return v, v.dispatch(domain.RemoveSectionCommand{ID: current.ID})
}

func (v *View) closeOverlay() {
	v.mode = modeList
	v.picker.visible = false
	v.input.Blur()
	v.input.Reset()
}

// dispatch runs cmd through the dispatcher.
func (v *View) dispatch(cmd domain.Command) tea.Cmd {
	return func() tea.Msg {
		if v.dispatcher == nil {
			return messages.ErrorOccurred{Err: ErrNoDispatcher}
		}
		res, err := v.dispatcher.Dispatch(v.ctx, cmd)
		return messages.CommandCompleted{Result: res, Err: err}
	}
}

// handleCommandCompleted shows the notice and follows the changed section.
func (v *View) handleCommandCompleted(msg messages.CommandCompleted) {
	v.Refresh()
	v.statusbar.SetNotice(msg.Result.Notice)

	if msg.Err == nil && msg.Result.Action == domain.ActionReorderSections && v.moveTarget >= 0 {
		v.list.SetCursor(v.moveTarget)
	}
	v.moveTarget = -1

	if msg.Err == nil && msg.Result.Section != nil {
		v.list.FocusID(msg.Result.Section.ID)
	}
}

// View renders the builder view.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	parts := make([]string, 0, 8)
	parts = append(parts, v.styles.Title.Render("Builder"), "", v.list.View())

	switch v.mode {
	case modePicker:
		parts = append(parts, "", v.renderPicker())
	case modeRename:
		parts = append(parts, "", v.input.View())
	case modeList, modeConfirmRemove:
	}

	parts = append(parts, "", v.statusbar.View())
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderPicker renders the section type overlay.
func (v *View) renderPicker() string {
	lines := make([]string, 0, len(v.picker.types)+1)
	lines = append(lines, v.styles.Subtitle.Render("Add section"))
	for i, t := range v.picker.types {
		row := fmt.Sprintf("%-14s %s", list.TypeLabel(t), v.styles.Muted.Render(t.DefaultTitle()))
		if i == v.picker.selected {
			lines = append(lines, v.styles.Selected.Render("> "+list.TypeLabel(t)))
			continue
		}
		lines = append(lines, v.styles.Normal.Render("  "+row))
	}
	return v.styles.Border.Padding(0, 1).Render(strings.Join(lines, "\n"))
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true

	v.input.SetWidth(width)
	v.list.SetDimensions(width, height-6)
	v.statusbar.SetWidth(width)
}

// Ready returns whether the view is ready to render.
func (v *View) Ready() bool {
	return v.ready
}

// Cursor returns the index of the highlighted section.
func (v *View) Cursor() int {
	return v.list.Cursor()
}

// Current returns the highlighted section.
func (v *View) Current() *domain.Section {
	return v.list.Current()
}

// Notice returns the notice shown in the status bar.
func (v *View) Notice() domain.Notice {
	return v.statusbar.Notice()
}

// PickerVisible reports whether the type picker is open.
func (v *View) PickerVisible() bool {
	return v.picker.visible
}

// Renaming reports whether the title input has focus.
func (v *View) Renaming() bool {
	return v.mode == modeRename
}

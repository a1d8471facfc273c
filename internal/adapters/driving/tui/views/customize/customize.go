// Package customize provides the theme and typography editor view for the TUI.
package customize

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// ErrNoDispatcher indicates that no dispatcher was provided.
var ErrNoDispatcher = errors.New("dispatcher is required")

// Key constants for key handling.
const (
	keyEnter = "enter"
	keyEsc   = "esc"
)

type fieldKind int

const (
	kindColor fieldKind = iota
	kindText
	kindSpeed
	kindToggle
)

// field is one editable customization row.
type field struct {
	label string
	kind  fieldKind
	get   func(domain.Customization) string
	patch func(c domain.Customization, value string) (domain.CustomizationPatch, error)
}

func colorField(label string, get func(domain.Customization) string, set func(*domain.CustomizationPatch, *string)) field {
	return field{
		label: label,
		kind:  kindColor,
		get:   get,
		patch: func(_ domain.Customization, value string) (domain.CustomizationPatch, error) {
			if err := validateColor(value); err != nil {
				return domain.CustomizationPatch{}, err
			}
			var p domain.CustomizationPatch
			set(&p, &value)
			return p, nil
		},
	}
}

func fields() []field {
	return []field{
		colorField("Primary colour",
			func(c domain.Customization) string { return c.PrimaryColor },
			func(p *domain.CustomizationPatch, v *string) { p.PrimaryColor = v }),
		colorField("Secondary colour",
			func(c domain.Customization) string { return c.SecondaryColor },
			func(p *domain.CustomizationPatch, v *string) { p.SecondaryColor = v }),
		colorField("Accent colour",
			func(c domain.Customization) string { return c.AccentColor },
			func(p *domain.CustomizationPatch, v *string) { p.AccentColor = v }),
		{
			label: "Heading font",
			kind:  kindText,
			get:   func(c domain.Customization) string { return c.FontPrimary },
			patch: func(_ domain.Customization, v string) (domain.CustomizationPatch, error) {
				return domain.CustomizationPatch{FontPrimary: &v}, nil
			},
		},
		{
			label: "Body font",
			kind:  kindText,
			get:   func(c domain.Customization) string { return c.FontSecondary },
			patch: func(_ domain.Customization, v string) (domain.CustomizationPatch, error) {
				return domain.CustomizationPatch{FontSecondary: &v}, nil
			},
		},
		{
			label: "Animation speed",
			kind:  kindSpeed,
			get:   func(c domain.Customization) string { return strconv.FormatFloat(c.AnimationSpeed, 'g', -1, 64) },
			patch: func(_ domain.Customization, v string) (domain.CustomizationPatch, error) {
				speed, err := parseSpeed(v)
				if err != nil {
					return domain.CustomizationPatch{}, err
				}
				return domain.CustomizationPatch{AnimationSpeed: &speed}, nil
			},
		},
		{
			label: "Particles",
			kind:  kindToggle,
			get:   func(c domain.Customization) string { return onOff(c.ParticlesEnabled) },
			patch: func(c domain.Customization, _ string) (domain.CustomizationPatch, error) {
				on := !c.ParticlesEnabled
				return domain.CustomizationPatch{ParticlesEnabled: &on}, nil
			},
		},
		{
			label: "Theme",
			kind:  kindToggle,
			get:   func(c domain.Customization) string { return string(c.Theme) },
			patch: func(c domain.Customization, _ string) (domain.CustomizationPatch, error) {
				next := domain.ThemeDark
				if c.Theme == domain.ThemeDark {
					next = domain.ThemeLight
				}
				return domain.CustomizationPatch{Theme: &next}, nil
			},
		},
	}
}

func validateColor(v string) error {
	if !domain.IsHexColor(v) {
		return fmt.Errorf("%q is not a colour like #1a2b3c", v)
	}
	return nil
}

func parseSpeed(v string) (float64, error) {
	speed, err := strconv.ParseFloat(v, 64)
	if err != nil || speed <= 0 || speed > domain.MaxAnimationSpeed {
		return 0, fmt.Errorf("speed must be a number in (0, %g]", domain.MaxAnimationSpeed)
	}
	return speed, nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

// View is the customization editor.
type View struct {
	styles     *styles.Styles
	builder    driving.BuilderService
	dispatcher driving.Dispatcher
	ctx        context.Context

	fields   []field
	selected int
	editing  bool
	input    *input.FieldInput
	notice   domain.Notice

	width  int
	height int
	ready  bool
}

// NewView creates a new customization view.
func NewView(s *styles.Styles, builder driving.BuilderService, dispatcher driving.Dispatcher) *View {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &View{
		styles:     s,
		builder:    builder,
		dispatcher: dispatcher,
		ctx:        context.Background(),
		fields:     fields(),
		input:      input.NewFieldInput(s, ""),
	}
}

// WithContext sets the context for the view.
func (v *View) WithContext(ctx context.Context) *View {
	v.ctx = ctx
	return v
}

// Init initialises the view.
func (v *View) Init() tea.Cmd {
	return nil
}

// Reset leaves edit mode and clears the notice.
func (v *View) Reset() {
	v.stopEditing()
	v.notice = domain.Notice{}
}

// Update handles messages for the customization view.
func (v *View) Update(msg tea.Msg) (*View, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.SetDimensions(msg.Width, msg.Height)
		return v, nil

	case messages.CommandCompleted:
		v.notice = msg.Result.Notice
		return v, nil

	case messages.ErrorOccurred:
		v.notice = domain.Failure(msg.Err.Error())
		return v, nil

	case tea.KeyMsg:
		if v.editing {
			return v.handleEditKey(msg)
		}
		return v.handleKey(msg)
	}

	return v, nil
}

func (v *View) handleKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
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
		if v.selected < len(v.fields)-1 {
			v.selected++
		}
	case keyEnter, " ":
		f := v.fields[v.selected]
		if f.kind == kindToggle {
			return v, v.apply(f, "")
		}
		v.startEditing(f)
		return v, v.input.Focus()
	case "u":
		return v, v.dispatch(domain.UndoCommand{})
	case "r":
		return v, v.dispatch(domain.RedoCommand{})
	}
	return v, nil
}

func (v *View) handleEditKey(msg tea.KeyMsg) (*View, tea.Cmd) {
	switch msg.String() {
	case keyEsc:
		v.stopEditing()
		return v, nil
	case keyEnter:
		f := v.fields[v.selected]
		value := v.input.Value()
		if v.input.Err() != nil || value == "" {
			return v, nil
		}
		v.stopEditing()
		return v, v.apply(f, value)
	}

	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *View) startEditing(f field) {
	v.editing = true
	v.input.SetLabel(f.label)
	v.input.SetValidator(nil)
	switch f.kind {
	case kindColor:
		v.input.SetValidator(validateColor)
	case kindSpeed:
		v.input.SetValidator(func(s string) error {
			_, err := parseSpeed(s)
			return err
		})
	case kindText, kindToggle:
	}
	v.input.SetValue(f.get(v.customization()))
}

func (v *View) stopEditing() {
	v.editing = false
	v.input.Blur()
	v.input.Reset()
}

// apply builds the field's patch and dispatches it.
func (v *View) apply(f field, value string) tea.Cmd {
	patch, err := f.patch(v.customization(), value)
	if err != nil {
		v.notice = domain.Warning(err.Error())
		return nil
	}
	return v.dispatch(domain.UpdateCustomizationCommand{Patch: patch})
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

func (v *View) customization() domain.Customization {
	if v.builder == nil {
		return domain.DefaultCustomization()
	}
	return v.builder.Customization()
}

// View renders the customization editor.
func (v *View) View() string {
	if !v.ready {
		return "Initialising..."
	}

	c := v.customization()
	lines := make([]string, 0, len(v.fields)+6)
	lines = append(lines, v.styles.Title.Render("Customize"), "")

	for i, f := range v.fields {
		value := f.get(c)
		if f.kind == kindColor {
			value = styles.Swatch(value) + " " + value
		}
		row := fmt.Sprintf("%-18s %s", f.label, value)
		if i == v.selected {
			lines = append(lines, v.styles.Selected.Render("> "+fmt.Sprintf("%-18s", f.label))+" "+value)
			continue
		}
		lines = append(lines, v.styles.Normal.Render("  "+row))
	}

	if v.editing {
		lines = append(lines, "", v.input.View())
	}
	if !v.notice.IsZero() {
		lines = append(lines, "", v.styles.Notice(v.notice.Level).Render(v.notice.Message))
	}

	lines = append(lines, "", v.styles.Help.Render(
		strings.Join([]string{"[enter] edit/toggle", "[u/r] undo/redo", "[esc] back"}, "  ")))
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// SetDimensions sets the view dimensions.
func (v *View) SetDimensions(width, height int) {
	v.width = width
	v.height = height
	v.ready = true
	v.input.SetWidth(width)
}

// Selected returns the highlighted field index.
func (v *View) Selected() int {
	return v.selected
}

// Editing reports whether a field is being edited.
func (v *View) Editing() bool {
	return v.editing
}

// Notice returns the latest notice.
func (v *View) Notice() domain.Notice {
	return v.notice
}

// Package input provides text input components for the TUI.
package input

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
)

// FieldInput wraps a bubbles textinput with a label and an optional validator.
type FieldInput struct {
	textinput textinput.Model
	styles    *styles.Styles
	label     string
	validate  func(string) error
	err       error
	width     int
}

// NewFieldInput creates a new labelled field input.
func NewFieldInput(s *styles.Styles, label string) *FieldInput {
	if s == nil {
		s = styles.DefaultStyles()
	}

	ti := textinput.New()
	ti.CharLimit = 256
	ti.Width = 40

	return &FieldInput{
		textinput: ti,
		styles:    s,
		label:     label,
		width:     50,
	}
}

// Init initialises the field input.
func (f *FieldInput) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles input messages and re-runs the validator.
func (f *FieldInput) Update(msg tea.Msg) (*FieldInput, tea.Cmd) {
	var cmd tea.Cmd
	f.textinput, cmd = f.textinput.Update(msg)
	f.err = nil
	if f.validate != nil && f.Value() != "" {
		f.err = f.validate(f.Value())
	}
	return f, cmd
}

// View renders the label, the input and any validation error.
func (f *FieldInput) View() string {
	label := f.styles.Title.Render(f.label + ": ")
	field := f.styles.InputField.Render(f.textinput.View())
	//nolint:misspell // lipgloss.Center is the correct constant from the library
	row := lipgloss.JoinHorizontal(lipgloss.Center, label, field)
	if f.err != nil {
		row += "\n" + f.styles.Error.Render(f.err.Error())
	}
	return row
}

// SetValidator installs fn to check the value on every change.
func (f *FieldInput) SetValidator(fn func(string) error) {
	f.validate = fn
}

// Err returns the latest validation error.
func (f *FieldInput) Err() error {
	return f.err
}

// Label returns the field label.
func (f *FieldInput) Label() string {
	return f.label
}

// SetLabel changes the field label.
func (f *FieldInput) SetLabel(label string) {
	f.label = label
}

// SetPlaceholder sets the placeholder text.
func (f *FieldInput) SetPlaceholder(p string) {
	f.textinput.Placeholder = p
}

// Value returns the trimmed input value.
func (f *FieldInput) Value() string {
	return strings.TrimSpace(f.textinput.Value())
}

// SetValue sets the input value.
func (f *FieldInput) SetValue(value string) {
	f.textinput.SetValue(value)
	f.err = nil
}

// Focus sets focus on the input.
func (f *FieldInput) Focus() tea.Cmd {
	return f.textinput.Focus()
}

// Blur removes focus from the input.
func (f *FieldInput) Blur() {
	f.textinput.Blur()
}

// Focused returns whether the input is focused.
func (f *FieldInput) Focused() bool {
	return f.textinput.Focused()
}

// SetWidth sets the width of the input.
func (f *FieldInput) SetWidth(width int) {
	f.width = width
	inputWidth := width - len(f.label) - 6
	if inputWidth < 20 {
		inputWidth = 20
	}
	f.textinput.Width = inputWidth
}

// Width returns the current width.
func (f *FieldInput) Width() int {
	return f.width
}

// Reset clears the input and its error.
func (f *FieldInput) Reset() {
	f.textinput.Reset()
	f.err = nil
}

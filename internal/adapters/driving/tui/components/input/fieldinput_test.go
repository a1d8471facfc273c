package input

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func typeText(f *FieldInput, s string) {
	for _, r := range s {
		f.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func hexValidator(v string) error {
	if !domain.IsHexColor(v) {
		return errors.New("expected a colour like #1a2b3c")
	}
	return nil
}

func TestNewFieldInput(t *testing.T) {
	f := NewFieldInput(styles.DefaultStyles(), "Title")

	require.NotNil(t, f)
	assert.Equal(t, "", f.Value())
	assert.Equal(t, "Title", f.Label())
	assert.False(t, f.Focused())
	assert.NotNil(t, f.Init())
}

func TestNewFieldInput_NilStyles(t *testing.T) {
	f := NewFieldInput(nil, "Title")

	require.NotNil(t, f)
	assert.NotNil(t, f.styles)
}

func TestFieldInput_Typing(t *testing.T) {
	f := NewFieldInput(nil, "Title")
	f.Focus()

	typeText(f, "Hello")

	assert.Equal(t, "Hello", f.Value())
	assert.Contains(t, f.View(), "Title: ")
}

func TestFieldInput_ValueIsTrimmed(t *testing.T) {
	f := NewFieldInput(nil, "Title")
	f.SetValue("  padded  ")

	assert.Equal(t, "padded", f.Value())
}

func TestFieldInput_Validator(t *testing.T) {
	f := NewFieldInput(nil, "Primary")
	f.SetValidator(hexValidator)
	f.Focus()

	typeText(f, "#12")
	require.Error(t, f.Err())
	assert.Contains(t, f.View(), "expected a colour")

	typeText(f, "3456")
	assert.NoError(t, f.Err())
	assert.Equal(t, "#123456", f.Value())
}

func TestFieldInput_ResetClearsError(t *testing.T) {
	f := NewFieldInput(nil, "Primary")
	f.SetValidator(hexValidator)
	f.Focus()
	typeText(f, "x")
	require.Error(t, f.Err())

	f.Reset()

	assert.NoError(t, f.Err())
	assert.Equal(t, "", f.Value())
}

func TestFieldInput_FocusBlur(t *testing.T) {
	f := NewFieldInput(nil, "Title")

	f.Focus()
	assert.True(t, f.Focused())

	f.Blur()
	assert.False(t, f.Focused())
}

func TestFieldInput_SetWidth(t *testing.T) {
	f := NewFieldInput(nil, "Title")

	f.SetWidth(100)
	assert.Equal(t, 100, f.Width())

	f.SetWidth(5)
	assert.Equal(t, 5, f.Width())
	assert.Equal(t, 20, f.textinput.Width)
}

func TestFieldInput_LabelAndPlaceholder(t *testing.T) {
	f := NewFieldInput(nil, "Title")
	f.SetLabel("Heading")
	f.SetPlaceholder("Section title")

	assert.Equal(t, "Heading", f.Label())
	assert.Contains(t, f.View(), "Heading: ")
}

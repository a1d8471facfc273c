package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommand(t *testing.T) {
	tests := []struct {
		name     string
		action   Action
		args     string
		expected Command
	}{
		{
			name:     "add section",
			action:   ActionAddSection,
			args:     `{"type":"about","title":"Me"}`,
			expected: AddSectionCommand{Type: SectionAbout, Title: "Me"},
		},
		{
			name:     "remove section",
			action:   ActionRemoveSection,
			args:     `{"id":"s1"}`,
			expected: RemoveSectionCommand{ID: "s1"},
		},
		{
			name:     "reorder",
			action:   ActionReorderSections,
			args:     `{"from":2,"to":0}`,
			expected: ReorderSectionsCommand{From: 2, To: 0},
		},
		{
			name:     "undo without args",
			action:   ActionUndo,
			args:     "",
			expected: UndoCommand{},
		},
		{
			name:     "load template",
			action:   ActionLoadTemplate,
			args:     `{"templateId":"minimal-developer"}`,
			expected: LoadTemplateCommand{TemplateID: "minimal-developer"},
		},
		{
			name:     "share link with copy",
			action:   ActionShareLink,
			args:     `{"copy":true}`,
			expected: ShareLinkCommand{Copy: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, err := DecodeCommand(tt.action, []byte(tt.args))
			require.NoError(t, err)
			assert.Equal(t, tt.expected, cmd)
			assert.Equal(t, tt.action, cmd.Action())
		})
	}
}

func TestDecodeCommand_UpdateSectionPatch(t *testing.T) {
	cmd, err := DecodeCommand(ActionUpdateSection, []byte(`{"id":"s1","patch":{"title":"New","visible":false}}`))
	require.NoError(t, err)

	update, ok := cmd.(UpdateSectionCommand)
	require.True(t, ok)
	require.NotNil(t, update.Patch.Title)
	assert.Equal(t, "New", *update.Patch.Title)
	require.NotNil(t, update.Patch.Visible)
	assert.False(t, *update.Patch.Visible)
}

func TestDecodeCommand_Errors(t *testing.T) {
	_, err := DecodeCommand(Action("launch"), nil)
	assert.True(t, errors.Is(err, ErrUnsupportedType))

	_, err = DecodeCommand(ActionAddSection, []byte(`{"type":`))
	assert.True(t, errors.Is(err, ErrInvalidInput))
}

func TestAllActions(t *testing.T) {
	actions := AllActions()
	assert.Len(t, actions, 17)
	assert.IsIncreasing(t, actions)
	for _, a := range actions {
		cmd, err := DecodeCommand(a, nil)
		require.NoError(t, err, a)
		assert.Equal(t, a, cmd.Action())
	}
}

package services

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func stateWith(ids ...string) domain.State {
	s := domain.State{Customization: domain.DefaultCustomization()}
	for i, id := range ids {
		sec := domain.NewSection(id, domain.SectionAbout)
		sec.Order = i
		s.Sections = append(s.Sections, sec)
	}
	return s
}

func TestNewHistory_EmptyCursor(t *testing.T) {
	h := NewHistory(10)

	assert.Equal(t, -1, h.Cursor())
	assert.Equal(t, 0, h.Len())
	assert.False(t, h.CanUndo())
	assert.False(t, h.CanRedo())

	_, ok := h.Current()
	assert.False(t, ok)
}

func TestNewHistory_CapacityFallsBackToDefault(t *testing.T) {
	assert.Equal(t, domain.DefaultHistoryCapacity, NewHistory(0).Capacity())
	assert.Equal(t, domain.DefaultHistoryCapacity, NewHistory(-3).Capacity())
	assert.Equal(t, domain.DefaultHistoryCapacity, NewHistory(500).Capacity())
	assert.Equal(t, 7, NewHistory(7).Capacity())
}

func TestHistory_UndoRedo(t *testing.T) {
	h := NewHistory(10)
	now := time.Now()
	h.Snapshot(stateWith(), "Initial State", now)
	h.Snapshot(stateWith("a"), "Add Section", now)

	_, err := h.Redo()
	require.ErrorIs(t, err, domain.ErrNothingToRedo)

	entry, err := h.Undo()
	require.NoError(t, err)
	assert.Equal(t, "Initial State", entry.Action)
	assert.Empty(t, entry.State.Sections)
	assert.Equal(t, 0, h.Cursor())

	_, err = h.Undo()
	require.ErrorIs(t, err, domain.ErrNothingToUndo)

	entry, err = h.Redo()
	require.NoError(t, err)
	assert.Equal(t, "Add Section", entry.Action)
	assert.Len(t, entry.State.Sections, 1)
}

func TestHistory_UndoOnSingleEntryFails(t *testing.T) {
	h := NewHistory(10)
	h.Snapshot(stateWith(), "Initial State", time.Now())

	_, err := h.Undo()
	require.ErrorIs(t, err, domain.ErrNothingToUndo)
	assert.Equal(t, 0, h.Cursor())
}

func TestHistory_SnapshotTruncatesRedoTail(t *testing.T) {
	h := NewHistory(10)
	now := time.Now()
	h.Snapshot(stateWith(), "s0", now)
	h.Snapshot(stateWith("a"), "s1", now)
	h.Snapshot(stateWith("a", "b"), "s2", now)

	_, err := h.Undo()
	require.NoError(t, err)
	_, err = h.Undo()
	require.NoError(t, err)

	h.Snapshot(stateWith("c"), "s3", now)

	assert.Equal(t, 2, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.False(t, h.CanRedo())
	entries := h.Entries()
	assert.Equal(t, "s0", entries[0].Action)
	assert.Equal(t, "s3", entries[1].Action)
}

func TestHistory_EvictsOldestAtCapacity(t *testing.T) {
	h := NewHistory(domain.DefaultHistoryCapacity)
	now := time.Now()
	for i := 0; i < domain.DefaultHistoryCapacity+10; i++ {
		h.Snapshot(stateWith(), fmt.Sprintf("step-%d", i), now)
		assert.LessOrEqual(t, h.Len(), domain.DefaultHistoryCapacity)
	}

	assert.Equal(t, domain.DefaultHistoryCapacity, h.Len())
	assert.Equal(t, domain.DefaultHistoryCapacity-1, h.Cursor())
	entries := h.Entries()
	assert.Equal(t, "step-10", entries[0].Action)
	assert.Equal(t, fmt.Sprintf("step-%d", domain.DefaultHistoryCapacity+9), entries[len(entries)-1].Action)
}

func TestHistory_SnapshotIsDeepCopy(t *testing.T) {
	h := NewHistory(10)
	state := stateWith("a")
	h.Snapshot(state, "s0", time.Now())

	state.Sections[0].Content["text"] = "mutated"
	state.Sections[0].Title = "mutated"

	current, ok := h.Current()
	require.True(t, ok)
	assert.NotEqual(t, "mutated", current.State.Sections[0].Title)
	assert.NotEqual(t, "mutated", current.State.Sections[0].Content["text"])

	// Entries handed out are copies too.
	current.State.Sections[0].Content["text"] = "again"
	again, _ := h.Current()
	assert.NotEqual(t, "again", again.State.Sections[0].Content["text"])
}

func TestHistory_Load(t *testing.T) {
	now := time.Now()
	entries := []domain.HistoryEntry{
		{Timestamp: now, State: stateWith(), Action: "s0"},
		{Timestamp: now, State: stateWith("a"), Action: "s1"},
		{Timestamp: now, State: stateWith("a", "b"), Action: "s2"},
	}

	h := NewHistory(10)
	require.NoError(t, h.Load(entries, 1))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 1, h.Cursor())
	assert.True(t, h.CanUndo())
	assert.True(t, h.CanRedo())
}

func TestHistory_Load_TrimsToCapacity(t *testing.T) {
	now := time.Now()
	var entries []domain.HistoryEntry
	for i := 0; i < 5; i++ {
		entries = append(entries, domain.HistoryEntry{Timestamp: now, State: stateWith(), Action: fmt.Sprintf("s%d", i)})
	}

	h := NewHistory(3)
	require.NoError(t, h.Load(entries, 4))
	assert.Equal(t, 3, h.Len())
	assert.Equal(t, 2, h.Cursor())
	assert.Equal(t, "s2", h.Entries()[0].Action)

	h = NewHistory(3)
	require.NoError(t, h.Load(entries, 0))
	assert.Equal(t, 0, h.Cursor())
}

func TestHistory_Load_RejectsBadCursor(t *testing.T) {
	entries := []domain.HistoryEntry{{State: stateWith(), Action: "s0"}}

	tests := []struct {
		name    string
		entries []domain.HistoryEntry
		cursor  int
	}{
		{"negative", entries, -1},
		{"past end", entries, 1},
		{"empty with cursor", nil, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHistory(10)
			err := h.Load(tt.entries, tt.cursor)
			require.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestHistory_Reset(t *testing.T) {
	h := NewHistory(10)
	h.Snapshot(stateWith(), "s0", time.Now())
	h.Reset()

	assert.Equal(t, 0, h.Len())
	assert.Equal(t, -1, h.Cursor())
}

package services

import (
	"fmt"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// History is a bounded, linear undo/redo log over state snapshots.
//
// Writing while the cursor is behind the newest entry discards every entry
// after the cursor. The cursor is -1 iff the log is empty.
// History is not safe for concurrent use; Builder serialises access.
type History struct {
	entries  []domain.HistoryEntry
	cursor   int
	capacity int
}

// NewHistory creates an empty log holding at most capacity entries.
// Capacities outside 1..DefaultHistoryCapacity fall back to the default.
func NewHistory(capacity int) *History {
	if capacity <= 0 || capacity > domain.DefaultHistoryCapacity {
		capacity = domain.DefaultHistoryCapacity
	}
	return &History{cursor: -1, capacity: capacity}
}

// Snapshot truncates the log after the cursor and appends a deep copy of
// state. When the log grows past capacity the oldest entry is evicted and
// the cursor keeps pointing at the same logical entry.
func (h *History) Snapshot(state domain.State, action string, at time.Time) {
	h.entries = h.entries[:h.cursor+1]
	h.entries = append(h.entries, domain.HistoryEntry{
		Timestamp: at,
		State:     state.Clone(),
		Action:    action,
	})
	h.cursor = len(h.entries) - 1

	if len(h.entries) > h.capacity {
		drop := len(h.entries) - h.capacity
		h.entries = append([]domain.HistoryEntry(nil), h.entries[drop:]...)
		h.cursor -= drop
	}
}

// Undo moves the cursor back one entry and returns a copy of it.
func (h *History) Undo() (domain.HistoryEntry, error) {
	if h.cursor <= 0 {
		return domain.HistoryEntry{}, domain.ErrNothingToUndo
	}
	h.cursor--
	return h.at(h.cursor), nil
}

// Redo moves the cursor forward one entry and returns a copy of it.
func (h *History) Redo() (domain.HistoryEntry, error) {
	if h.cursor >= len(h.entries)-1 {
		return domain.HistoryEntry{}, domain.ErrNothingToRedo
	}
	h.cursor++
	return h.at(h.cursor), nil
}

// Current returns a copy of the entry under the cursor.
func (h *History) Current() (domain.HistoryEntry, bool) {
	if h.cursor < 0 {
		return domain.HistoryEntry{}, false
	}
	return h.at(h.cursor), true
}

// CanUndo reports whether Undo would succeed.
func (h *History) CanUndo() bool { return h.cursor > 0 }

// CanRedo reports whether Redo would succeed.
func (h *History) CanRedo() bool { return h.cursor < len(h.entries)-1 }

// Len returns the number of entries.
func (h *History) Len() int { return len(h.entries) }

// Cursor returns the index of the active entry, or -1 when empty.
func (h *History) Cursor() int { return h.cursor }

// Capacity returns the maximum number of entries.
func (h *History) Capacity() int { return h.capacity }

// Entries returns deep copies of all entries, oldest first.
func (h *History) Entries() []domain.HistoryEntry {
	out := make([]domain.HistoryEntry, len(h.entries))
	for i := range h.entries {
		out[i] = h.at(i)
	}
	return out
}

// Load replaces the log with persisted entries and cursor.
// Entries beyond capacity are dropped from the oldest end.
func (h *History) Load(entries []domain.HistoryEntry, cursor int) error {
	if len(entries) == 0 {
		if cursor != -1 && cursor != 0 {
			return fmt.Errorf("%w: cursor %d on empty history", domain.ErrInvalidInput, cursor)
		}
		h.Reset()
		return nil
	}
	if cursor < 0 || cursor >= len(entries) {
		return fmt.Errorf("%w: cursor %d outside %d entries", domain.ErrInvalidInput, cursor, len(entries))
	}

	if drop := len(entries) - h.capacity; drop > 0 {
		entries = entries[drop:]
		cursor -= drop
		if cursor < 0 {
			cursor = 0
		}
	}

	h.entries = make([]domain.HistoryEntry, len(entries))
	for i := range entries {
		h.entries[i] = entries[i]
		h.entries[i].State = entries[i].State.Clone()
	}
	h.cursor = cursor
	return nil
}

// Reset empties the log.
func (h *History) Reset() {
	h.entries = nil
	h.cursor = -1
}

func (h *History) at(i int) domain.HistoryEntry {
	e := h.entries[i]
	e.State = e.State.Clone()
	return e
}

package driving

import (
	"context"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// HistoryView is a read-only copy of the history log and its cursor.
type HistoryView struct {
	Entries []domain.HistoryEntry
	Cursor  int
}

// CanUndo reports whether an earlier entry exists.
func (h HistoryView) CanUndo() bool { return h.Cursor > 0 }

// Current returns the entry under the cursor.
func (h HistoryView) Current() (domain.HistoryEntry, bool) {
	if h.Cursor < 0 || h.Cursor >= len(h.Entries) {
		return domain.HistoryEntry{}, false
	}
	return h.Entries[h.Cursor], true
}

// CanRedo reports whether a later entry exists.
func (h HistoryView) CanRedo() bool { return h.Cursor >= 0 && h.Cursor < len(h.Entries)-1 }

// BuilderService is the portfolio builder context: the live section list,
// the customization record and the history log over both.
//
// Every successful mutation pushes exactly one history snapshot.
// Failed mutations leave state and history unchanged.
type BuilderService interface {
	// Init loads persisted state and pushes the initial snapshot when the
	// history is empty. Init must be called before any other method.
	Init(ctx context.Context) error

	// Close flushes pending persistence.
	Close(ctx context.Context) error

	// State returns a deep copy of the current sections and customization.
	State() domain.State

	// Sections returns the sections in render order.
	Sections() []domain.Section

	// Section returns one section by ID.
	Section(id string) (*domain.Section, error)

	// Customization returns the current customization.
	Customization() domain.Customization

	// NewSection builds an unsaved section of type t with a fresh ID.
	NewSection(t domain.SectionType) (domain.Section, error)

	// AddSection appends a section with order = current count.
	// An empty ID is generated.
	AddSection(ctx context.Context, section domain.Section) (domain.Section, error)

	// UpdateSection merges patch into the section with the given ID.
	UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (domain.Section, error)

	// RemoveSection deletes a section and clears the selection if it matched.
	RemoveSection(ctx context.Context, id string) error

	// ReorderSections moves the section at from to position to.
	ReorderSections(ctx context.Context, from, to int) error

	// MoveSection moves a section by delta positions.
	MoveSection(ctx context.Context, id string, delta int) error

	// SelectSection sets the current selection. An empty ID clears it.
	SelectSection(ctx context.Context, id string) error

	// Selected returns the selected section ID, or "".
	Selected() string

	// UpdateCustomization merges patch into the customization.
	UpdateCustomization(ctx context.Context, patch domain.CustomizationPatch) (domain.Customization, error)

	// Undo restores the previous history entry without snapshotting and
	// returns it.
	Undo(ctx context.Context) (domain.HistoryEntry, error)

	// Redo restores the next history entry without snapshotting and
	// returns it.
	Redo(ctx context.Context) (domain.HistoryEntry, error)

	// History returns the history log and cursor.
	History() HistoryView

	// Save persists the portfolio under domain.StorageKey and clears the dirty flag.
	Save(ctx context.Context) (domain.PersistedPortfolio, error)

	// LoadTemplate replaces state with the template's sections and customization.
	LoadTemplate(ctx context.Context, templateID string) (*domain.Template, error)

	// ClearTemplate resets to no sections and the default customization.
	ClearTemplate(ctx context.Context) error

	// TemplateID returns the ID of the last loaded template, or "".
	TemplateID() string

	// Replace swaps in a whole state (import, shared link) and snapshots label.
	Replace(ctx context.Context, state domain.State, templateID, label string) error

	// Dirty reports whether there are changes since the last save.
	Dirty() bool

	// OnChange registers fn to run after every state change, including undo and redo.
	OnChange(fn func())
}

// Dispatcher routes typed commands to builder operations by action name.
type Dispatcher interface {
	// Dispatch executes cmd. Soft failures return an error and a Result
	// whose notice describes the failure; state is left unchanged.
	Dispatch(ctx context.Context, cmd domain.Command) (domain.Result, error)

	// Actions lists every action the dispatcher handles.
	Actions() []domain.Action
}

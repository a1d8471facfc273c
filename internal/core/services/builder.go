package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Ensure Builder implements the interface.
var _ driving.BuilderService = (*Builder)(nil)

// errNotInitialized is returned by mutations issued before Init.
var errNotInitialized = errors.New("builder not initialized")

// Builder is the portfolio builder context. It owns the section store, the
// customization record and the history log, and serialises every operation
// under one mutex so several driving adapters can share an instance.
//
// The session (history, cursor, selection) is written to the SessionStore
// after every change, or on Flush when persistence is deferred.
type Builder struct {
	portfolios driven.PortfolioStore
	sessions   driven.SessionStore
	templates  driven.TemplateCatalog

	mu          sync.Mutex
	sections    *SectionStore
	custom      domain.Customization
	history     *History
	selected    string
	templateID  string
	dirty       bool
	initialized bool

	deferred  bool
	pending   bool
	listeners []func()

	now   func() time.Time
	newID func() string
}

// NewBuilder creates a builder. Any store may be nil, in which case the
// matching feature degrades (no persistence, no templates).
func NewBuilder(
	portfolios driven.PortfolioStore,
	sessions driven.SessionStore,
	templates driven.TemplateCatalog,
	historyCapacity int,
) *Builder {
	return &Builder{
		portfolios: portfolios,
		sessions:   sessions,
		templates:  templates,
		sections:   NewSectionStore(),
		custom:     domain.DefaultCustomization(),
		history:    NewHistory(historyCapacity),
		now:        time.Now,
		newID:      newSectionID,
	}
}

func newSectionID() string {
	return "section-" + uuid.NewString()
}

// Init restores the last session, falling back to the saved portfolio and
// then to an empty portfolio. When the history is empty it pushes the
// "Initial State" snapshot. Calling Init twice is a no-op.
func (b *Builder) Init(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	logger.Section("Builder Init")
	if !b.restoreSession(ctx) {
		b.restorePortfolio(ctx)
	}

	if b.history.Len() == 0 {
		b.history.Snapshot(b.stateLocked(), domain.LabelInitialState, b.now())
		b.persistLocked(ctx)
	}

	b.initialized = true
	logger.Debug("builder ready: %d sections, history %d/%d",
		b.sections.Len(), b.history.Cursor()+1, b.history.Len())
	return nil
}

func (b *Builder) restoreSession(ctx context.Context) bool {
	if b.sessions == nil {
		return false
	}
	sess, err := b.sessions.LoadSession(ctx, domain.StorageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("loading session: %v", err)
		}
		return false
	}
	if len(sess.Entries) == 0 {
		return false
	}
	if err := b.history.Load(sess.Entries, sess.Cursor); err != nil {
		logger.Warn("discarding stored history: %v", err)
		b.history.Reset()
		return false
	}

	current, _ := b.history.Current()
	if err := b.applyLocked(current.State); err != nil {
		logger.Warn("discarding stored history: %v", err)
		b.history.Reset()
		return false
	}
	if sess.Selected != "" && b.sections.Index(sess.Selected) >= 0 {
		b.selected = sess.Selected
	}
	b.templateID = sess.TemplateID
	b.dirty = sess.Dirty
	logger.Debug("restored session with %d history entries", len(sess.Entries))
	return true
}

func (b *Builder) restorePortfolio(ctx context.Context) {
	if b.portfolios == nil {
		return
	}
	saved, err := b.portfolios.Load(ctx, domain.StorageKey)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("loading saved portfolio: %v", err)
		}
		return
	}
	state, err := prepareState(saved.State())
	if err != nil {
		logger.Warn("ignoring saved portfolio: %v", err)
		return
	}
	if err := b.applyLocked(state); err != nil {
		logger.Warn("ignoring saved portfolio: %v", err)
		return
	}
	logger.Debug("loaded saved portfolio (%d sections)", len(state.Sections))
}

// Close flushes any deferred session write.
func (b *Builder) Close(ctx context.Context) error {
	return b.Flush(ctx)
}

// SetDeferredPersistence switches session writes between immediate (after
// every change) and deferred (on Flush).
func (b *Builder) SetDeferredPersistence(on bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.deferred = on
}

// Flush writes the session if a deferred write is pending.
func (b *Builder) Flush(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.pending {
		return nil
	}
	return b.writeSessionLocked(ctx)
}

// OnChange registers fn to run after every state change. fn runs while the
// builder lock is held and must not call back into the builder.
func (b *Builder) OnChange(fn func()) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.listeners = append(b.listeners, fn)
}

// State returns a deep copy of the current sections and customization.
func (b *Builder) State() domain.State {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stateLocked()
}

// Sections returns the sections in render order.
func (b *Builder) Sections() []domain.Section {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.sections.List()
}

// Section returns one section by ID.
func (b *Builder) Section(id string) (*domain.Section, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	s, err := b.sections.Get(id)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Customization returns the current customization.
func (b *Builder) Customization() domain.Customization {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.custom
}

// NewSection builds an unsaved section of type t with a fresh ID.
func (b *Builder) NewSection(t domain.SectionType) (domain.Section, error) {
	if !t.IsValid() {
		return domain.Section{}, fmt.Errorf("%w: section type %q", domain.ErrUnsupportedType, t)
	}
	return domain.NewSection(b.newID(), t), nil
}

// AddSection appends section. Zero ID, title, content, styles and
// animations are filled from the type defaults.
func (b *Builder) AddSection(ctx context.Context, section domain.Section) (domain.Section, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return domain.Section{}, errNotInitialized
	}
	if !section.Type.IsValid() {
		return domain.Section{}, fmt.Errorf("%w: section type %q", domain.ErrUnsupportedType, section.Type)
	}

	fillSectionDefaults(&section, b.newID)
	content, err := domain.NormalizeContent(section.Content)
	if err != nil {
		return domain.Section{}, err
	}
	section.Content = content

	added, err := b.sections.Add(section)
	if err != nil {
		return domain.Section{}, err
	}
	b.commitLocked(ctx, domain.LabelAddSection, true)
	logger.Debug("added %s section %s at %d", added.Type, added.ID, added.Order)
	return added, nil
}

func fillSectionDefaults(s *domain.Section, newID func() string) {
	if s.ID == "" {
		s.ID = newID()
	}
	if s.Title == "" {
		s.Title = s.Type.DefaultTitle()
	}
	if s.Content == nil {
		s.Content = domain.DefaultContent(s.Type)
	}
	if s.Styles == (domain.SectionStyles{}) {
		s.Styles = domain.DefaultSectionStyles()
	}
	if s.Animations.Type == "" {
		s.Animations = domain.DefaultAnimation()
	}
}

// UpdateSection merges patch into the section. An empty patch is rejected.
func (b *Builder) UpdateSection(ctx context.Context, id string, patch domain.SectionPatch) (domain.Section, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return domain.Section{}, errNotInitialized
	}
	if patch.IsEmpty() {
		return domain.Section{}, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	content, err := domain.NormalizeContent(patch.Content)
	if err != nil {
		return domain.Section{}, err
	}
	patch.Content = content

	updated, err := b.sections.Update(id, patch)
	if err != nil {
		return domain.Section{}, err
	}
	b.commitLocked(ctx, domain.LabelUpdateSection, true)
	logger.Debug("updated section %s", id)
	return updated, nil
}

// RemoveSection deletes a section and clears the selection if it matched.
func (b *Builder) RemoveSection(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return errNotInitialized
	}
	if err := b.sections.Remove(id); err != nil {
		return err
	}
	if b.selected == id {
		b.selected = ""
	}
	b.commitLocked(ctx, domain.LabelRemoveSection, true)
	logger.Debug("removed section %s", id)
	return nil
}

// ReorderSections moves the section at from to position to.
func (b *Builder) ReorderSections(ctx context.Context, from, to int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return errNotInitialized
	}
	return b.reorderLocked(ctx, from, to)
}

// MoveSection moves a section by delta positions.
func (b *Builder) MoveSection(ctx context.Context, id string, delta int) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return errNotInitialized
	}
	from := b.sections.Index(id)
	if from < 0 {
		return fmt.Errorf("section %q: %w", id, domain.ErrNotFound)
	}
	return b.reorderLocked(ctx, from, from+delta)
}

func (b *Builder) reorderLocked(ctx context.Context, from, to int) error {
	if err := b.sections.Reorder(from, to); err != nil {
		return err
	}
	b.commitLocked(ctx, domain.LabelReorderSections, true)
	logger.Debug("moved section %d -> %d", from, to)
	return nil
}

// SelectSection sets the current selection. Selection is not recorded in history.
func (b *Builder) SelectSection(ctx context.Context, id string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if id != "" && b.sections.Index(id) < 0 {
		return fmt.Errorf("section %q: %w", id, domain.ErrNotFound)
	}
	b.selected = id
	b.persistLocked(ctx)
	b.notifyLocked()
	return nil
}

// Selected returns the selected section ID, or "".
func (b *Builder) Selected() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.selected
}

// UpdateCustomization merges patch into the customization.
func (b *Builder) UpdateCustomization(ctx context.Context, patch domain.CustomizationPatch) (domain.Customization, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return domain.Customization{}, errNotInitialized
	}
	if patch.IsEmpty() {
		return domain.Customization{}, fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}
	updated, err := patch.Apply(b.custom)
	if err != nil {
		return domain.Customization{}, err
	}
	b.custom = updated
	b.commitLocked(ctx, domain.LabelUpdateCustomization, true)
	return updated, nil
}

// Undo restores the previous history entry and returns it. It never snapshots.
func (b *Builder) Undo(ctx context.Context) (domain.HistoryEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.restoreLocked(ctx, b.history.Undo, b.history.Redo)
}

// Redo restores the next history entry and returns it. It never snapshots.
func (b *Builder) Redo(ctx context.Context) (domain.HistoryEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.restoreLocked(ctx, b.history.Redo, b.history.Undo)
}

func (b *Builder) restoreLocked(
	ctx context.Context,
	step func() (domain.HistoryEntry, error),
	revert func() (domain.HistoryEntry, error),
) (domain.HistoryEntry, error) {
	entry, err := step()
	if err != nil {
		return domain.HistoryEntry{}, err
	}
	if err := b.applyLocked(entry.State); err != nil {
		_, _ = revert()
		return domain.HistoryEntry{}, err
	}
	b.dirty = true
	b.persistLocked(ctx)
	b.notifyLocked()
	logger.Debug("history cursor at %d/%d (%s)", b.history.Cursor()+1, b.history.Len(), entry.Action)
	return entry, nil
}

// History returns the history log and cursor.
func (b *Builder) History() driving.HistoryView {
	b.mu.Lock()
	defer b.mu.Unlock()
	return driving.HistoryView{Entries: b.history.Entries(), Cursor: b.history.Cursor()}
}

// Save persists the portfolio under domain.StorageKey.
func (b *Builder) Save(ctx context.Context) (domain.PersistedPortfolio, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return domain.PersistedPortfolio{}, errNotInitialized
	}
	if b.portfolios == nil {
		return domain.PersistedPortfolio{}, fmt.Errorf("%w: no portfolio store configured", domain.ErrStorageUnavailable)
	}

	saved := domain.NewPersistedPortfolio(b.stateLocked(), b.now())
	if err := b.portfolios.Save(ctx, domain.StorageKey, saved); err != nil {
		return domain.PersistedPortfolio{}, fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	b.dirty = false
	b.persistLocked(ctx)
	b.notifyLocked()
	logger.Debug("saved portfolio under %s", domain.StorageKey)
	return saved, nil
}

// LoadTemplate replaces sections and customization with the template's.
func (b *Builder) LoadTemplate(ctx context.Context, templateID string) (*domain.Template, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return nil, errNotInitialized
	}
	if b.templates == nil {
		return nil, fmt.Errorf("template %q: %w", templateID, domain.ErrNotFound)
	}

	tpl, err := b.templates.Get(ctx, templateID)
	if err != nil {
		return nil, err
	}
	state, err := prepareState(tpl.State())
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", templateID, err)
	}
	if err := b.applyLocked(state); err != nil {
		return nil, fmt.Errorf("template %q: %w", templateID, err)
	}
	b.templateID = tpl.ID
	b.selected = ""
	b.commitLocked(ctx, domain.LabelLoadTemplate, false)
	logger.Debug("loaded template %s (%d sections)", tpl.ID, len(state.Sections))
	return tpl, nil
}

// ClearTemplate resets to no sections and the default customization.
func (b *Builder) ClearTemplate(ctx context.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return errNotInitialized
	}
	if err := b.applyLocked(domain.State{Customization: domain.DefaultCustomization()}); err != nil {
		return err
	}
	b.templateID = ""
	b.selected = ""
	b.commitLocked(ctx, domain.LabelClearTemplate, false)
	return nil
}

// TemplateID returns the ID of the last loaded template, or "".
func (b *Builder) TemplateID() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.templateID
}

// Replace swaps in a whole state and snapshots label.
func (b *Builder) Replace(ctx context.Context, state domain.State, templateID, label string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return errNotInitialized
	}
	if label == "" {
		return fmt.Errorf("%w: history label is required", domain.ErrInvalidInput)
	}
	prepared, err := prepareState(state)
	if err != nil {
		return err
	}
	if err := b.applyLocked(prepared); err != nil {
		return err
	}
	b.templateID = templateID
	b.selected = ""
	b.commitLocked(ctx, label, false)
	logger.Debug("replaced state (%s, %d sections)", label, len(prepared.Sections))
	return nil
}

// Dirty reports whether there are changes since the last save.
func (b *Builder) Dirty() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.dirty
}

// prepareState validates an external state and converts its content to
// JSON shape. A zero customization is replaced by the default.
func prepareState(state domain.State) (domain.State, error) {
	out := state.Clone()
	if out.Customization == (domain.Customization{}) {
		out.Customization = domain.DefaultCustomization()
	}
	if err := out.Customization.Validate(); err != nil {
		return domain.State{}, err
	}
	for i := range out.Sections {
		content, err := domain.NormalizeContent(out.Sections[i].Content)
		if err != nil {
			return domain.State{}, err
		}
		out.Sections[i].Content = content
	}
	return out, nil
}

func (b *Builder) stateLocked() domain.State {
	return domain.State{Sections: b.sections.List(), Customization: b.custom}
}

// applyLocked replaces sections and customization wholesale.
func (b *Builder) applyLocked(state domain.State) error {
	if err := b.sections.Replace(state.Sections); err != nil {
		return err
	}
	b.custom = state.Customization
	if b.selected != "" && b.sections.Index(b.selected) < 0 {
		b.selected = ""
	}
	return nil
}

// commitLocked records one history snapshot after a successful mutation.
func (b *Builder) commitLocked(ctx context.Context, label string, dirty bool) {
	b.history.Snapshot(b.stateLocked(), label, b.now())
	b.dirty = dirty
	b.persistLocked(ctx)
	b.notifyLocked()
}

func (b *Builder) persistLocked(ctx context.Context) {
	if b.sessions == nil {
		return
	}
	if b.deferred {
		b.pending = true
		return
	}
	_ = b.writeSessionLocked(ctx)
}

func (b *Builder) writeSessionLocked(ctx context.Context) error {
	if b.sessions == nil {
		b.pending = false
		return nil
	}
	sess := domain.Session{
		Entries:    b.history.Entries(),
		Cursor:     b.history.Cursor(),
		Selected:   b.selected,
		TemplateID: b.templateID,
		Dirty:      b.dirty,
	}
	if err := b.sessions.SaveSession(ctx, domain.StorageKey, sess); err != nil {
		logger.Error(err, "saving session")
		b.pending = true
		return fmt.Errorf("%w: %w", domain.ErrStorageUnavailable, err)
	}
	b.pending = false
	return nil
}

func (b *Builder) notifyLocked() {
	for _, fn := range b.listeners {
		fn()
	}
}

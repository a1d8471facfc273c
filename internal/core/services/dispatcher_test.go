package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

type dispatcherFixture struct {
	*builderFixture
	clipboard  *fakeClipboard
	dispatcher *Dispatcher
}

func newDispatcherFixture(t *testing.T) *dispatcherFixture {
	t.Helper()
	f := newBuilderFixture(t)
	clip := &fakeClipboard{}
	exp := newTestExporter(t, f)
	share := NewShareService(f.builder, nil)
	return &dispatcherFixture{
		builderFixture: f,
		clipboard:      clip,
		dispatcher:     NewDispatcher(f.builder, exp, share, NewActionService(clip)),
	}
}

// unknownCommand is a command no handler is registered for.
type unknownCommand struct{}

func (unknownCommand) Action() domain.Action { return "dance" }

func TestDispatcher_Actions(t *testing.T) {
	d := newDispatcherFixture(t).dispatcher
	assert.ElementsMatch(t, domain.AllActions(), d.Actions())
	for _, a := range d.Actions() {
		assert.Contains(t, d.handlers, a)
	}
}

func TestDispatcher_NilAndUnknownCommands(t *testing.T) {
	d := newDispatcherFixture(t).dispatcher

	res, err := d.Dispatch(context.Background(), nil)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.NoticeError, res.Notice.Level)

	res, err = d.Dispatch(context.Background(), unknownCommand{})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, domain.Action("dance"), res.Action)
	assert.Equal(t, "Unknown action", res.Notice.Message)
}

func TestDispatcher_AddSection(t *testing.T) {
	f := newDispatcherFixture(t)

	res, err := f.dispatcher.Dispatch(context.Background(), domain.AddSectionCommand{
		Type:  domain.SectionAbout,
		Title: "Bio",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.ActionAddSection, res.Action)
	assert.Equal(t, domain.Success("Section added successfully!"), res.Notice)
	require.NotNil(t, res.Section)
	assert.Equal(t, "Bio", res.Section.Title)
	assert.Equal(t, "section-1", res.Section.ID)
	assert.Len(t, f.builder.Sections(), 1)
}

func TestDispatcher_AcceptsPointerCommands(t *testing.T) {
	f := newDispatcherFixture(t)

	_, err := f.dispatcher.Dispatch(context.Background(), &domain.AddSectionCommand{Type: domain.SectionHero})
	require.NoError(t, err)
	assert.Len(t, f.builder.Sections(), 1)
}

func TestDispatcher_AddSectionUnknownType(t *testing.T) {
	f := newDispatcherFixture(t)

	res, err := f.dispatcher.Dispatch(context.Background(), domain.AddSectionCommand{Type: "gallery"})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)
	assert.Equal(t, domain.NoticeError, res.Notice.Level)
	assert.Empty(t, f.builder.Sections())
}

func TestDispatcher_UndoRedoNotices(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	res, err := f.dispatcher.Dispatch(ctx, domain.UndoCommand{})
	require.ErrorIs(t, err, domain.ErrNothingToUndo)
	assert.Equal(t, domain.Warning("Nothing to undo"), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.RedoCommand{})
	require.ErrorIs(t, err, domain.ErrNothingToRedo)
	assert.Equal(t, domain.Warning("Nothing to redo"), res.Notice)

	_, err = f.dispatcher.Dispatch(ctx, domain.AddSectionCommand{Type: domain.SectionHero})
	require.NoError(t, err)

	res, err = f.dispatcher.Dispatch(ctx, domain.UndoCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Info("Undo: Add Section"), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.RedoCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Info("Redo: Add Section"), res.Notice)
}

func TestDispatcher_UndoNoticeNamesRevertedChange(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	_, err := f.dispatcher.Dispatch(ctx, domain.AddSectionCommand{Type: domain.SectionAbout})
	require.NoError(t, err)
	theme := domain.ThemeDark
	_, err = f.dispatcher.Dispatch(ctx, domain.UpdateCustomizationCommand{
		Patch: domain.CustomizationPatch{Theme: &theme},
	})
	require.NoError(t, err)

	res, err := f.dispatcher.Dispatch(ctx, domain.UndoCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Info("Undo: Update Customization"), res.Notice)
	assert.Equal(t, domain.ThemeLight, f.builder.Customization().Theme)

	res, err = f.dispatcher.Dispatch(ctx, domain.RedoCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Info("Redo: Update Customization"), res.Notice)
}

func TestDispatcher_SectionLifecycle(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	a := f.add(t, domain.SectionHero)
	b := f.add(t, domain.SectionAbout)

	res, err := f.dispatcher.Dispatch(ctx, domain.UpdateSectionCommand{
		ID:    a.ID,
		Patch: domain.SectionPatch{Title: strPtr("Intro")},
	})
	require.NoError(t, err)
	assert.Equal(t, "Intro", res.Section.Title)

	res, err = f.dispatcher.Dispatch(ctx, domain.ReorderSectionsCommand{From: 0, To: 1})
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeSuccess, res.Notice.Level)
	assert.Equal(t, b.ID, f.builder.Sections()[0].ID)

	res, err = f.dispatcher.Dispatch(ctx, domain.SelectSectionCommand{ID: b.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.Info("Selected About Me"), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.SelectSectionCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Info("Selection cleared"), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.RemoveSectionCommand{ID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Section deleted"), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.RemoveSectionCommand{ID: a.ID})
	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, domain.NoticeError, res.Notice.Level)
}

func TestDispatcher_Customization(t *testing.T) {
	f := newDispatcherFixture(t)

	_, err := f.dispatcher.Dispatch(context.Background(), domain.UpdateCustomizationCommand{
		Patch: domain.CustomizationPatch{ParticlesEnabled: boolPtr(false)},
	})
	require.NoError(t, err)
	assert.False(t, f.builder.Customization().ParticlesEnabled)
}

func TestDispatcher_SaveAndTemplates(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()

	res, err := f.dispatcher.Dispatch(ctx, domain.LoadTemplateCommand{TemplateID: "developer-pro"})
	require.NoError(t, err)
	assert.Equal(t, domain.Success(`Template "Developer Pro" loaded`), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.SaveCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Portfolio saved!"), res.Notice)

	res, err = f.dispatcher.Dispatch(ctx, domain.ClearTemplateCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeInfo, res.Notice.Level)
	assert.Empty(t, f.builder.Sections())

	_, err = f.dispatcher.Dispatch(ctx, domain.LoadTemplateCommand{TemplateID: "nope"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDispatcher_ExportJSONCopiesToClipboard(t *testing.T) {
	f := newDispatcherFixture(t)

	res, err := f.dispatcher.Dispatch(context.Background(), domain.ExportJSONCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Portfolio data copied to clipboard!"), res.Notice)
	assert.Equal(t, res.Output, f.clipboard.text)
	assert.True(t, json.Valid([]byte(res.Output)))
}

func TestDispatcher_ExportJSONWithoutClipboard(t *testing.T) {
	f := newDispatcherFixture(t)
	f.clipboard.err = errors.New("no display")

	res, err := f.dispatcher.Dispatch(context.Background(), domain.ExportJSONCommand{})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Portfolio exported as JSON!"), res.Notice)
	assert.NotEmpty(t, res.Output)
}

func TestDispatcher_ExportHTML(t *testing.T) {
	f := newDispatcherFixture(t)
	dir := t.TempDir()

	res, err := f.dispatcher.Dispatch(context.Background(), domain.ExportHTMLCommand{Dir: dir})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Portfolio exported as HTML!"), res.Notice)
	assert.FileExists(t, res.Path)
}

func TestDispatcher_ExportPDF(t *testing.T) {
	f := newDispatcherFixture(t)

	res, err := f.dispatcher.Dispatch(context.Background(), domain.ExportPDFCommand{})
	require.ErrorIs(t, err, domain.ErrNotImplemented)
	assert.Equal(t, domain.Info("PDF export coming soon!"), res.Notice)
}

func TestDispatcher_ImportPortfolio(t *testing.T) {
	f := newDispatcherFixture(t)
	data, err := json.Marshal(samplePortfolio(t))
	require.NoError(t, err)

	res, err := f.dispatcher.Dispatch(context.Background(), domain.ImportPortfolioCommand{Data: data})
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeSuccess, res.Notice.Level)
	assert.Len(t, f.builder.Sections(), 2)

	res, err = f.dispatcher.Dispatch(context.Background(), domain.ImportPortfolioCommand{Data: []byte("{")})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Equal(t, domain.Failure("Failed to import portfolio"), res.Notice)
}

func TestDispatcher_ShareLinkRoundTrip(t *testing.T) {
	f := newDispatcherFixture(t)
	ctx := context.Background()
	f.add(t, domain.SectionContact)
	want := f.builder.State()

	res, err := f.dispatcher.Dispatch(ctx, domain.ShareLinkCommand{Copy: true})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Share link copied to clipboard!"), res.Notice)
	assert.Equal(t, res.Output, f.clipboard.text)
	assert.False(t, f.builder.Dirty(), "sharing saves first")

	_, err = f.dispatcher.Dispatch(ctx, domain.ClearTemplateCommand{})
	require.NoError(t, err)

	res, err = f.dispatcher.Dispatch(ctx, domain.LoadShareLinkCommand{Link: res.Output})
	require.NoError(t, err)
	assert.Equal(t, domain.Success("Shared portfolio loaded!"), res.Notice)
	requireSameState(t, want, f.builder.State())
}

func TestDispatcher_ShareLinkClipboardUnavailable(t *testing.T) {
	f := newDispatcherFixture(t)
	f.clipboard.err = errors.New("no display")

	res, err := f.dispatcher.Dispatch(context.Background(), domain.ShareLinkCommand{Copy: true})
	require.NoError(t, err)
	assert.Equal(t, domain.NoticeWarning, res.Notice.Level)
	assert.NotEmpty(t, res.Output)
}

func TestDispatcher_LoadShareLinkFailure(t *testing.T) {
	f := newDispatcherFixture(t)
	f.add(t, domain.SectionHero)
	before := f.builder.State()

	res, err := f.dispatcher.Dispatch(context.Background(), domain.LoadShareLinkCommand{Link: "???"})
	require.ErrorIs(t, err, domain.ErrInvalidShareLink)
	assert.Equal(t, domain.Failure("Failed to load shared portfolio"), res.Notice)
	requireSameState(t, before, f.builder.State())
}

func TestDispatcher_MissingCollaborators(t *testing.T) {
	f := newBuilderFixture(t)
	d := NewDispatcher(f.builder, nil, nil, nil)

	for _, cmd := range []domain.Command{
		domain.ExportJSONCommand{},
		domain.ExportHTMLCommand{},
		domain.ExportPDFCommand{},
		domain.ImportPortfolioCommand{},
		domain.ShareLinkCommand{},
		domain.LoadShareLinkCommand{},
	} {
		res, err := d.Dispatch(context.Background(), cmd)
		require.ErrorIs(t, err, domain.ErrNotImplemented, cmd.Action())
		assert.False(t, res.Notice.IsZero())
	}
}

func TestFailureNotice(t *testing.T) {
	assert.Equal(t, domain.Failure("Storage is unavailable"), failureNotice(domain.ErrStorageUnavailable))
	assert.Equal(t, domain.Failure("boom"), failureNotice(errors.New("boom")))
	assert.Equal(t, domain.NoticeInfo, failureNotice(domain.ErrNotImplemented).Level)
}

package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func TestServer_SectionTools(t *testing.T) {
	ctx := context.Background()
	builder, ports := newServices(t)
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, out, err := server.handleAddSection(ctx, nil, AddSectionInput{Type: "about", ID: "about-1"})
	require.NoError(t, err)
	assert.Equal(t, "add_section", out.Action)
	assert.Equal(t, "success", out.Level)
	require.NotNil(t, out.Section)
	assert.Equal(t, "About Me", out.Section.Title)

	_, _, err = server.handleAddSection(ctx, nil, AddSectionInput{
		Type:    "contact",
		ID:      "contact-1",
		Content: map[string]any{"email": "me@example.com"},
	})
	require.NoError(t, err)

	title := "Who I Am"
	_, out, err = server.handleUpdateSection(ctx, nil, UpdateSectionInput{
		ID:    "about-1",
		Patch: domain.SectionPatch{Title: &title},
	})
	require.NoError(t, err)
	assert.Equal(t, "Who I Am", out.Section.Title)

	_, _, err = server.handleReorderSections(ctx, nil, ReorderInput{From: 1, To: 0})
	require.NoError(t, err)

	_, list, err := server.handleListSections(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.Equal(t, 2, list.Count)
	assert.Equal(t, "contact-1", list.Sections[0].ID)
	assert.Equal(t, 0, list.Sections[0].Order)
	assert.Equal(t, "about-1", list.Sections[1].ID)
	assert.True(t, list.CanUndo)
	assert.False(t, list.CanRedo)

	_, _, err = server.handleRemoveSection(ctx, nil, SectionIDInput{ID: "contact-1"})
	require.NoError(t, err)
	assert.Len(t, builder.Sections(), 1)

	_, out, err = server.handleUndo(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Equal(t, "undo", out.Action)
	assert.Len(t, builder.Sections(), 2)

	_, _, err = server.handleRedo(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	assert.Len(t, builder.Sections(), 1)
}

func TestServer_ToolErrors(t *testing.T) {
	ctx := context.Background()
	builder, ports := newServices(t)
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleAddSection(ctx, nil, AddSectionInput{Type: "gallery"})
	require.ErrorIs(t, err, domain.ErrUnsupportedType)

	_, _, err = server.handleRemoveSection(ctx, nil, SectionIDInput{ID: "missing"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	_, _, err = server.handleUndo(ctx, nil, EmptyInput{})
	require.ErrorIs(t, err, domain.ErrNothingToUndo)
	assert.Contains(t, err.Error(), "Nothing to undo")

	assert.Empty(t, builder.Sections())
	assert.Len(t, builder.History().Entries, 1)
}

func TestServer_CustomizationTool(t *testing.T) {
	ctx := context.Background()
	builder, ports := newServices(t)
	server, err := NewServer(ports)
	require.NoError(t, err)

	theme := domain.ThemeDark
	accent := "#112233"
	_, out, err := server.handleUpdateCustomization(ctx, nil, CustomizationInput{
		Patch: domain.CustomizationPatch{Theme: &theme, PrimaryColor: &accent},
	})
	require.NoError(t, err)
	assert.Equal(t, "update_customization", out.Action)
	assert.Equal(t, domain.ThemeDark, builder.Customization().Theme)
	assert.Equal(t, "#112233", builder.Customization().PrimaryColor)

	bad := "red"
	_, _, err = server.handleUpdateCustomization(ctx, nil, CustomizationInput{
		Patch: domain.CustomizationPatch{PrimaryColor: &bad},
	})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestServer_ExportAndShareTools(t *testing.T) {
	ctx := context.Background()
	_, ports := newServices(t)
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, _, err = server.handleAddSection(ctx, nil, AddSectionInput{Type: "hero"})
	require.NoError(t, err)

	dir := t.TempDir()
	_, out, err := server.handleExportHTML(ctx, nil, ExportHTMLInput{Dir: dir})
	require.NoError(t, err)
	assert.FileExists(t, out.Path)

	_, out, err = server.handleShareLink(ctx, nil, EmptyInput{})
	require.NoError(t, err)
	require.NotEmpty(t, out.Output)
	link := out.Output

	otherBuilder, otherPorts := newServices(t)
	other, err := NewServer(otherPorts)
	require.NoError(t, err)
	_, _, err = other.handleLoadShareLink(ctx, nil, LoadShareLinkInput{Link: link})
	require.NoError(t, err)
	require.Len(t, otherBuilder.Sections(), 1)
	assert.Equal(t, domain.SectionHero, otherBuilder.Sections()[0].Type)

	_, _, err = other.handleLoadShareLink(ctx, nil, LoadShareLinkInput{Link: "%%%"})
	require.ErrorIs(t, err, domain.ErrInvalidShareLink)
}

func TestServer_TemplateTools(t *testing.T) {
	ctx := context.Background()
	builder, ports := newServices(t)
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, list, err := server.handleListTemplates(ctx, nil, ListTemplatesInput{})
	require.NoError(t, err)
	assert.Equal(t, 2, list.Count)
	assert.Equal(t, "minimal-mono", list.Templates[0].ID)
	assert.Equal(t, 1, list.Templates[0].Sections)

	_, list, err = server.handleListTemplates(ctx, nil, ListTemplatesInput{Category: "bold"})
	require.NoError(t, err)
	require.Equal(t, 1, list.Count)
	assert.True(t, list.Templates[0].Featured)

	_, out, err := server.handleLoadTemplate(ctx, nil, LoadTemplateInput{TemplateID: "minimal-mono"})
	require.NoError(t, err)
	assert.Equal(t, "load_template", out.Action)
	assert.Len(t, builder.Sections(), 1)
	assert.Equal(t, "minimal-mono", builder.TemplateID())

	_, _, err = server.handleLoadTemplate(ctx, nil, LoadTemplateInput{TemplateID: "nope"})
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServer_ListTemplates_Optional(t *testing.T) {
	_, ports := newServices(t)
	ports.Templates = nil
	server, err := NewServer(ports)
	require.NoError(t, err)

	_, list, err := server.handleListTemplates(context.Background(), nil, ListTemplatesInput{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Count)
	assert.NotNil(t, list.Templates)

	ports.Templates = &mockTemplateService{err: errors.New("catalogue unavailable")}
	_, _, err = server.handleListTemplates(context.Background(), nil, ListTemplatesInput{})
	require.Error(t, err)
}

func TestServer_DispatchPassesCommands(t *testing.T) {
	builder, _ := newServices(t)
	dispatcher := &mockDispatcher{res: domain.Result{Notice: domain.Success("ok"), Path: "/tmp/x.html"}}
	server, err := NewServer(&Ports{Builder: builder, Dispatcher: dispatcher})
	require.NoError(t, err)

	_, out, err := server.handleExportHTML(context.Background(), nil, ExportHTMLInput{Dir: "/srv"})
	require.NoError(t, err)
	assert.Equal(t, domain.ExportHTMLCommand{Dir: "/srv"}, dispatcher.last)
	assert.Equal(t, "/tmp/x.html", out.Path)
	assert.Equal(t, "ok", out.Message)

	_, _, err = server.handleReorderSections(context.Background(), nil, ReorderInput{From: 2, To: 3})
	require.NoError(t, err)
	assert.Equal(t, domain.ReorderSectionsCommand{From: 2, To: 3}, dispatcher.last)

	dispatcher.err = domain.ErrIndexOutOfRange
	dispatcher.res = domain.Result{Notice: domain.Failure("Invalid position")}
	_, _, err = server.handleReorderSections(context.Background(), nil, ReorderInput{From: 9, To: 0})
	require.ErrorIs(t, err, domain.ErrIndexOutOfRange)
	assert.Contains(t, err.Error(), "Invalid position")
}

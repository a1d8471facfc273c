package mcp

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// EmptyInput is the input schema for tools without arguments.
type EmptyInput struct{}

// AddSectionInput is the input schema for the add_section tool.
type AddSectionInput struct {
	Type    string         `json:"type" jsonschema:"section type: hero, about, projects, skills, experience, education, contact, testimonials or custom"`
	ID      string         `json:"id,omitempty" jsonschema:"optional section id (generated when empty)"`
	Title   string         `json:"title,omitempty" jsonschema:"optional title (type default when empty)"`
	Content map[string]any `json:"content,omitempty" jsonschema:"optional content replacing the type defaults"`
}

// UpdateSectionInput is the input schema for the update_section tool.
type UpdateSectionInput struct {
	ID    string              `json:"id" jsonschema:"id of the section to update"`
	Patch domain.SectionPatch `json:"patch" jsonschema:"fields to merge into the section; content keys are merged one by one"`
}

// SectionIDInput is the input schema for tools addressing one section.
type SectionIDInput struct {
	ID string `json:"id" jsonschema:"section id"`
}

// ReorderInput is the input schema for the reorder_sections tool.
type ReorderInput struct {
	From int `json:"from" jsonschema:"current zero-based position"`
	To   int `json:"to" jsonschema:"target zero-based position"`
}

// CustomizationInput is the input schema for the update_customization tool.
type CustomizationInput struct {
	Patch domain.CustomizationPatch `json:"patch" jsonschema:"customization fields to change"`
}

// ExportHTMLInput is the input schema for the export_html tool.
type ExportHTMLInput struct {
	Dir string `json:"dir,omitempty" jsonschema:"output directory (configured export dir when empty)"`
}

// LoadShareLinkInput is the input schema for the load_share_link tool.
type LoadShareLinkInput struct {
	Link string `json:"link" jsonschema:"share link or bare base64 payload"`
}

// LoadTemplateInput is the input schema for the load_template tool.
type LoadTemplateInput struct {
	TemplateID string `json:"template_id" jsonschema:"template id from list_templates"`
}

// ListTemplatesInput is the input schema for the list_templates tool.
type ListTemplatesInput struct {
	Category string `json:"category,omitempty" jsonschema:"optional category filter"`
}

// CommandOutput is the output schema for every command tool.
type CommandOutput struct {
	Action  string          `json:"action"`
	Level   string          `json:"level"`
	Message string          `json:"message"`
	Section *domain.Section `json:"section,omitempty"`
	Output  string          `json:"output,omitempty"`
	Path    string          `json:"path,omitempty"`
}

// SectionSummary is one row of the list_sections output.
type SectionSummary struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	Title   string `json:"title"`
	Order   int    `json:"order"`
	Visible bool   `json:"visible"`
}

// ListSectionsOutput is the output schema for the list_sections tool.
type ListSectionsOutput struct {
	Sections []SectionSummary `json:"sections"`
	Count    int              `json:"count"`
	Selected string           `json:"selected,omitempty"`
	CanUndo  bool             `json:"can_undo"`
	CanRedo  bool             `json:"can_redo"`
}

// TemplateSummary is one row of the list_templates output.
type TemplateSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Featured    bool   `json:"featured"`
	Sections    int    `json:"sections"`
}

// ListTemplatesOutput is the output schema for the list_templates tool.
type ListTemplatesOutput struct {
	Templates []TemplateSummary `json:"templates"`
	Count     int               `json:"count"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_sections",
		Description: "List portfolio sections in render order",
	}, s.handleListSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "add_section",
		Description: "Append a section with type defaults",
	}, s.handleAddSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_section",
		Description: "Merge changes into a section",
	}, s.handleUpdateSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "remove_section",
		Description: "Remove a section",
	}, s.handleRemoveSection)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "reorder_sections",
		Description: "Move the section at one position to another",
	}, s.handleReorderSections)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "undo",
		Description: "Undo the last change",
	}, s.handleUndo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "redo",
		Description: "Redo the last undone change",
	}, s.handleRedo)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "update_customization",
		Description: "Change colours, fonts, animation speed, particles or theme",
	}, s.handleUpdateCustomization)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "export_html",
		Description: "Save the portfolio and write it as a standalone HTML file",
	}, s.handleExportHTML)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "share_link",
		Description: "Encode the portfolio into a share link",
	}, s.handleShareLink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_share_link",
		Description: "Replace the portfolio with one decoded from a share link",
	}, s.handleLoadShareLink)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "load_template",
		Description: "Replace the portfolio with a template's sections and theme",
	}, s.handleLoadTemplate)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "list_templates",
		Description: "List available portfolio templates",
	}, s.handleListTemplates)
}

// dispatch runs cmd and converts the result to the tool output.
func (s *Server) dispatch(ctx context.Context, cmd domain.Command) (*mcp.CallToolResult, CommandOutput, error) {
	res, err := s.ports.Dispatcher.Dispatch(ctx, cmd)
	if err != nil {
		return nil, CommandOutput{}, fmt.Errorf("%s: %w", res.Notice.Message, err)
	}
	return nil, CommandOutput{
		Action:  string(res.Action),
		Level:   string(res.Notice.Level),
		Message: res.Notice.Message,
		Section: res.Section,
		Output:  res.Output,
		Path:    res.Path,
	}, nil
}

// handleListSections handles the list_sections tool invocation.
func (s *Server) handleListSections(
	_ context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, ListSectionsOutput, error) {
	sections := s.ports.Builder.Sections()
	history := s.ports.Builder.History()

	output := ListSectionsOutput{
		Sections: make([]SectionSummary, len(sections)),
		Count:    len(sections),
		Selected: s.ports.Builder.Selected(),
		CanUndo:  history.CanUndo(),
		CanRedo:  history.CanRedo(),
	}
	for i := range sections {
		output.Sections[i] = SectionSummary{
			ID:      sections[i].ID,
			Type:    sections[i].Type.String(),
			Title:   sections[i].Title,
			Order:   sections[i].Order,
			Visible: sections[i].Visible,
		}
	}
	return nil, output, nil
}

func (s *Server) handleAddSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AddSectionInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.AddSectionCommand{
		Type:    domain.SectionType(input.Type),
		ID:      input.ID,
		Title:   input.Title,
		Content: input.Content,
	})
}

func (s *Server) handleUpdateSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input UpdateSectionInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.UpdateSectionCommand{ID: input.ID, Patch: input.Patch})
}

func (s *Server) handleRemoveSection(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SectionIDInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.RemoveSectionCommand{ID: input.ID})
}

func (s *Server) handleReorderSections(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ReorderInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.ReorderSectionsCommand{From: input.From, To: input.To})
}

func (s *Server) handleUndo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.UndoCommand{})
}

func (s *Server) handleRedo(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.RedoCommand{})
}

func (s *Server) handleUpdateCustomization(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input CustomizationInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.UpdateCustomizationCommand{Patch: input.Patch})
}

func (s *Server) handleExportHTML(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ExportHTMLInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.ExportHTMLCommand{Dir: input.Dir})
}

func (s *Server) handleShareLink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	_ EmptyInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.ShareLinkCommand{})
}

func (s *Server) handleLoadShareLink(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadShareLinkInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.LoadShareLinkCommand{Link: input.Link})
}

func (s *Server) handleLoadTemplate(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input LoadTemplateInput,
) (*mcp.CallToolResult, CommandOutput, error) {
	return s.dispatch(ctx, domain.LoadTemplateCommand{TemplateID: input.TemplateID})
}

// handleListTemplates handles the list_templates tool invocation.
func (s *Server) handleListTemplates(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ListTemplatesInput,
) (*mcp.CallToolResult, ListTemplatesOutput, error) {
	if s.ports.Templates == nil {
		return nil, ListTemplatesOutput{Templates: []TemplateSummary{}}, nil
	}

	templates, err := s.ports.Templates.List(ctx, domain.TemplateCategory(input.Category))
	if err != nil {
		return nil, ListTemplatesOutput{}, err
	}

	output := ListTemplatesOutput{
		Templates: make([]TemplateSummary, len(templates)),
		Count:     len(templates),
	}
	for i := range templates {
		output.Templates[i] = TemplateSummary{
			ID:          templates[i].ID,
			Name:        templates[i].Name,
			Description: templates[i].Description,
			Category:    string(templates[i].Category),
			Featured:    templates[i].Featured,
			Sections:    len(templates[i].Sections),
		}
	}
	return nil, output, nil
}

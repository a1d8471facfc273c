package domain

import (
	"encoding/json"
	"fmt"
	"sort"
)

// Action names a builder command in the dispatch table.
type Action string

// Available actions.
const (
	ActionAddSection          Action = "add_section"
	ActionUpdateSection       Action = "update_section"
	ActionRemoveSection       Action = "remove_section"
	ActionReorderSections     Action = "reorder_sections"
	ActionSelectSection       Action = "select_section"
	ActionUpdateCustomization Action = "update_customization"
	ActionUndo                Action = "undo"
	ActionRedo                Action = "redo"
	ActionSave                Action = "save"
	ActionLoadTemplate        Action = "load_template"
	ActionClearTemplate       Action = "clear_template"
	ActionImportPortfolio     Action = "import_portfolio"
	ActionExportJSON          Action = "export_json"
	ActionExportHTML          Action = "export_html"
	ActionExportPDF           Action = "export_pdf"
	ActionShareLink           Action = "share_link"
	ActionLoadShareLink       Action = "load_share_link"
)

// Command is a typed request for one builder action.
type Command interface {
	Action() Action
}

// AddSectionCommand appends a new section with type-derived defaults.
// ID, Title and Content are optional overrides.
type AddSectionCommand struct {
	Type    SectionType    `json:"type"`
	ID      string         `json:"id,omitempty"`
	Title   string         `json:"title,omitempty"`
	Content map[string]any `json:"content,omitempty"`
}

// UpdateSectionCommand merges a patch into a section.
type UpdateSectionCommand struct {
	ID    string       `json:"id"`
	Patch SectionPatch `json:"patch"`
}

// RemoveSectionCommand deletes a section.
type RemoveSectionCommand struct {
	ID string `json:"id"`
}

// ReorderSectionsCommand moves the section at From to To.
type ReorderSectionsCommand struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// SelectSectionCommand sets the current selection; an empty ID clears it.
type SelectSectionCommand struct {
	ID string `json:"id"`
}

// UpdateCustomizationCommand merges a patch into the customization.
type UpdateCustomizationCommand struct {
	Patch CustomizationPatch `json:"patch"`
}

// UndoCommand moves the history cursor back.
type UndoCommand struct{}

// RedoCommand moves the history cursor forward.
type RedoCommand struct{}

// SaveCommand persists the portfolio under the storage key.
type SaveCommand struct{}

// LoadTemplateCommand replaces state with a catalogue template.
type LoadTemplateCommand struct {
	TemplateID string `json:"templateId"`
}

// ClearTemplateCommand resets to an empty portfolio with the default theme.
type ClearTemplateCommand struct{}

// ImportPortfolioCommand replaces state from a JSON export document.
type ImportPortfolioCommand struct {
	Data json.RawMessage `json:"data"`
}

// ExportJSONCommand renders the JSON export document.
type ExportJSONCommand struct{}

// ExportHTMLCommand writes portfolio.html into Dir (settings default when empty).
type ExportHTMLCommand struct {
	Dir string `json:"dir,omitempty"`
}

// ExportPDFCommand requests a PDF export.
type ExportPDFCommand struct{}

// ShareLinkCommand encodes the current state as a link.
type ShareLinkCommand struct {
	Copy bool `json:"copy,omitempty"`
}

// LoadShareLinkCommand replaces state from a share link or bare payload.
type LoadShareLinkCommand struct {
	Link string `json:"link"`
}

// Action implementations.
func (AddSectionCommand) Action() Action          { return ActionAddSection }
func (UpdateSectionCommand) Action() Action       { return ActionUpdateSection }
func (RemoveSectionCommand) Action() Action       { return ActionRemoveSection }
func (ReorderSectionsCommand) Action() Action     { return ActionReorderSections }
func (SelectSectionCommand) Action() Action       { return ActionSelectSection }
func (UpdateCustomizationCommand) Action() Action { return ActionUpdateCustomization }
func (UndoCommand) Action() Action                { return ActionUndo }
func (RedoCommand) Action() Action                { return ActionRedo }
func (SaveCommand) Action() Action                { return ActionSave }
func (LoadTemplateCommand) Action() Action        { return ActionLoadTemplate }
func (ClearTemplateCommand) Action() Action       { return ActionClearTemplate }
func (ImportPortfolioCommand) Action() Action     { return ActionImportPortfolio }
func (ExportJSONCommand) Action() Action          { return ActionExportJSON }
func (ExportHTMLCommand) Action() Action          { return ActionExportHTML }
func (ExportPDFCommand) Action() Action           { return ActionExportPDF }
func (ShareLinkCommand) Action() Action           { return ActionShareLink }
func (LoadShareLinkCommand) Action() Action       { return ActionLoadShareLink }

// commandFactories builds an empty command per action for decoding.
var commandFactories = map[Action]func() Command{
	ActionAddSection:          func() Command { return &AddSectionCommand{} },
	ActionUpdateSection:       func() Command { return &UpdateSectionCommand{} },
	ActionRemoveSection:       func() Command { return &RemoveSectionCommand{} },
	ActionReorderSections:     func() Command { return &ReorderSectionsCommand{} },
	ActionSelectSection:       func() Command { return &SelectSectionCommand{} },
	ActionUpdateCustomization: func() Command { return &UpdateCustomizationCommand{} },
	ActionUndo:                func() Command { return &UndoCommand{} },
	ActionRedo:                func() Command { return &RedoCommand{} },
	ActionSave:                func() Command { return &SaveCommand{} },
	ActionLoadTemplate:        func() Command { return &LoadTemplateCommand{} },
	ActionClearTemplate:       func() Command { return &ClearTemplateCommand{} },
	ActionImportPortfolio:     func() Command { return &ImportPortfolioCommand{} },
	ActionExportJSON:          func() Command { return &ExportJSONCommand{} },
	ActionExportHTML:          func() Command { return &ExportHTMLCommand{} },
	ActionExportPDF:           func() Command { return &ExportPDFCommand{} },
	ActionShareLink:           func() Command { return &ShareLinkCommand{} },
	ActionLoadShareLink:       func() Command { return &LoadShareLinkCommand{} },
}

// AllActions returns every action name, sorted.
func AllActions() []Action {
	actions := make([]Action, 0, len(commandFactories))
	for a := range commandFactories {
		actions = append(actions, a)
	}
	sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
	return actions
}

// DecodeCommand builds the typed command for action from JSON arguments.
// Empty args decode to the zero command.
func DecodeCommand(action Action, args []byte) (Command, error) {
	factory, ok := commandFactories[action]
	if !ok {
		return nil, fmt.Errorf("%w: action %q", ErrUnsupportedType, action)
	}
	ptr := factory()
	if len(args) > 0 {
		if err := json.Unmarshal(args, ptr); err != nil {
			return nil, fmt.Errorf("%w: arguments for %s: %v", ErrInvalidInput, action, err)
		}
	}
	return derefCommand(ptr), nil
}

// derefCommand returns the value form of a decoded command pointer.
func derefCommand(c Command) Command {
	switch v := c.(type) {
	case *AddSectionCommand:
		return *v
	case *UpdateSectionCommand:
		return *v
	case *RemoveSectionCommand:
		return *v
	case *ReorderSectionsCommand:
		return *v
	case *SelectSectionCommand:
		return *v
	case *UpdateCustomizationCommand:
		return *v
	case *UndoCommand:
		return *v
	case *RedoCommand:
		return *v
	case *SaveCommand:
		return *v
	case *LoadTemplateCommand:
		return *v
	case *ClearTemplateCommand:
		return *v
	case *ImportPortfolioCommand:
		return *v
	case *ExportJSONCommand:
		return *v
	case *ExportHTMLCommand:
		return *v
	case *ExportPDFCommand:
		return *v
	case *ShareLinkCommand:
		return *v
	case *LoadShareLinkCommand:
		return *v
	default:
		return c
	}
}

// Result is what a dispatched command produced.
type Result struct {
	Action Action `json:"action"`
	Notice Notice `json:"notice"`

	// Section is set by commands that create or change one section.
	Section *Section `json:"section,omitempty"`

	// Output carries textual output such as a share link or JSON export.
	Output string `json:"output,omitempty"`

	// Path is set by commands that write a file.
	Path string `json:"path,omitempty"`
}

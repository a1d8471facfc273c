package domain

import "time"

// DefaultHistoryCapacity is the maximum number of history entries kept.
const DefaultHistoryCapacity = 50

// Action labels recorded on history entries.
const (
	LabelInitialState        = "Initial State"
	LabelAddSection          = "Add Section"
	LabelUpdateSection       = "Update Section"
	LabelRemoveSection       = "Remove Section"
	LabelReorderSections     = "Reorder Sections"
	LabelUpdateCustomization = "Update Customization"
	LabelLoadTemplate        = "Load Template"
	LabelClearTemplate       = "Clear Template"
	LabelImportPortfolio     = "Import Portfolio"
	LabelLoadShared          = "Load Shared Portfolio"
)

// State is the (sections, customization) pair captured by history.
type State struct {
	Sections      []Section     `json:"sections"`
	Customization Customization `json:"customization"`
}

// Clone returns a deep, independent copy of the state.
func (s State) Clone() State {
	out := State{Customization: s.Customization}
	if s.Sections != nil {
		out.Sections = make([]Section, len(s.Sections))
		for i := range s.Sections {
			out.Sections[i] = s.Sections[i].Clone()
		}
	}
	return out
}

// HistoryEntry is an immutable snapshot of the builder state.
type HistoryEntry struct {
	Timestamp time.Time `json:"timestamp"`
	State     State     `json:"state"`
	Action    string    `json:"action"`
}

// Session is the persisted working context of a builder: the history log,
// its cursor and the current selection.
type Session struct {
	Entries    []HistoryEntry `json:"entries"`
	Cursor     int            `json:"cursor"`
	Selected   string         `json:"selected,omitempty"`
	TemplateID string         `json:"templateId,omitempty"`
	Dirty      bool           `json:"dirty"`
}

package domain

import "time"

// Persistence identifiers.
const (
	// StorageKey is the fixed key the portfolio is persisted under.
	StorageKey = "portfolioCraft-data"

	// PersistVersion is written into persisted portfolios and share links.
	PersistVersion = "1.0"

	// ExportVersion is written into JSON exports.
	ExportVersion = "2.0.0"

	// ExportFilename is the default HTML export file name.
	ExportFilename = "portfolio.html"
)

// PersistedPortfolio is the stored layout of a portfolio.
// Timestamp is Unix milliseconds.
type PersistedPortfolio struct {
	Sections      []Section     `json:"sections"`
	Customization Customization `json:"customization"`
	Timestamp     int64         `json:"timestamp"`
	Version       string        `json:"version"`
}

// NewPersistedPortfolio captures state at the given time.
func NewPersistedPortfolio(state State, at time.Time) PersistedPortfolio {
	s := state.Clone()
	if s.Sections == nil {
		s.Sections = []Section{}
	}
	return PersistedPortfolio{
		Sections:      s.Sections,
		Customization: s.Customization,
		Timestamp:     at.UnixMilli(),
		Version:       PersistVersion,
	}
}

// State returns the (sections, customization) pair held by p.
func (p PersistedPortfolio) State() State {
	return State{Sections: p.Sections, Customization: p.Customization}.Clone()
}

// ExportDocument is the JSON export format.
type ExportDocument struct {
	Sections      []Section     `json:"sections"`
	Customization Customization `json:"customization"`
	Template      *Template     `json:"template"`
	Version       string        `json:"version"`
	ExportedAt    time.Time     `json:"exportedAt"`
}

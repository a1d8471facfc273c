package domain

import "time"

const unknownDescription = "Unknown"

// StorageBackend selects where portfolio state is persisted.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite persists to a local SQLite database.
	StorageSQLite StorageBackend = "sqlite"

	// StorageMemory keeps state for the lifetime of the process only.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	return b == StorageSQLite || b == StorageMemory
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (persistent)"
	case StorageMemory:
		return "Memory (discarded on exit)"
	default:
		return unknownDescription
	}
}

// StorageSettings holds persistence configuration.
type StorageSettings struct {
	// Backend is the persistence backend.
	Backend StorageBackend

	// DataDir holds the database. Empty means ~/.folio/data.
	DataDir string
}

// ExportSettings holds HTML export configuration.
type ExportSettings struct {
	// Dir is the output directory for exports.
	Dir string

	// Filename is the HTML file name.
	Filename string
}

// ShareSettings holds share link configuration.
type ShareSettings struct {
	// BaseURL is the page the data parameter is appended to.
	BaseURL string
}

// PreviewSettings holds preview server configuration.
type PreviewSettings struct {
	// Addr is the listen address of the preview server.
	Addr string

	// Device is the default preview device.
	Device Device
}

// AutosaveSettings controls background persistence in long-running modes.
type AutosaveSettings struct {
	Enabled bool

	// Interval is the minimum spacing between automatic saves.
	Interval time.Duration
}

// HistorySettings controls the undo/redo log.
type HistorySettings struct {
	// Capacity is the maximum entry count, at most DefaultHistoryCapacity.
	Capacity int
}

// AppSettings holds all application settings.
type AppSettings struct {
	Storage  StorageSettings
	Export   ExportSettings
	Share    ShareSettings
	Preview  PreviewSettings
	Autosave AutosaveSettings
	History  HistorySettings
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Export: ExportSettings{
			Dir:      ".",
			Filename: ExportFilename,
		},
		Share: ShareSettings{
			BaseURL: "http://localhost:8420/",
		},
		Preview: PreviewSettings{
			Addr:   "127.0.0.1:8420",
			Device: DeviceDesktop,
		},
		Autosave: AutosaveSettings{
			Enabled:  true,
			Interval: 2 * time.Second,
		},
		History: HistorySettings{
			Capacity: DefaultHistoryCapacity,
		},
	}
}

// AllStorageBackends returns all available backends.
func AllStorageBackends() []StorageBackend {
	return []StorageBackend{StorageSQLite, StorageMemory}
}

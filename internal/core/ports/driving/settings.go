package driving

import "github.com/custodia-labs/folio-cli/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates one setting from its string form, e.g. ("preview.device", "mobile").
	Set(key, value string) error

	// Keys returns every settable key.
	Keys() []string

	// Validate checks that the current settings are usable.
	Validate() error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}

package services

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyExportDir       = "export.dir"
	keyExportFilename  = "export.filename"
	keyShareBaseURL    = "share.base_url"
	keyPreviewAddr     = "preview.addr"
	keyPreviewDevice   = "preview.device"
	keyAutosaveEnabled = "autosave.enabled"
	keyAutosaveSeconds = "autosave.interval_seconds"
	keyHistoryCapacity = "history.capacity"
)

// settingKeys lists the keys accepted by Set, in display order.
var settingKeys = []string{
	keyStorageBackend,
	keyStorageDataDir,
	keyExportDir,
	keyExportFilename,
	keyShareBaseURL,
	keyPreviewAddr,
	keyPreviewDevice,
	keyAutosaveEnabled,
	keyAutosaveSeconds,
	keyHistoryCapacity,
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Storage: domain.StorageSettings{
			Backend: s.getBackend(defaults.Storage.Backend),
			DataDir: s.configStore.GetString(keyStorageDataDir),
		},
		Export: domain.ExportSettings{
			Dir:      s.getString(keyExportDir, defaults.Export.Dir),
			Filename: s.getString(keyExportFilename, defaults.Export.Filename),
		},
		Share: domain.ShareSettings{
			BaseURL: s.getString(keyShareBaseURL, defaults.Share.BaseURL),
		},
		Preview: domain.PreviewSettings{
			Addr:   s.getString(keyPreviewAddr, defaults.Preview.Addr),
			Device: s.getDevice(defaults.Preview.Device),
		},
		Autosave: domain.AutosaveSettings{
			Enabled:  s.getBool(keyAutosaveEnabled, defaults.Autosave.Enabled),
			Interval: s.getSeconds(keyAutosaveSeconds, defaults.Autosave.Interval),
		},
		History: domain.HistorySettings{
			Capacity: s.getInt(keyHistoryCapacity, defaults.History.Capacity),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return fmt.Errorf("%w: nil settings", domain.ErrInvalidInput)
	}
	values := []struct {
		key string
		val any
	}{
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyExportDir, settings.Export.Dir},
		{keyExportFilename, settings.Export.Filename},
		{keyShareBaseURL, settings.Share.BaseURL},
		{keyPreviewAddr, settings.Preview.Addr},
		{keyPreviewDevice, settings.Preview.Device.String()},
		{keyAutosaveEnabled, settings.Autosave.Enabled},
		{keyAutosaveSeconds, int(settings.Autosave.Interval / time.Second)},
		{keyHistoryCapacity, settings.History.Capacity},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.val); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return nil
}

// Keys returns every settable key.
func (s *SettingsService) Keys() []string {
	out := make([]string, len(settingKeys))
	copy(out, settingKeys)
	return out
}

// Set updates one setting from its string form and persists it.
func (s *SettingsService) Set(key, value string) error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	value = strings.TrimSpace(value)

	switch key {
	case keyStorageBackend:
		backend := domain.StorageBackend(strings.ToLower(value))
		if !backend.IsValid() {
			return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, value)
		}
		settings.Storage.Backend = backend
	case keyStorageDataDir:
		settings.Storage.DataDir = value
	case keyExportDir:
		settings.Export.Dir = value
	case keyExportFilename:
		settings.Export.Filename = value
	case keyShareBaseURL:
		settings.Share.BaseURL = value
	case keyPreviewAddr:
		settings.Preview.Addr = value
	case keyPreviewDevice:
		device, err := domain.ParseDevice(value)
		if err != nil {
			return err
		}
		settings.Preview.Device = device
	case keyAutosaveEnabled:
		enabled, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Autosave.Enabled = enabled
	case keyAutosaveSeconds:
		secs, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.Autosave.Interval = time.Duration(secs) * time.Second
	case keyHistoryCapacity:
		capacity, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%w: %s: %v", domain.ErrInvalidInput, key, err)
		}
		settings.History.Capacity = capacity
	default:
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	if err := validateSettings(settings); err != nil {
		return err
	}
	if err := s.Save(settings); err != nil {
		return err
	}
	return s.configStore.Save()
}

// Validate checks that the current settings are usable.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return validateSettings(settings)
}

func validateSettings(settings *domain.AppSettings) error {
	if !settings.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: storage backend %q", domain.ErrInvalidInput, settings.Storage.Backend)
	}
	if settings.Export.Filename == "" || strings.ContainsAny(settings.Export.Filename, `/\`) {
		return fmt.Errorf("%w: export filename %q", domain.ErrInvalidInput, settings.Export.Filename)
	}
	u, err := url.Parse(settings.Share.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: share base url %q", domain.ErrInvalidInput, settings.Share.BaseURL)
	}
	if !settings.Preview.Device.IsValid() {
		return fmt.Errorf("%w: preview device %q", domain.ErrInvalidInput, settings.Preview.Device)
	}
	if settings.Autosave.Interval < 0 {
		return fmt.Errorf("%w: autosave interval must not be negative", domain.ErrInvalidInput)
	}
	if settings.History.Capacity < 1 || settings.History.Capacity > domain.DefaultHistoryCapacity {
		return fmt.Errorf("%w: history capacity must be between 1 and %d",
			domain.ErrInvalidInput, domain.DefaultHistoryCapacity)
	}
	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBool(key string, defaultVal bool) bool {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetBool(key)
}

func (s *SettingsService) getSeconds(key string, defaultVal time.Duration) time.Duration {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return time.Duration(s.configStore.GetInt(key)) * time.Second
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	backend := domain.StorageBackend(s.configStore.GetString(keyStorageBackend))
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}

func (s *SettingsService) getDevice(defaultVal domain.Device) domain.Device {
	device := domain.Device(s.configStore.GetString(keyPreviewDevice))
	if !device.IsValid() {
		return defaultVal
	}
	return device
}

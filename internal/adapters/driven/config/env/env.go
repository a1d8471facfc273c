// Package env layers FOLIO_* environment variables over another ConfigStore.
package env

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
)

// Prefix is the environment variable prefix, e.g. FOLIO_EXPORT_DIR.
const Prefix = "FOLIO"

// Ensure ConfigStore implements the interface.
var _ driven.ConfigStore = (*ConfigStore)(nil)

// Overrides holds the settings that may be forced from the environment.
// Empty values leave the underlying store in charge.
type Overrides struct {
	DataDir        string `envconfig:"DATA_DIR"`
	StorageBackend string `envconfig:"STORAGE_BACKEND"`
	ExportDir      string `envconfig:"EXPORT_DIR"`
	ShareBaseURL   string `envconfig:"SHARE_BASE_URL"`
	PreviewAddr    string `envconfig:"PREVIEW_ADDR"`
}

// Load reads the overrides from the environment.
func Load() (Overrides, error) {
	var o Overrides
	if err := envconfig.Process(Prefix, &o); err != nil {
		return Overrides{}, fmt.Errorf("processing environment: %w", err)
	}
	return o, nil
}

// values maps config keys to their override, skipping unset ones.
func (o Overrides) values() map[string]string {
	all := map[string]string{
		"storage.data_dir": o.DataDir,
		"storage.backend":  o.StorageBackend,
		"export.dir":       o.ExportDir,
		"share.base_url":   o.ShareBaseURL,
		"preview.addr":     o.PreviewAddr,
	}
	out := make(map[string]string, len(all))
	for k, v := range all {
		if v != "" {
			out[k] = v
		}
	}
	return out
}

// ConfigStore answers reads from environment overrides first and delegates
// everything else, including writes, to the base store.
type ConfigStore struct {
	base      driven.ConfigStore
	overrides map[string]string
}

// NewConfigStore wraps base with the given overrides.
func NewConfigStore(base driven.ConfigStore, overrides Overrides) *ConfigStore {
	return &ConfigStore{base: base, overrides: overrides.values()}
}

// Overridden reports whether key is forced by the environment.
func (s *ConfigStore) Overridden(key string) bool {
	_, ok := s.overrides[key]
	return ok
}

// Get retrieves a configuration value by key.
func (s *ConfigStore) Get(key string) (any, bool) {
	if v, ok := s.overrides[key]; ok {
		return v, true
	}
	return s.base.Get(key)
}

// GetString retrieves a string configuration value.
func (s *ConfigStore) GetString(key string) string {
	if v, ok := s.overrides[key]; ok {
		return v
	}
	return s.base.GetString(key)
}

// GetInt retrieves an integer configuration value.
func (s *ConfigStore) GetInt(key string) int {
	return s.base.GetInt(key)
}

// GetBool retrieves a boolean configuration value.
func (s *ConfigStore) GetBool(key string) bool {
	return s.base.GetBool(key)
}

// Set stores a value in the base store.
func (s *ConfigStore) Set(key string, value any) error {
	return s.base.Set(key, value)
}

// Delete removes a value from the base store.
func (s *ConfigStore) Delete(key string) error {
	return s.base.Delete(key)
}

// Save persists the base store.
func (s *ConfigStore) Save() error {
	return s.base.Save()
}

// Load reloads the base store.
func (s *ConfigStore) Load() error {
	return s.base.Load()
}

// Path returns the base store's path.
func (s *ConfigStore) Path() string {
	return s.base.Path()
}

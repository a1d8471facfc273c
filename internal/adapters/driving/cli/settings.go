package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change where folio stores data, where exports go, the share
link base URL, preview defaults and autosave behaviour.

Settings live in ~/.folio/config.toml. FOLIO_* environment variables
override the file.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	RunE:  runSettingsShow,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Change a setting",
	Long: `Validate and store a single setting.

Examples:
  folio settings set export.dir ./site
  folio settings set preview.device mobile
  folio settings set autosave.interval_seconds 5`,
	Args: cobra.ExactArgs(2),
	RunE: runSettingsSet,
}

var settingsKeysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List the setting keys",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		for _, k := range settingsService.Keys() {
			cmd.Println(k)
		}
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	settingsCmd.AddCommand(settingsKeysCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	cmd.Printf("  Data dir: %s\n", valueOrDefault(settings.Storage.DataDir, "~/.folio/data"))
	cmd.Println()

	cmd.Println("[Export]")
	cmd.Printf("  Directory: %s\n", settings.Export.Dir)
	cmd.Printf("  Filename: %s\n", settings.Export.Filename)
	cmd.Println()

	cmd.Println("[Share]")
	cmd.Printf("  Base URL: %s\n", settings.Share.BaseURL)
	cmd.Println()

	cmd.Println("[Preview]")
	cmd.Printf("  Address: %s\n", settings.Preview.Addr)
	cmd.Printf("  Device: %s\n", settings.Preview.Device)
	cmd.Println()

	cmd.Println("[Autosave]")
	if settings.Autosave.Enabled {
		cmd.Printf("  Enabled: yes\n")
		cmd.Printf("  Interval: %s\n", settings.Autosave.Interval)
	} else {
		cmd.Printf("  Enabled: no\n")
	}
	cmd.Println()

	cmd.Println("[History]")
	cmd.Printf("  Capacity: %d\n", settings.History.Capacity)
	cmd.Println()

	if err := settingsService.Validate(); err != nil {
		cmd.Printf("Warning: %v\n", err)
		cmd.Println("Run 'folio settings set <key> <value>' to fix configuration issues.")
	} else {
		cmd.Println("Configuration is valid.")
	}
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}
	key := strings.ToLower(strings.TrimSpace(args[0]))
	if err := settingsService.Set(key, args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	cmd.Printf("%s updated.\n", key)
	return nil
}

func valueOrDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}

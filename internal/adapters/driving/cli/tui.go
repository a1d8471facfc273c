package cli

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/tui"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface for Folio.

The TUI lets you build the portfolio section by section, restyle it,
pick a template and preview the result at desktop, tablet and mobile
widths. Changes are saved automatically.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select
  a / d    - Add / delete section
  K / J    - Move section up / down
  u / r    - Undo / Redo
  Esc      - Back
  ?        - Toggle help
  q        - Quit`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, _ []string) error {
	// Add panic recovery to get stack traces
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	ports := tui.NewPorts(builderService, dispatcher)
	ports.Export = exportService
	ports.Templates = templateService
	ports.Settings = settingsService

	app, err := tui.NewApp(ports)
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	ctx := commandContext(cmd)
	app.WithContext(ctx)

	stop := startAutosave(ctx)
	defer stop()

	if err := app.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}

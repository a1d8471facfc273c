package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var (
	customizePrimary       string
	customizeSecondary     string
	customizeAccent        string
	customizeFontPrimary   string
	customizeFontSecondary string
	customizeSpeed         float64
	customizeParticles     bool
	customizeTheme         string
)

var customizeCmd = &cobra.Command{
	Use:   "customize",
	Short: "Change colours, fonts and animation settings",
	Long: `Update the global look of the portfolio. Only the flags you pass are
changed. Without flags the current customization is printed.

Examples:
  folio customize --primary "#0F172A" --theme dark
  folio customize --font-primary Inter --speed 1.5`,
	Args: cobra.NoArgs,
	RunE: runCustomize,
}

var undoCmd = &cobra.Command{
	Use:   "undo",
	Short: "Undo the last change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := run(cmd, domain.UndoCommand{})
		return err
	},
}

var redoCmd = &cobra.Command{
	Use:   "redo",
	Short: "Redo the last undone change",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := run(cmd, domain.RedoCommand{})
		return err
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the undo history",
	Long:  `List every snapshot in the history. The current position is marked with '>'.`,
	Args:  cobra.NoArgs,
	RunE:  runHistory,
}

var saveCmd = &cobra.Command{
	Use:   "save",
	Short: "Save the portfolio",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := run(cmd, domain.SaveCommand{})
		return err
	},
}

func init() {
	flags := customizeCmd.Flags()
	flags.StringVar(&customizePrimary, "primary", "", "primary colour (#RRGGBB)")
	flags.StringVar(&customizeSecondary, "secondary", "", "secondary colour (#RRGGBB)")
	flags.StringVar(&customizeAccent, "accent", "", "accent colour (#RRGGBB)")
	flags.StringVar(&customizeFontPrimary, "font-primary", "", "heading font family")
	flags.StringVar(&customizeFontSecondary, "font-secondary", "", "body font family")
	flags.Float64Var(&customizeSpeed, "speed", 1, "animation speed multiplier (0-5)")
	flags.BoolVar(&customizeParticles, "particles", true, "enable the particle background")
	flags.StringVar(&customizeTheme, "theme", "", "colour theme: light or dark")

	rootCmd.AddCommand(customizeCmd)
	rootCmd.AddCommand(undoCmd)
	rootCmd.AddCommand(redoCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(saveCmd)
}

func runCustomize(cmd *cobra.Command, _ []string) error {
	patch := customizationPatchFromFlags(cmd)
	if patch.IsEmpty() {
		if builderService == nil {
			return errNotConfigured
		}
		printCustomization(cmd, builderService.Customization())
		return nil
	}
	_, err := run(cmd, domain.UpdateCustomizationCommand{Patch: patch})
	return err
}

// customizationPatchFromFlags builds a patch from the flags that were set.
func customizationPatchFromFlags(cmd *cobra.Command) domain.CustomizationPatch {
	var patch domain.CustomizationPatch
	flags := cmd.Flags()

	str := func(name, value string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v := value
		return &v
	}
	patch.PrimaryColor = str("primary", customizePrimary)
	patch.SecondaryColor = str("secondary", customizeSecondary)
	patch.AccentColor = str("accent", customizeAccent)
	patch.FontPrimary = str("font-primary", customizeFontPrimary)
	patch.FontSecondary = str("font-secondary", customizeFontSecondary)

	if flags.Changed("speed") {
		speed := customizeSpeed
		patch.AnimationSpeed = &speed
	}
	if flags.Changed("particles") {
		particles := customizeParticles
		patch.ParticlesEnabled = &particles
	}
	if flags.Changed("theme") {
		theme := domain.Theme(customizeTheme)
		patch.Theme = &theme
	}
	return patch
}

func printCustomization(cmd *cobra.Command, c domain.Customization) {
	cmd.Println("Customization")
	cmd.Println("=============")
	cmd.Println()
	cmd.Printf("  Primary colour:   %s\n", c.PrimaryColor)
	cmd.Printf("  Secondary colour: %s\n", c.SecondaryColor)
	cmd.Printf("  Accent colour:    %s\n", c.AccentColor)
	cmd.Printf("  Heading font:     %s\n", c.FontPrimary)
	cmd.Printf("  Body font:        %s\n", c.FontSecondary)
	cmd.Printf("  Animation speed:  %gx\n", c.AnimationSpeed)
	cmd.Printf("  Particles:        %s\n", onOff(c.ParticlesEnabled))
	cmd.Printf("  Theme:            %s\n", c.Theme)
}

func runHistory(cmd *cobra.Command, _ []string) error {
	if builderService == nil {
		return errNotConfigured
	}
	h := builderService.History()
	if len(h.Entries) == 0 {
		cmd.Println("History is empty.")
		return nil
	}

	cmd.Printf("History (%d entries):\n\n", len(h.Entries))
	for i, e := range h.Entries {
		marker := " "
		if i == h.Cursor {
			marker = ">"
		}
		cmd.Printf(" %s %2d  %-22s %s  (%d sections)\n",
			marker, i, e.Action, e.Timestamp.Format("2006-01-02 15:04:05"), len(e.State.Sections))
	}
	cmd.Println()
	cmd.Printf("Undo: %s  Redo: %s\n", yesNo(h.CanUndo()), yesNo(h.CanRedo()))
	return nil
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// errUsage wraps an invalid flag combination.
func errUsage(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrInvalidInput, fmt.Sprintf(format, args...))
}

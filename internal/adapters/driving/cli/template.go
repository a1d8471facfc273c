package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var (
	templateCategory string
	templateJSON     bool
	templateClearYes bool
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Browse and apply templates",
	Long: `Templates are ready-made portfolios: a set of sections and a colour
scheme. Loading a template replaces the current portfolio and can be undone.`,
}

var templateListCmd = &cobra.Command{
	Use:   "list",
	Short: "List available templates",
	Args:  cobra.NoArgs,
	RunE:  runTemplateList,
}

var templateShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show template details",
	Args:  cobra.ExactArgs(1),
	RunE:  runTemplateShow,
}

var templateLoadCmd = &cobra.Command{
	Use:   "load <id>",
	Short: "Replace the portfolio with a template",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := run(cmd, domain.LoadTemplateCommand{TemplateID: args[0]})
		return err
	},
}

var templateClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Start again from a blank portfolio",
	Args:  cobra.NoArgs,
	RunE:  runTemplateClear,
}

func init() {
	templateListCmd.Flags().StringVarP(&templateCategory, "category", "c", "", "only list templates in this category")
	templateListCmd.Flags().BoolVar(&templateJSON, "json", false, "output templates as JSON")
	templateClearCmd.Flags().BoolVarP(&templateClearYes, "yes", "y", false, "clear without asking")

	templateCmd.AddCommand(templateListCmd)
	templateCmd.AddCommand(templateShowCmd)
	templateCmd.AddCommand(templateLoadCmd)
	templateCmd.AddCommand(templateClearCmd)
	rootCmd.AddCommand(templateCmd)
}

func runTemplateList(cmd *cobra.Command, _ []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}

	category := domain.TemplateCategory(templateCategory)
	if category != "" && !category.IsValid() {
		return fmt.Errorf("%w: category %q", domain.ErrInvalidInput, templateCategory)
	}

	templates, err := templateService.List(commandContext(cmd), category)
	if err != nil {
		return fmt.Errorf("failed to list templates: %w", err)
	}

	if templateJSON {
		return printJSON(cmd, templates)
	}

	if len(templates) == 0 {
		cmd.Println("No templates found.")
		return nil
	}

	current := ""
	if builderService != nil {
		current = builderService.TemplateID()
	}

	cmd.Println("Templates:")
	cmd.Println()
	for i := range templates {
		t := &templates[i]
		flags := ""
		if t.Featured {
			flags += " ★"
		}
		if t.ID == current {
			flags += " (current)"
		}
		cmd.Printf("  %-20s %s [%s]%s\n", t.ID, t.Name, t.Category, flags)
		cmd.Printf("  %-20s %s\n", "", t.Description)
	}
	return nil
}

func runTemplateShow(cmd *cobra.Command, args []string) error {
	if templateService == nil {
		return errors.New("template service not configured")
	}
	t, err := templateService.Get(commandContext(cmd), args[0])
	if err != nil {
		return err
	}

	cmd.Printf("%s (%s)\n", t.Name, t.ID)
	cmd.Printf("  Category: %s\n", titleCaser.String(string(t.Category)))
	cmd.Printf("  %s\n", t.Description)
	cmd.Println()
	cmd.Println("Sections:")
	for i := range t.Sections {
		cmd.Printf("  %d. %s\n", i+1, t.Sections[i].Heading())
	}
	cmd.Println()
	printCustomization(cmd, t.Customization)
	return nil
}

func runTemplateClear(cmd *cobra.Command, _ []string) error {
	if !templateClearYes {
		ok, err := confirm(cmd, "Discard all sections and start from a blank portfolio?")
		if err != nil {
			return err
		}
		if !ok {
			cmd.Println("Cancelled.")
			return nil
		}
	}
	_, err := run(cmd, domain.ClearTemplateCommand{})
	return err
}

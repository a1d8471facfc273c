package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var (
	exportOut string
	shareCopy bool
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the portfolio",
	Long:  `Export the portfolio as a standalone HTML page, a JSON document or a PDF.`,
}

var exportHTMLCmd = &cobra.Command{
	Use:   "html",
	Short: "Export a standalone HTML page",
	Long: `Save the portfolio and write portfolio.html into the output directory.
The directory defaults to the export.dir setting.`,
	Args: cobra.NoArgs,
	RunE: runExportHTML,
}

var exportJSONCmd = &cobra.Command{
	Use:   "json",
	Short: "Export the portfolio as JSON",
	Long: `Write the portfolio as a JSON export document (version 2.0.0).
Without --out the document is printed to stdout.`,
	Args: cobra.NoArgs,
	RunE: runExportJSON,
}

var exportPDFCmd = &cobra.Command{
	Use:   "pdf",
	Short: "Export the portfolio as PDF",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := run(cmd, domain.ExportPDFCommand{})
		return err
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a portfolio from a JSON export",
	Long: `Replace the portfolio with the contents of a JSON export document.
Use - to read from stdin. The import can be undone.`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

var shareCmd = &cobra.Command{
	Use:   "share",
	Short: "Create and open share links",
}

var shareLinkCmd = &cobra.Command{
	Use:   "link",
	Short: "Create a share link for the portfolio",
	Long: `Encode the whole portfolio into a link. Anyone with the link can load
the portfolio with 'folio share load'.`,
	Args: cobra.NoArgs,
	RunE: runShareLink,
}

var shareLoadCmd = &cobra.Command{
	Use:   "load <link>",
	Short: "Load a portfolio from a share link",
	Long:  `Replace the portfolio with the one encoded in a share link or a bare payload.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := run(cmd, domain.LoadShareLinkCommand{Link: args[0]})
		return err
	},
}

func init() {
	exportHTMLCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output directory")
	exportJSONCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output file")

	exportCmd.AddCommand(exportHTMLCmd)
	exportCmd.AddCommand(exportJSONCmd)
	exportCmd.AddCommand(exportPDFCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)

	shareLinkCmd.Flags().BoolVar(&shareCopy, "copy", false, "copy the link to the clipboard")
	shareCmd.AddCommand(shareLinkCmd)
	shareCmd.AddCommand(shareLoadCmd)
	rootCmd.AddCommand(shareCmd)
}

func runExportHTML(cmd *cobra.Command, _ []string) error {
	res, err := run(cmd, domain.ExportHTMLCommand{Dir: exportOut})
	if err != nil {
		return err
	}
	cmd.Printf("  %s\n", res.Path)
	return nil
}

func runExportJSON(cmd *cobra.Command, _ []string) error {
	if exportOut == "" {
		res, err := runQuiet(cmd, domain.ExportJSONCommand{})
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Output)
		return nil
	}

	res, err := run(cmd, domain.ExportJSONCommand{})
	if err != nil {
		return err
	}
	if err := os.WriteFile(exportOut, []byte(res.Output+"\n"), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", exportOut, err)
	}
	cmd.Printf("  %s\n", exportOut)
	return nil
}

func runImport(cmd *cobra.Command, args []string) error {
	data, err := readInput(cmd, args[0])
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return errUsage("%s is empty", args[0])
	}
	_, err = run(cmd, domain.ImportPortfolioCommand{Data: data})
	return err
}

// readInput reads a file, or stdin when path is "-".
func readInput(cmd *cobra.Command, path string) ([]byte, error) {
	if path == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("reading stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

func runShareLink(cmd *cobra.Command, _ []string) error {
	res, err := runQuiet(cmd, domain.ShareLinkCommand{Copy: shareCopy})
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), res.Output)
	return nil
}

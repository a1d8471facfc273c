package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

var doArgs string

var doCmd = &cobra.Command{
	Use:   "do <action>",
	Short: "Run any builder action by name",
	Long: `Run a builder action straight from the dispatch table with JSON arguments.
The result is printed as JSON.

Examples:
  folio do add_section --args '{"type":"hero"}'
  folio do reorder_sections --args '{"from":2,"to":0}'
  folio do undo`,
	Args: cobra.ExactArgs(1),
	RunE: runDo,
}

var doListCmd = &cobra.Command{
	Use:         "actions",
	Short:       "List the available actions",
	Args:        cobra.NoArgs,
	Annotations: map[string]string{annotationNoServices: "true"},
	RunE: func(cmd *cobra.Command, _ []string) error {
		for _, a := range domain.AllActions() {
			cmd.Println(a)
		}
		return nil
	},
}

func init() {
	doCmd.Flags().StringVarP(&doArgs, "args", "a", "", "action arguments as a JSON object")
	doCmd.AddCommand(doListCmd)
	rootCmd.AddCommand(doCmd)
}

func runDo(cmd *cobra.Command, args []string) error {
	if dispatcher == nil {
		return errNotConfigured
	}
	action := domain.Action(strings.TrimSpace(args[0]))

	c, err := domain.DecodeCommand(action, []byte(doArgs))
	if err != nil {
		return err
	}

	res, err := dispatcher.Dispatch(commandContext(cmd), c)
	if jsonErr := printJSON(cmd, res); jsonErr != nil {
		return jsonErr
	}
	if err != nil {
		return fmt.Errorf("%s: %w", action, err)
	}
	return nil
}

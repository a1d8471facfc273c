package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// stdin is the prompt input; tests replace it.
var stdin io.Reader = os.Stdin

// isInteractive reports whether prompts can be answered.
var isInteractive = func() bool {
	return term.IsTerminal(int(os.Stdin.Fd()))
}

// run dispatches a command and prints its notice.
func run(cmd *cobra.Command, c domain.Command) (domain.Result, error) {
	return dispatchTo(cmd, c, cmd.OutOrStdout())
}

// runQuiet dispatches a command whose output goes to stdout, so its notice
// is written to stderr.
func runQuiet(cmd *cobra.Command, c domain.Command) (domain.Result, error) {
	return dispatchTo(cmd, c, cmd.ErrOrStderr())
}

func dispatchTo(cmd *cobra.Command, c domain.Command, w io.Writer) (domain.Result, error) {
	if dispatcher == nil {
		return domain.Result{}, errNotConfigured
	}
	res, err := dispatcher.Dispatch(commandContext(cmd), c)
	printNotice(cmd, w, res.Notice)
	if err != nil {
		return res, fmt.Errorf("%s: %w", res.Action, err)
	}
	return res, nil
}

// printNotice writes a notice to w. Warnings always go to stderr and error
// notices are left to the returned error.
func printNotice(cmd *cobra.Command, w io.Writer, n domain.Notice) {
	if n.IsZero() {
		return
	}
	switch n.Level {
	case domain.NoticeError:
		return
	case domain.NoticeWarning:
		cmd.PrintErrf("warning: %s\n", n.Message)
	default:
		fmt.Fprintln(w, n.Message)
	}
}

// printJSON writes v as indented JSON.
func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

// confirm asks a yes/no question. Non-interactive sessions must pass --yes.
func confirm(cmd *cobra.Command, question string) (bool, error) {
	if !isInteractive() {
		return false, fmt.Errorf("%w: confirmation required, pass --yes", domain.ErrInvalidInput)
	}
	cmd.Printf("%s [y/N]: ", question)
	answer := readLine(bufio.NewReader(stdin))
	switch strings.ToLower(answer) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func readLine(reader *bufio.Reader) string {
	line, _ := reader.ReadString('\n')
	return strings.TrimSpace(line)
}

package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/templates"
	"github.com/custodia-labs/folio-cli/internal/core/services"
)

// newTestServices wires real services over memory stores and installs them.
func newTestServices(t *testing.T) *services.Builder {
	t.Helper()
	ctx := context.Background()

	catalog, err := templates.New()
	require.NoError(t, err)

	b := services.NewBuilder(memory.NewPortfolioStore(), memory.NewSessionStore(), catalog, 0)
	require.NoError(t, b.Init(ctx))

	settings := services.NewSettingsService(memory.NewConfigStore())
	exporter := services.NewExportService(b, services.NewRenderer(nil), catalog, settings)
	share := services.NewShareService(b, settings)

	SetServices(&Services{
		Builder:    b,
		Dispatcher: services.NewDispatcher(b, exporter, share, nil),
		Export:     exporter,
		Share:      share,
		Templates:  services.NewTemplateService(catalog),
		Settings:   settings,
	})
	t.Cleanup(func() { SetServices(nil) })
	return b
}

// execute runs the root command with args and returns the combined output.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(""))
	rootCmd.SetArgs(args)
	defer rootCmd.SetArgs(nil)

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

// resetFlags restores every flag to its default so runs do not leak state.
// It also drops the context cobra stored on each command by a previous run,
// which the next ExecuteContext would otherwise keep.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	c.SetContext(nil) //nolint:staticcheck // cobra only fills in a nil context

	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// withPrompt answers confirmation prompts with input.
func withPrompt(t *testing.T, interactive bool, input string) {
	t.Helper()
	oldInteractive, oldStdin := isInteractive, stdin
	isInteractive = func() bool { return interactive }
	stdin = strings.NewReader(input)
	t.Cleanup(func() {
		isInteractive = oldInteractive
		stdin = oldStdin
	})
}

// commandNames lists the names of cmd's subcommands.
func commandNames(cmd *cobra.Command) []string {
	names := make([]string, 0, len(cmd.Commands()))
	for _, c := range cmd.Commands() {
		names = append(names, c.Name())
	}
	return names
}

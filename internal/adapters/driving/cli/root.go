// Package cli provides the cobra command tree for folio.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

// annotationNoServices marks commands that run without bootstrapping services.
const annotationNoServices = "folio/no-services"

// Global flags.
var (
	verbose   bool
	dataDir   string
	ephemeral bool
)

// Service instances, set by SetServices or the bootstrap hook.
var (
	builderService  driving.BuilderService
	dispatcher      driving.Dispatcher
	exportService   driving.ExportService
	shareService    driving.ShareService
	templateService driving.TemplateService
	settingsService driving.SettingsService
	actionService   driving.ActionService
	autosaver       Autosaver
)

// errNotConfigured is returned by commands whose services were never wired.
var errNotConfigured = errors.New("builder not configured")

// Autosaver persists builder changes in the background during long-running
// commands.
type Autosaver interface {
	Start(ctx context.Context)
	Stop(ctx context.Context) error
}

// Services groups the driving ports the commands use.
type Services struct {
	Builder    driving.BuilderService
	Dispatcher driving.Dispatcher
	Export     driving.ExportService
	Share      driving.ShareService
	Templates  driving.TemplateService
	Settings   driving.SettingsService
	Actions    driving.ActionService
	Autosaver  Autosaver
}

// Options carries the global flags to the bootstrap hook.
type Options struct {
	Verbose   bool
	DataDir   string
	Ephemeral bool
}

// BootstrapFunc builds the services once flags are parsed. The returned
// cleanup runs after the command finishes.
type BootstrapFunc func(ctx context.Context, opts Options) (*Services, func(context.Context) error, error)

var (
	bootstrap BootstrapFunc
	cleanup   func(context.Context) error
)

var rootCmd = &cobra.Command{
	Use:   "folio",
	Short: "Build a portfolio website from your terminal",
	Long: `Folio assembles a single-page portfolio from typed sections.

Add, edit and reorder sections, pick a template and colour scheme, undo
and redo any change, then export a standalone HTML page or share a link.
Run 'folio tui' for the interactive builder.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
		return teardown(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory holding the portfolio database")
	rootCmd.PersistentFlags().BoolVar(&ephemeral, "ephemeral", false, "keep state in memory only")
}

// SetServices injects the services used by every command.
func SetServices(s *Services) {
	if s == nil {
		s = &Services{}
	}
	builderService = s.Builder
	dispatcher = s.Dispatcher
	exportService = s.Export
	shareService = s.Share
	templateService = s.Templates
	settingsService = s.Settings
	actionService = s.Actions
	autosaver = s.Autosaver
}

// SetBootstrap registers the hook that builds services after flag parsing.
func SetBootstrap(fn BootstrapFunc) {
	bootstrap = fn
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func setup(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if cmd.Annotations[annotationNoServices] == "true" || bootstrap == nil {
		return nil
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	services, done, err := bootstrap(ctx, Options{
		Verbose:   verbose,
		DataDir:   dataDir,
		Ephemeral: ephemeral,
	})
	if err != nil {
		return fmt.Errorf("starting folio: %w", err)
	}
	SetServices(services)
	cleanup = done
	return nil
}

func teardown(ctx context.Context) error {
	if cleanup == nil {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}
	done := cleanup
	cleanup = nil
	return done(ctx)
}

// commandContext returns the command's context or a background one.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// startAutosave runs the autosaver for a long-running command. The returned
// stop function flushes pending changes.
func startAutosave(ctx context.Context) func() {
	if autosaver == nil {
		return func() {}
	}
	autosaver.Start(ctx)
	return func() {
		if err := autosaver.Stop(context.Background()); err != nil {
			logger.Error(err, "stopping autosave")
		}
	}
}

// Command folio builds portfolio websites from the terminal.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/folio-cli/internal/adapters/driven/clipboard"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/env"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/markdown"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/folio-cli/internal/adapters/driven/templates"
	"github.com/custodia-labs/folio-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/ports/driven"
	"github.com/custodia-labs/folio-cli/internal/core/services"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetBootstrap(bootstrap)

	if err := cli.Execute(ctx); err != nil {
		os.Exit(1)
	}
}

// bootstrap wires the driven adapters and services for one command run.
func bootstrap(ctx context.Context, opts cli.Options) (*cli.Services, func(context.Context) error, error) {
	logger.Section("bootstrap")

	fileStore, err := file.NewConfigStore(configDir())
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	overrides, err := env.Load()
	if err != nil {
		return nil, nil, err
	}
	settingsService := services.NewSettingsService(env.NewConfigStore(fileStore, overrides))

	settings, err := settingsService.Get()
	if err != nil {
		return nil, nil, fmt.Errorf("reading settings: %w", err)
	}

	portfolios, sessions, closeStore, err := openStorage(settings, opts)
	if err != nil {
		return nil, nil, err
	}

	catalog, err := templates.New()
	if err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("loading templates: %w", err)
	}

	builder := services.NewBuilder(portfolios, sessions, catalog, settings.History.Capacity)
	if err := builder.Init(ctx); err != nil {
		_ = closeStore()
		return nil, nil, fmt.Errorf("restoring portfolio: %w", err)
	}

	exporter := services.NewExportService(builder, services.NewRenderer(markdown.New()), catalog, settingsService)
	share := services.NewShareService(builder, settingsService)
	actions := services.NewActionService(clipboard.New())

	svc := &cli.Services{
		Builder:    builder,
		Dispatcher: services.NewDispatcher(builder, exporter, share, actions),
		Export:     exporter,
		Share:      share,
		Templates:  services.NewTemplateService(catalog),
		Settings:   settingsService,
		Actions:    actions,
	}
	if settings.Autosave.Enabled {
		svc.Autosaver = services.NewAutosaver(builder, settings.Autosave.Interval)
	}

	cleanup := func(ctx context.Context) error {
		return errors.Join(builder.Close(ctx), closeStore())
	}
	logger.Debug("ready (%d sections, backend %s)", len(builder.Sections()), backendName(settings, opts))
	return svc, cleanup, nil
}

// openStorage opens the configured persistence backend.
func openStorage(
	settings *domain.AppSettings, opts cli.Options,
) (driven.PortfolioStore, driven.SessionStore, func() error, error) {
	if opts.Ephemeral || settings.Storage.Backend == domain.StorageMemory {
		return memory.NewPortfolioStore(), memory.NewSessionStore(), func() error { return nil }, nil
	}

	dir := settings.Storage.DataDir
	if opts.DataDir != "" {
		dir = opts.DataDir
	}
	store, err := sqlite.NewStore(dir)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening storage: %w", err)
	}
	logger.Debug("database %s", store.Path())
	return store.PortfolioStore(), store.SessionStore(), store.Close, nil
}

func backendName(settings *domain.AppSettings, opts cli.Options) domain.StorageBackend {
	if opts.Ephemeral {
		return domain.StorageMemory
	}
	return settings.Storage.Backend
}

// configDir returns the config directory, overridable with FOLIO_CONFIG_DIR.
func configDir() string {
	return os.Getenv("FOLIO_CONFIG_DIR")
}

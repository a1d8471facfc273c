package cli

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/folio-cli/internal/adapters/driving/web"
	"github.com/custodia-labs/folio-cli/internal/core/domain"
	"github.com/custodia-labs/folio-cli/internal/core/services"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

var (
	previewAddr   string
	previewDevice string
	previewOpen   bool
	previewWatch  string
	watchOut      string
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Serve a live preview of the portfolio",
	Long: `Start a local web server showing the portfolio inside a device frame.

Pages:
  /                  the portfolio as exported
  /preview/desktop   desktop frame (also tablet, mobile)

With --watch the server also re-imports a JSON export file whenever it
changes, so edits to the file show up on reload.

Examples:
  folio preview --open
  folio preview --device mobile --watch portfolio.json`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

var watchCmd = &cobra.Command{
	Use:   "watch <file>",
	Short: "Rebuild the HTML export when a JSON file changes",
	Long: `Import a JSON export document and write portfolio.html, then repeat
every time the file changes. Stop with Ctrl+C.`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

func init() {
	previewCmd.Flags().StringVar(&previewAddr, "addr", "", "listen address (default from settings)")
	previewCmd.Flags().StringVarP(&previewDevice, "device", "d", "", "default device: desktop, tablet or mobile")
	previewCmd.Flags().BoolVar(&previewOpen, "open", false, "open the preview in a browser")
	previewCmd.Flags().StringVarP(&previewWatch, "watch", "w", "", "JSON export file to re-import on change")
	rootCmd.AddCommand(previewCmd)

	watchCmd.Flags().StringVarP(&watchOut, "out", "o", "", "output directory for portfolio.html")
	rootCmd.AddCommand(watchCmd)
}

func runPreview(cmd *cobra.Command, _ []string) error {
	if builderService == nil || exportService == nil {
		return errNotConfigured
	}

	addr, device, err := previewOptions()
	if err != nil {
		return err
	}

	server, err := web.NewServer(&web.Ports{
		Builder:       builderService,
		Export:        exportService,
		Share:         shareService,
		Dispatcher:    dispatcher,
		DefaultDevice: device,
	})
	if err != nil {
		return err
	}

	if previewAddr == "" {
		// The configured default may be taken by another preview.
		if resolved, rerr := services.ResolveListenAddr(addr); rerr == nil {
			addr = resolved
		}
	}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", addr, err)
	}

	ctx := commandContext(cmd)
	stop := startAutosave(ctx)
	defer stop()

	url := fmt.Sprintf("http://%s/preview/%s", ln.Addr(), device)
	cmd.Printf("Preview running at %s\n", url)
	cmd.Println("Press Ctrl+C to stop.")

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Serve(gctx, ln)
	})
	if previewWatch != "" {
		watcher := services.NewImportWatcher(previewWatch, exportService)
		watcher.OnReload = func(err error) {
			if err != nil {
				cmd.PrintErrf("warning: reloading %s: %v\n", previewWatch, err)
			}
		}
		g.Go(func() error {
			return watcher.Run(gctx)
		})
	}
	if previewOpen {
		if actionService == nil {
			cmd.PrintErrln("warning: cannot open a browser here")
		} else if err := actionService.OpenURL(ctx, url); err != nil {
			cmd.PrintErrf("warning: opening browser: %v\n", err)
		}
	}

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

// previewOptions resolves the listen address and device from flags and settings.
func previewOptions() (string, domain.Device, error) {
	defaults := domain.DefaultAppSettings()
	addr, device := defaults.Preview.Addr, defaults.Preview.Device
	if settingsService != nil {
		if s, err := settingsService.Get(); err == nil {
			addr, device = s.Preview.Addr, s.Preview.Device
		} else {
			logger.Warn("reading settings: %v", err)
		}
	}
	if previewAddr != "" {
		addr = previewAddr
	}
	if previewDevice != "" {
		d, err := domain.ParseDevice(previewDevice)
		if err != nil {
			return "", "", err
		}
		device = d
	}
	return addr, device, nil
}

func runWatch(cmd *cobra.Command, args []string) error {
	if exportService == nil {
		return errNotConfigured
	}

	ctx := commandContext(cmd)
	stop := startAutosave(ctx)
	defer stop()

	watcher := services.NewImportWatcher(args[0], exportService)
	watcher.OnReload = func(err error) {
		if err != nil {
			cmd.PrintErrf("warning: reloading %s: %v\n", args[0], err)
			return
		}
		path, err := exportService.ExportHTML(ctx, watchOut)
		if err != nil {
			cmd.PrintErrf("warning: exporting: %v\n", err)
			return
		}
		cmd.Printf("Rebuilt %s\n", path)
	}

	cmd.Printf("Watching %s. Press Ctrl+C to stop.\n", args[0])
	return watcher.Run(ctx)
}

package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/folio-cli/internal/core/ports/driving"
	"github.com/custodia-labs/folio-cli/internal/logger"
)

// defaultWatchDebounce coalesces the burst of events editors emit per save.
const defaultWatchDebounce = 300 * time.Millisecond

// ImportWatcher re-imports a JSON export document whenever it changes on
// disk, so a hand-edited file drives the preview.
type ImportWatcher struct {
	path     string
	exporter driving.ExportService
	debounce time.Duration

	// OnReload runs after every import attempt with its error.
	OnReload func(err error)
}

// NewImportWatcher creates a watcher for the JSON file at path.
func NewImportWatcher(path string, exporter driving.ExportService) *ImportWatcher {
	return &ImportWatcher{
		path:     path,
		exporter: exporter,
		debounce: defaultWatchDebounce,
	}
}

// Run watches until ctx is cancelled. The file is imported once at start.
func (w *ImportWatcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return fmt.Errorf("watch %s: %w", w.path, err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file via rename.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("watching %s", abs)

	w.reload(ctx, abs)

	var (
		mu    sync.Mutex
		timer *time.Timer
	)
	defer func() {
		mu.Lock()
		if timer != nil {
			timer.Stop()
		}
		mu.Unlock()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug("watch event %s", event)
			mu.Lock()
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(w.debounce, func() { w.reload(ctx, abs) })
			mu.Unlock()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: %v", err)
		}
	}
}

func (w *ImportWatcher) reload(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}
	data, err := os.ReadFile(path)
	if err == nil {
		err = w.exporter.ImportJSON(ctx, data)
	}
	if err != nil {
		logger.Warn("reloading %s: %v", path, err)
	} else {
		logger.Info("reloaded %s", path)
	}
	if w.OnReload != nil {
		w.OnReload(err)
	}
}

package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/folio-cli/internal/logger"
)

// Flusher is the part of the builder the autosaver drives.
type Flusher interface {
	SetDeferredPersistence(on bool)
	Flush(ctx context.Context) error
	OnChange(fn func())
}

// Autosaver batches session writes in long-running modes (TUI, preview
// server, MCP). Changes are flushed at most once per interval.
type Autosaver struct {
	target  Flusher
	limiter *rate.Limiter

	mu      sync.Mutex
	running bool
	changes chan struct{}
	stopCh  chan struct{}
	done    chan struct{}
}

// NewAutosaver creates an autosaver for target. An interval <= 0 flushes
// on every change.
func NewAutosaver(target Flusher, interval time.Duration) *Autosaver {
	limit := rate.Inf
	if interval > 0 {
		limit = rate.Every(interval)
	}
	a := &Autosaver{
		target:  target,
		limiter: rate.NewLimiter(limit, 1),
		changes: make(chan struct{}, 1),
	}
	target.OnChange(a.Notify)
	return a
}

// Notify records that state changed. It never blocks.
func (a *Autosaver) Notify() {
	select {
	case a.changes <- struct{}{}:
	default:
	}
}

// Start switches the target to deferred persistence and runs the flush
// loop in the background.
func (a *Autosaver) Start(ctx context.Context) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.running {
		return
	}
	a.running = true
	a.stopCh = make(chan struct{})
	a.done = make(chan struct{})
	a.target.SetDeferredPersistence(true)

	go a.run(ctx, a.stopCh, a.done)
}

// Stop ends the loop, performs a final flush and restores immediate
// persistence.
func (a *Autosaver) Stop(ctx context.Context) error {
	a.mu.Lock()
	if !a.running {
		a.mu.Unlock()
		return nil
	}
	a.running = false
	close(a.stopCh)
	done := a.done
	a.mu.Unlock()

	<-done
	err := a.target.Flush(ctx)
	a.target.SetDeferredPersistence(false)
	return err
}

func (a *Autosaver) run(ctx context.Context, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	// Cancel the limiter wait when Stop is called.
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-stop:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	for {
		select {
		case <-waitCtx.Done():
			return
		case <-a.changes:
		}

		if err := a.limiter.Wait(waitCtx); err != nil {
			return
		}
		if err := a.target.Flush(waitCtx); err != nil {
			logger.Warn("autosave: %v", err)
		}
	}
}

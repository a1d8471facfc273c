package services

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

// countingFlusher records flushes and the deferred flag.
type countingFlusher struct {
	mu       sync.Mutex
	deferred bool
	listener func()
	flushes  atomic.Int32
}

func (c *countingFlusher) SetDeferredPersistence(on bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.deferred = on
}

func (c *countingFlusher) Flush(context.Context) error {
	c.flushes.Add(1)
	return nil
}

func (c *countingFlusher) OnChange(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.listener = fn
}

func (c *countingFlusher) isDeferred() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.deferred
}

func (c *countingFlusher) change() {
	c.mu.Lock()
	fn := c.listener
	c.mu.Unlock()
	fn()
}

func TestAutosaver_RegistersForChanges(t *testing.T) {
	target := &countingFlusher{}
	NewAutosaver(target, time.Second)
	assert.NotNil(t, target.listener)
}

func TestAutosaver_StartStop(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &countingFlusher{}
	a := NewAutosaver(target, 0)

	a.Start(context.Background())
	a.Start(context.Background())
	assert.True(t, target.isDeferred())

	target.change()
	require.Eventually(t, func() bool { return target.flushes.Load() >= 1 }, time.Second, 5*time.Millisecond)

	require.NoError(t, a.Stop(context.Background()))
	assert.False(t, target.isDeferred())
	require.NoError(t, a.Stop(context.Background()), "second stop is a no-op")
}

func TestAutosaver_RateLimitsFlushes(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &countingFlusher{}
	a := NewAutosaver(target, time.Hour)
	a.Start(context.Background())

	target.change()
	require.Eventually(t, func() bool { return target.flushes.Load() == 1 }, time.Second, 5*time.Millisecond)

	for i := 0; i < 5; i++ {
		target.change()
	}
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), target.flushes.Load())

	// Stop interrupts the limiter wait and flushes once more.
	require.NoError(t, a.Stop(context.Background()))
	assert.Equal(t, int32(2), target.flushes.Load())
}

func TestAutosaver_NotifyNeverBlocks(t *testing.T) {
	a := NewAutosaver(&countingFlusher{}, time.Hour)
	for i := 0; i < 100; i++ {
		a.Notify()
	}
}

func TestAutosaver_ContextCancelStopsLoop(t *testing.T) {
	defer goleak.VerifyNone(t)

	target := &countingFlusher{}
	a := NewAutosaver(target, 0)
	ctx, cancel := context.WithCancel(context.Background())
	a.Start(ctx)
	cancel()

	require.NoError(t, a.Stop(context.Background()))
}

func TestAutosaver_WithBuilder(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newBuilderFixture(t)
	ctx := context.Background()
	a := NewAutosaver(f.builder, time.Hour)
	a.Start(ctx)

	f.add(t, domain.SectionHero)
	require.Eventually(t, func() bool {
		sess, err := f.sessions.LoadSession(ctx, domain.StorageKey)
		return err == nil && len(sess.Entries) == 2
	}, time.Second, 5*time.Millisecond)

	f.add(t, domain.SectionAbout)
	require.NoError(t, a.Stop(ctx))

	sess, err := f.sessions.LoadSession(ctx, domain.StorageKey)
	require.NoError(t, err)
	assert.Len(t, sess.Entries, 3)
	assert.Equal(t, 2, sess.Cursor)
}

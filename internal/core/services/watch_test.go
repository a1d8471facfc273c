package services

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/custodia-labs/folio-cli/internal/core/domain"
)

func writeExportFile(t *testing.T, path string, ids ...string) {
	t.Helper()
	data, err := json.Marshal(domain.NewPersistedPortfolio(stateWith(ids...), time.Now()))
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))
}

func waitReload(t *testing.T, reloads <-chan error) error {
	t.Helper()
	select {
	case err := <-reloads:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
		return nil
	}
}

func TestImportWatcher_ReloadsOnChange(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newBuilderFixture(t)
	path := filepath.Join(t.TempDir(), "portfolio.json")
	writeExportFile(t, path, "a")

	reloads := make(chan error, 8)
	w := NewImportWatcher(path, newTestExporter(t, f))
	w.debounce = 10 * time.Millisecond
	w.OnReload = func(err error) { reloads <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, waitReload(t, reloads))
	assert.Len(t, f.builder.Sections(), 1)

	writeExportFile(t, path, "a", "b", "c")
	require.NoError(t, waitReload(t, reloads))
	assert.Len(t, f.builder.Sections(), 3)

	h := f.builder.History()
	assert.Equal(t, domain.LabelImportPortfolio, h.Entries[h.Cursor].Action)

	cancel()
	require.NoError(t, <-done)
}

func TestImportWatcher_ReportsBadFile(t *testing.T) {
	defer goleak.VerifyNone(t)

	f := newBuilderFixture(t)
	path := filepath.Join(t.TempDir(), "portfolio.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	reloads := make(chan error, 8)
	w := NewImportWatcher(path, newTestExporter(t, f))
	w.debounce = 10 * time.Millisecond
	w.OnReload = func(err error) { reloads <- err }

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	err := waitReload(t, reloads)
	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Empty(t, f.builder.Sections())

	cancel()
	require.NoError(t, <-done)
}

func TestImportWatcher_MissingDirectory(t *testing.T) {
	f := newBuilderFixture(t)
	w := NewImportWatcher(filepath.Join(t.TempDir(), "nope", "portfolio.json"), newTestExporter(t, f))

	err := w.Run(context.Background())
	require.Error(t, err)
}

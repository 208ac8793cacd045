package docs

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"
)

func TestWatcher_RewritesOnNewPDF(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(dir, zaptest.NewLogger(t), WithDebounce(30*time.Millisecond))
	require.NoError(t, err)
	require.NoError(t, w.Start(context.Background()))
	defer w.Stop()

	m, err := Read(dir)
	require.NoError(t, err)
	assert.Empty(t, m.Documents)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "First_Doc.pdf"), []byte("%PDF"), 0o644))
	require.Eventually(t, func() bool {
		m, err := Read(dir)
		return err == nil && len(m.Documents) == 1 && m.Documents[0].Title == "First Doc"
	}, 3*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove(filepath.Join(dir, "First_Doc.pdf")))
	require.Eventually(t, func() bool {
		m, err := Read(dir)
		return err == nil && len(m.Documents) == 0
	}, 3*time.Second, 20*time.Millisecond)

	w.Stop()
}

func TestWatcher_StopsOnContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	dir := t.TempDir()
	w, err := NewWatcher(dir, nil)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	cancel()
	w.Stop()
	w.Stop()
}

func TestWatcher_StartFailsOnMissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "missing"), nil)
	require.NoError(t, err)
	assert.Error(t, w.Start(context.Background()))
	// not running, so Stop is a no-op; release the handle directly
	require.NoError(t, w.watcher.Close())
}

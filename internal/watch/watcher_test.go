package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestWatcherNotifiesOnWrite(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	go w.Run(ctx, func() {
		select {
		case changed <- struct{}{}:
		default:
		}
	})

	require.NoError(t, os.WriteFile(filepath.Join(dir, "plays.csv"), []byte("a,b\n"), 0o644))

	select {
	case <-changed:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}
}

func TestWatcherCoalescesBursts(t *testing.T) {
	dir := t.TempDir()

	w, err := New(dir, zap.NewNop())
	require.NoError(t, err)
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	calls := make(chan struct{}, 16)
	go w.Run(ctx, func() { calls <- struct{}{} })

	for i := 0; i < 5; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "chart.svg"), []byte("<svg/>"), 0o644))
	}

	select {
	case <-calls:
	case <-time.After(3 * time.Second):
		t.Fatal("no change notification")
	}

	// The burst above lands inside one debounce window.
	select {
	case <-calls:
		t.Fatal("burst was not coalesced")
	case <-time.After(2 * debounceWindow):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := New(filepath.Join(t.TempDir(), "missing"), zap.NewNop())
	require.Error(t, err)
}

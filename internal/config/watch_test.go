package config

import (
	"context"
	"io"
	"log/slog"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// replaceFile saves content the way editors do, by renaming a temporary file
// over path, so the watcher never sees a truncated preset.
func replaceFile(path, content string) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func TestWatchReloadsValidEdits(t *testing.T) {
	path := writeTempConfig(t, "model: shimmer\n")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var latest atomic.Pointer[Config]
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, logger, func(c *Config) { latest.Store(c) })
	}()

	// Keep rewriting until the watcher is registered and sees an edit.
	require.Eventually(t, func() bool {
		if err := replaceFile(path, "model: plate\n"); err != nil {
			return false
		}
		c := latest.Load()
		return c != nil && c.Model == "plate"
	}, 5*time.Second, 50*time.Millisecond)

	// An invalid edit is skipped and the last good preset stays.
	require.NoError(t, replaceFile(path, "model: cathedral\n"))
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, "plate", latest.Load().Model)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	err := Watch(context.Background(), "/nonexistent-dir/preset.yaml", logger, func(*Config) {})
	assert.Error(t, err)
}

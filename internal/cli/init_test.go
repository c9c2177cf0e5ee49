package cli

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlife/internal/config"
	"smartlife/internal/log"
)

func quietLogger() *log.Logger {
	return log.New(log.Config{Output: io.Discard})
}

func TestLoadEnvFile(t *testing.T) {
	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("SMARTLIFE_TEST_VAR=from-file\n"), 0o600))
	t.Setenv("SMARTLIFE_TEST_VAR", "")
	require.NoError(t, os.Unsetenv("SMARTLIFE_TEST_VAR"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("SMARTLIFE_TEST_VAR"))
}

func TestSetupLogger(t *testing.T) {
	logger := SetupLogger(&config.Config{LogLevel: "debug", LogFormat: "json"}, log.ComponentApp)
	assert.Equal(t, log.ComponentApp, logger.Component())
	assert.True(t, logger.Enabled(context.Background(), -4))
}

func TestRun_StopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var stopped atomic.Bool

	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, quietLogger(), time.Second, Runner{
			Name: "blocker",
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				return ctx.Err()
			},
			Stop: func(context.Context) error {
				stopped.Store(true)
				return nil
			},
		})
	}()

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.True(t, stopped.Load())
}

func TestRun_FailureStopsOthers(t *testing.T) {
	var stopped atomic.Int32
	boom := errors.New("boom")

	err := Run(context.Background(), quietLogger(), time.Second,
		Runner{
			Name: "failing",
			Run:  func(context.Context) error { return boom },
		},
		Runner{
			Name: "waiting",
			Run: func(ctx context.Context) error {
				<-ctx.Done()
				return nil
			},
			Stop: func(context.Context) error {
				stopped.Add(1)
				return nil
			},
		})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, int32(1), stopped.Load())
}

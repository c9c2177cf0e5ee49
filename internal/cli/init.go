// Package cli provides common CLI initialization utilities shared by
// cmd/smartlife and cmd/smartlife-worker.
package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"smartlife/internal/config"
	"smartlife/internal/log"
)

// LoadEnvFile loads the .env file for local development.
// A missing file is not an error.
func LoadEnvFile(files ...string) error {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

// SetupLogger builds the application logger from configuration and sets
// it as the slog default.
func SetupLogger(cfg *config.Config, component string) *log.Logger {
	logger := log.New(log.Config{
		Level:     cfg.SlogLevel(),
		Format:    cfg.LogFormat,
		Component: component,
		Output:    os.Stdout,
	})
	log.SetDefault(logger)
	return logger
}

// LoadAndValidateConfig loads configuration and validates it.
func LoadAndValidateConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Fatal logs err and exits with status 1.
func Fatal(logger *log.Logger, msg string, err error) {
	logger.Error(msg, log.FieldError, err)
	os.Exit(1)
}

// Runner is a long-running component. Run blocks until ctx is done or the
// component fails; Stop shuts it down within the given context.
type Runner struct {
	Name string
	Run  func(ctx context.Context) error
	Stop func(ctx context.Context) error
}

// RunUntilSignal runs every runner until SIGINT or SIGTERM arrives or one
// of them fails, then stops them all within timeout.
func RunUntilSignal(ctx context.Context, logger *log.Logger, timeout time.Duration, runners ...Runner) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	return Run(ctx, logger, timeout, runners...)
}

// Run is RunUntilSignal without signal handling.
func Run(ctx context.Context, logger *log.Logger, timeout time.Duration, runners ...Runner) error {
	g, gctx := errgroup.WithContext(ctx)

	for _, r := range runners {
		g.Go(func() error {
			logger.Info("Starting component", "name", r.Name)
			if err := r.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s: %w", r.Name, err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received", log.FieldOperation, log.OpShutdown)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		var errs []error
		for _, r := range runners {
			if r.Stop == nil {
				continue
			}
			if err := r.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("stop %s: %w", r.Name, err))
			}
		}
		if shutdownCtx.Err() != nil {
			logger.Warn("Shutdown timeout reached", "timeout", timeout)
		}
		return errors.Join(errs...)
	})

	return g.Wait()
}

package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"smartlife/internal/backend"
	"smartlife/internal/cli"
	apphttp "smartlife/internal/http"
	"smartlife/internal/llm"
	"smartlife/internal/log"
)

func main() {
	if err := cli.LoadEnvFile(); err != nil {
		log.New(log.DefaultConfig()).Warn("Ignoring .env file", log.FieldError, err)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err != nil {
		cli.Fatal(log.New(log.DefaultConfig()), "Configuration validation failed", err)
	}
	logger := cli.SetupLogger(cfg, log.ComponentApp)

	ctx := context.Background()
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger, "Invalid backend configuration", err)
	}

	factory := backend.NewFactory(logger, llm.NewFactory(cfg))
	b, err := factory.CreateAPIBackend(ctx, backendCfg)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize backend", err)
	}
	defer func() {
		if err := b.Cleanup(); err != nil {
			logger.Error("Backend cleanup failed", log.FieldError, err)
		}
	}()

	switch {
	case !cfg.LLMConfigured():
		logger.Warn("Interview preparation features will not work without LLM credentials",
			"provider", cfg.LLMProvider)
	case !b.LLMReady:
		logger.Warn("LLM client unavailable, interview endpoints will fail",
			"provider", cfg.LLMProvider)
	}

	srv := apphttp.NewServer(cfg.Addr(), b.Expenses, b.Questions, b.Store, logger)

	logger.Info("Starting SmartLife server",
		log.FieldOperation, log.OpStartup,
		"addr", cfg.Addr(),
		"db_path", cfg.SQLiteDBPath,
		"llm_provider", cfg.LLMProvider,
		"amqp_enabled", b.Publishing)

	err = cli.RunUntilSignal(ctx, logger, cfg.ShutdownTimeout, cli.Runner{
		Name: "http",
		Run: func(context.Context) error {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}
			return nil
		},
		Stop: srv.Shutdown,
	})
	if err != nil {
		logger.Error("Server stopped with error", log.FieldError, err)
		_ = b.Cleanup()
		os.Exit(1)
	}

	logger.Info("Server stopped gracefully")
}

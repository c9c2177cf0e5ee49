package main

import (
	"context"
	"os"

	"smartlife/internal/amqp"
	"smartlife/internal/backend"
	"smartlife/internal/cli"
	"smartlife/internal/log"
	"smartlife/internal/storage"
	"smartlife/internal/worker"
)

func main() {
	if err := cli.LoadEnvFile(); err != nil {
		log.New(log.DefaultConfig()).Warn("Ignoring .env file", log.FieldError, err)
	}

	cfg, err := cli.LoadAndValidateConfig()
	if err == nil {
		err = cfg.ValidateWorker()
	}
	if err != nil {
		cli.Fatal(log.New(log.DefaultConfig()), "Configuration validation failed", err)
	}
	logger := cli.SetupLogger(cfg, log.ComponentWorker)
	logger.Info("Starting smartlife-worker")

	ctx := context.Background()
	backendCfg, err := backend.FromAppConfig(cfg)
	if err != nil {
		cli.Fatal(logger, "Invalid backend configuration", err)
	}

	mirror, err := backend.NewFactory(logger, nil).CreateMirror(ctx, backendCfg)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize sheet mirror", err)
	}

	// The worker reads the stored row so the sheet gets canonical values.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize SQLite repository", err)
	}
	defer repo.Close()

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		cli.Fatal(logger, "Failed to initialize AMQP client", err)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, mirror.Mirror)

	err = cli.RunUntilSignal(ctx, logger, cfg.ShutdownTimeout, cli.Runner{
		Name: "consumer",
		Run: func(ctx context.Context) error {
			return amqpClient.ConsumeExpenseEvents(ctx, syncWorker.HandleEvent)
		},
	})
	if err != nil {
		logger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker shutdown complete", "mirror", mirror.Type)
}

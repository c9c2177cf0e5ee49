package backend

import (
	"context"
	"errors"
	"fmt"

	"smartlife/internal/amqp"
	"smartlife/internal/interview"
	"smartlife/internal/llm"
	"smartlife/internal/log"
	"smartlife/internal/services"
	gsheet "smartlife/internal/sheets/google"
	"smartlife/internal/sheets/memory"
	"smartlife/internal/storage"
)

// ClientFactory creates LLM clients by provider name.
type ClientFactory interface {
	CreateClient(provider string) (llm.Client, error)
}

// Factory builds backends from configuration.
type Factory struct {
	base   *log.Logger
	logger *log.Logger
	llm    ClientFactory
}

// NewFactory creates a new backend factory
func NewFactory(logger *log.Logger, llmFactory ClientFactory) *Factory {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &Factory{
		base:   logger,
		logger: logger.WithComponent(log.ComponentBackend),
		llm:    llmFactory,
	}
}

// CreateAPIBackend opens the database, connects the optional publisher and
// prepares the question generator. A broker that cannot be reached and an
// LLM client that cannot be built are logged and tolerated; the interview
// endpoints then answer with an upstream error.
func (f *Factory) CreateAPIBackend(ctx context.Context, cfg Config) (*APIBackend, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize SQLite repository: %w", err)
	}
	if version, _, err := repo.SchemaVersion(); err == nil {
		f.component(log.ComponentStorage).InfoContext(ctx, "Opened SQLite database",
			"db_path", cfg.SQLiteDBPath, "schema_version", version)
	}

	// Keep the publisher a nil interface when disabled.
	var publisher services.EventPublisher
	if cfg.AMQPURL != "" {
		amqpLogger := f.component(log.ComponentAMQP)
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			amqpLogger.WarnContext(ctx, "Failed to initialize AMQP client, continuing without events", log.FieldError, err)
		} else {
			publisher = client
			amqpLogger.InfoContext(ctx, "Initialized AMQP client",
				"exchange", cfg.AMQPExchange,
				"queue", cfg.AMQPQueue)
		}
	}

	expenseService := services.NewExpenseService(repo, publisher)

	client, llmReady := f.createLLMClient(ctx, cfg.LLMProvider)

	f.logger.InfoContext(ctx, "Initialized API backend",
		"db_path", cfg.SQLiteDBPath,
		"amqp_enabled", publisher != nil,
		"llm_provider", cfg.LLMProvider,
		"llm_ready", llmReady)

	return &APIBackend{
		Store:      repo,
		Expenses:   expenseService,
		Questions:  interview.NewGenerator(client, cfg.LLMProvider),
		Publishing: publisher != nil,
		LLMReady:   llmReady,
		Cleanup:    expenseService.Close,
	}, nil
}

// createLLMClient never fails: any construction error is logged and replaced
// by a client that reports itself unavailable on every call.
func (f *Factory) createLLMClient(ctx context.Context, provider string) (llm.Client, bool) {
	llmLogger := f.component(log.ComponentLLM)
	if f.llm == nil {
		return llm.Unavailable{Reason: "no LLM factory configured"}, false
	}

	client, err := f.llm.CreateClient(provider)
	if err == nil {
		return client, true
	}

	if errors.Is(err, llm.ErrNotConfigured) {
		llmLogger.WarnContext(ctx, "LLM credentials missing, interview endpoints will fail",
			"provider", provider, log.FieldError, err)
	} else {
		llmLogger.WarnContext(ctx, "Failed to create LLM client, interview endpoints will fail",
			"provider", provider, log.FieldError, err)
	}
	return llm.Unavailable{Reason: err.Error()}, false
}

func (f *Factory) component(name string) *log.Logger {
	return f.base.WithComponent(name)
}

// CreateMirror returns the Google Sheets mirror when a spreadsheet is
// configured and an in-memory one otherwise.
func (f *Factory) CreateMirror(ctx context.Context, cfg Config) (*MirrorResult, error) {
	if !cfg.Mirror.IsValid() {
		return nil, fmt.Errorf("invalid mirror type: %s", cfg.Mirror)
	}

	switch cfg.Mirror {
	case SheetsMirror:
		cli, err := gsheet.New(ctx, gsheet.Options{
			SpreadsheetID:      cfg.GoogleSpreadsheetID,
			SheetName:          cfg.GoogleSheetName,
			ServiceAccountJSON: cfg.GoogleServiceAccountJSON,
			ServiceAccountFile: cfg.GoogleServiceAccountFile,
		})
		if err != nil {
			return nil, fmt.Errorf("failed to initialize Google Sheets client: %w", err)
		}
		f.component(log.ComponentSheets).InfoContext(ctx, "Initialized Google Sheets mirror",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
		return &MirrorResult{Mirror: cli, Type: SheetsMirror}, nil
	default:
		f.logger.InfoContext(ctx, "Initialized memory mirror, no GOOGLE_SPREADSHEET_ID provided")
		return &MirrorResult{Mirror: memory.New(), Type: MemoryMirror}, nil
	}
}

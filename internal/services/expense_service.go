package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"smartlife/internal/core"
)

// ExpenseStore is the persistence the service needs.
type ExpenseStore interface {
	CreateExpense(ctx context.Context, e core.NewExpense) (core.Expense, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	DeleteExpense(ctx context.Context, id int64) (int64, error)
}

// EventPublisher announces expense changes to downstream consumers.
type EventPublisher interface {
	PublishExpenseCreated(ctx context.Context, e core.Expense) error
	PublishExpenseDeleted(ctx context.Context, id int64) error
}

// ExpenseService orchestrates expense operations across SQLite and AMQP
type ExpenseService struct {
	storage   ExpenseStore
	publisher EventPublisher
}

// NewExpenseService wires a store and an optional publisher. Pass a nil
// interface, not a typed nil pointer, to disable publishing.
func NewExpenseService(storage ExpenseStore, publisher EventPublisher) *ExpenseService {
	return &ExpenseService{
		storage:   storage,
		publisher: publisher,
	}
}

// CreateExpense validates and saves an expense, then publishes a sync event.
func (s *ExpenseService) CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error) {
	valid, err := in.Validate()
	if err != nil {
		return core.Expense{}, err
	}

	expense, err := s.storage.CreateExpense(ctx, valid)
	if err != nil {
		return core.Expense{}, fmt.Errorf("save expense: %w", err)
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseCreated(ctx, expense); err != nil {
			// The expense is saved; the mirror can catch up later.
			slog.ErrorContext(ctx, "Failed to publish expense created event",
				"id", expense.ID, "error", err)
		}
	}

	slog.InfoContext(ctx, "Expense created",
		"id", expense.ID,
		"amount", expense.Amount.String(),
		"category", expense.Category,
		"date", expense.Date.String())

	return expense, nil
}

func (s *ExpenseService) ListExpenses(ctx context.Context) ([]core.Expense, error) {
	return s.storage.ListExpenses(ctx)
}

func (s *ExpenseService) GetExpense(ctx context.Context, id int64) (core.Expense, error) {
	return s.storage.GetExpense(ctx, id)
}

// DeleteExpense removes an expense and publishes a delete event.
func (s *ExpenseService) DeleteExpense(ctx context.Context, id int64) error {
	n, err := s.storage.DeleteExpense(ctx, id)
	if err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	if n == 0 {
		return &core.NotFoundError{Resource: "Expense", ID: id}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishExpenseDeleted(ctx, id); err != nil {
			slog.ErrorContext(ctx, "Failed to publish expense deleted event",
				"id", id, "error", err)
		}
	}

	slog.InfoContext(ctx, "Expense deleted", "id", id)
	return nil
}

// Close closes the store and publisher when they hold resources.
func (s *ExpenseService) Close() error {
	var errs []error

	if c, ok := s.storage.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}

	if c, ok := s.publisher.(io.Closer); ok && c != nil {
		if err := c.Close(); err != nil {
			errs = append(errs, fmt.Errorf("publisher: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close expense service: %w", errors.Join(errs...))
	}

	return nil
}

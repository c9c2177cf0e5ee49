package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"smartlife/internal/amqp"
	"smartlife/internal/core"
	"smartlife/internal/sheets"
)

// ExpenseReader lets the worker confirm an expense still exists before mirroring it.
type ExpenseReader interface {
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
}

// SyncWorker applies expense events to a spreadsheet mirror.
type SyncWorker struct {
	storage ExpenseReader
	mirror  sheets.ExpenseMirror
}

// NewSyncWorker builds a worker. storage may be nil, in which case created
// events are mirrored from their payload without a freshness check.
func NewSyncWorker(storage ExpenseReader, mirror sheets.ExpenseMirror) *SyncWorker {
	return &SyncWorker{
		storage: storage,
		mirror:  mirror,
	}
}

// HandleEvent dispatches one event. A returned error asks the broker to redeliver.
func (w *SyncWorker) HandleEvent(ctx context.Context, msg *amqp.ExpenseEvent) error {
	switch msg.Type {
	case amqp.EventExpenseCreated:
		return w.handleCreated(ctx, msg)
	case amqp.EventExpenseDeleted:
		return w.handleDeleted(ctx, msg)
	default:
		slog.WarnContext(ctx, "Ignoring unknown expense event", "type", msg.Type, "id", msg.ID)
		return nil
	}
}

func (w *SyncWorker) handleCreated(ctx context.Context, msg *amqp.ExpenseEvent) error {
	if msg.Expense == nil {
		slog.WarnContext(ctx, "Created event without payload, dropping", "id", msg.ID)
		return nil
	}
	expense := *msg.Expense

	if w.storage != nil {
		current, err := w.storage.GetExpense(ctx, msg.ID)
		switch {
		case errors.Is(err, core.ErrNotFound):
			// Deleted before we got here; the delete event handles the sheet.
			slog.InfoContext(ctx, "Expense no longer exists, skipping mirror", "id", msg.ID)
			return nil
		case err != nil:
			return fmt.Errorf("get expense from storage: %w", err)
		default:
			expense = current
		}
	}

	ref, err := w.mirror.AppendExpense(ctx, expense)
	if err != nil {
		return fmt.Errorf("append to sheets: %w", err)
	}

	slog.InfoContext(ctx, "Successfully synced expense",
		"id", expense.ID,
		"sheets_ref", ref,
		"category", expense.Category,
		"amount", expense.Amount.String())

	return nil
}

func (w *SyncWorker) handleDeleted(ctx context.Context, msg *amqp.ExpenseEvent) error {
	if err := w.mirror.DeleteExpense(ctx, msg.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to delete expense from sheet",
			"id", msg.ID,
			"error", err,
			"timestamp", msg.Timestamp)
		return fmt.Errorf("delete expense from sheets: %w", err)
	}

	slog.InfoContext(ctx, "Successfully deleted expense from sheet", "id", msg.ID)
	return nil
}

package worker

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlife/internal/amqp"
	"smartlife/internal/core"
	"smartlife/internal/sheets/memory"
)

type stubReader struct {
	expenses map[int64]core.Expense
	err      error
}

func (r stubReader) GetExpense(_ context.Context, id int64) (core.Expense, error) {
	if r.err != nil {
		return core.Expense{}, r.err
	}
	e, ok := r.expenses[id]
	if !ok {
		return core.Expense{}, &core.NotFoundError{Resource: "Expense", ID: id}
	}
	return e, nil
}

type failingMirror struct{}

func (failingMirror) AppendExpense(context.Context, core.Expense) (string, error) {
	return "", errors.New("quota exceeded")
}
func (failingMirror) DeleteExpense(context.Context, int64) error { return errors.New("quota exceeded") }

func expense(id int64, category string) core.Expense {
	return core.Expense{ID: id, Amount: decimal.NewFromInt(10), Category: category, Date: core.NewDate(2024, 1, 1)}
}

func TestSyncWorker_CreatedUsesStoredRow(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	w := NewSyncWorker(stubReader{expenses: map[int64]core.Expense{1: expense(1, "Stored")}}, mirror)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseCreatedEvent(expense(1, "FromEvent"))))

	got := mirror.Expenses()
	require.Len(t, got, 1)
	assert.Equal(t, "Stored", got[0].Category)
}

func TestSyncWorker_CreatedSkipsDeletedExpense(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	w := NewSyncWorker(stubReader{expenses: map[int64]core.Expense{}}, mirror)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseCreatedEvent(expense(5, "Gone"))))
	assert.Empty(t, mirror.Expenses())
}

func TestSyncWorker_CreatedWithoutStorage(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	w := NewSyncWorker(nil, mirror)

	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseCreatedEvent(expense(2, "Payload"))))
	require.Len(t, mirror.Expenses(), 1)
	assert.Equal(t, "Payload", mirror.Expenses()[0].Category)
}

func TestSyncWorker_Deleted(t *testing.T) {
	ctx := context.Background()
	mirror := memory.New()
	_, err := mirror.AppendExpense(ctx, expense(3, "Food"))
	require.NoError(t, err)

	w := NewSyncWorker(nil, mirror)
	require.NoError(t, w.HandleEvent(ctx, amqp.NewExpenseDeletedEvent(3)))
	assert.Empty(t, mirror.Expenses())
}

func TestSyncWorker_ErrorsRequestRedelivery(t *testing.T) {
	ctx := context.Background()

	w := NewSyncWorker(nil, failingMirror{})
	assert.Error(t, w.HandleEvent(ctx, amqp.NewExpenseCreatedEvent(expense(1, "A"))))
	assert.Error(t, w.HandleEvent(ctx, amqp.NewExpenseDeletedEvent(1)))

	w = NewSyncWorker(stubReader{err: &core.StorageError{Op: "get expense", Err: errors.New("locked")}}, memory.New())
	assert.Error(t, w.HandleEvent(ctx, amqp.NewExpenseCreatedEvent(expense(1, "A"))))
}

func TestSyncWorker_UnknownEventIsDropped(t *testing.T) {
	w := NewSyncWorker(nil, failingMirror{})
	assert.NoError(t, w.HandleEvent(context.Background(), &amqp.ExpenseEvent{Type: "expense.archived", ID: 1}))
}

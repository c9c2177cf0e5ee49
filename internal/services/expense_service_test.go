package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlife/internal/core"
	"smartlife/internal/storage"
)

type fakePublisher struct {
	created []core.Expense
	deleted []int64
	err     error
}

func (p *fakePublisher) PublishExpenseCreated(_ context.Context, e core.Expense) error {
	p.created = append(p.created, e)
	return p.err
}

func (p *fakePublisher) PublishExpenseDeleted(_ context.Context, id int64) error {
	p.deleted = append(p.deleted, id)
	return p.err
}

type failingStore struct {
	err error
}

func (s failingStore) CreateExpense(context.Context, core.NewExpense) (core.Expense, error) {
	return core.Expense{}, s.err
}
func (s failingStore) ListExpenses(context.Context) ([]core.Expense, error) { return nil, s.err }
func (s failingStore) GetExpense(context.Context, int64) (core.Expense, error) {
	return core.Expense{}, s.err
}
func (s failingStore) DeleteExpense(context.Context, int64) (int64, error) { return 0, s.err }

func newTestStore(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestExpenseService_CreateExpense(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewExpenseService(newTestStore(t), pub)

	e, err := svc.CreateExpense(ctx, core.ExpenseInput{Amount: "25.50", Category: "Food", Note: "Lunch", Date: "2024-01-15"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), e.ID)
	assert.Equal(t, "Food", e.Category)

	require.Len(t, pub.created, 1)
	assert.Equal(t, e.ID, pub.created[0].ID)
}

func TestExpenseService_CreateInvalidPersistsNothing(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	store := newTestStore(t)
	svc := NewExpenseService(store, pub)

	_, err := svc.CreateExpense(ctx, core.ExpenseInput{Amount: "0", Category: "Food", Date: "2024-01-15"})
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrValidation)

	n, err := store.CountExpenses(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, pub.created)
}

func TestExpenseService_PublishFailureDoesNotFailCreate(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{err: errors.New("broker down")}
	svc := NewExpenseService(newTestStore(t), pub)

	_, err := svc.CreateExpense(ctx, core.ExpenseInput{Amount: "3", Category: "Coffee", Date: "2024-01-15"})
	assert.NoError(t, err)
}

func TestExpenseService_DeleteExpense(t *testing.T) {
	ctx := context.Background()
	pub := &fakePublisher{}
	svc := NewExpenseService(newTestStore(t), pub)

	e, err := svc.CreateExpense(ctx, core.ExpenseInput{Amount: "10", Category: "Transport", Date: "2024-01-14"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
	assert.Equal(t, []int64{e.ID}, pub.deleted)

	err = svc.DeleteExpense(ctx, e.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrNotFound)
	assert.Equal(t, "Expense with ID 1 not found", err.Error())
	assert.Len(t, pub.deleted, 1)
}

func TestExpenseService_NilPublisher(t *testing.T) {
	ctx := context.Background()
	svc := NewExpenseService(newTestStore(t), nil)

	e, err := svc.CreateExpense(ctx, core.ExpenseInput{Amount: "1", Category: "A", Date: "2024-01-01"})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteExpense(ctx, e.ID))
}

func TestExpenseService_StorageErrorsPropagate(t *testing.T) {
	ctx := context.Background()
	cause := &core.StorageError{Op: "insert expense", Err: errors.New("disk full")}
	svc := NewExpenseService(failingStore{err: cause}, nil)

	_, err := svc.CreateExpense(ctx, core.ExpenseInput{Amount: "1", Category: "A", Date: "2024-01-01"})
	assert.ErrorIs(t, err, core.ErrStorage)

	err = svc.DeleteExpense(ctx, 1)
	assert.ErrorIs(t, err, core.ErrStorage)
}

func TestExpenseService_Close(t *testing.T) {
	t.Run("closes store", func(t *testing.T) {
		repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "close.db"))
		require.NoError(t, err)
		assert.NoError(t, NewExpenseService(repo, nil).Close())
	})

	t.Run("non closer components", func(t *testing.T) {
		svc := NewExpenseService(failingStore{}, &fakePublisher{})
		assert.NoError(t, svc.Close())
	})
}

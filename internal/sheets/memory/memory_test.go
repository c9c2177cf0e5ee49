package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"smartlife/internal/core"
)

func TestStore_AppendAndDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	ref, err := s.AppendExpense(ctx, core.Expense{ID: 2, Amount: decimal.NewFromInt(5), Category: "B"})
	require.NoError(t, err)
	assert.Equal(t, "mem:1", ref)

	_, err = s.AppendExpense(ctx, core.Expense{ID: 1, Amount: decimal.NewFromInt(3), Category: "A"})
	require.NoError(t, err)

	got := s.Expenses()
	require.Len(t, got, 2)
	assert.Equal(t, "A", got[0].Category)
	assert.Equal(t, "B", got[1].Category)

	require.NoError(t, s.DeleteExpense(ctx, 1))
	require.NoError(t, s.DeleteExpense(ctx, 99))
	assert.Len(t, s.Expenses(), 1)
}

func TestStore_RejectsMissingID(t *testing.T) {
	_, err := New().AppendExpense(context.Background(), core.Expense{})
	assert.Error(t, err)
}

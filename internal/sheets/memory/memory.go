// Package memory is an in-process ExpenseMirror used when no spreadsheet is
// configured and in tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"smartlife/internal/core"
	"smartlife/internal/sheets"
)

var _ sheets.ExpenseMirror = (*Store)(nil)

type Store struct {
	mu    sync.Mutex
	items map[int64]core.Expense
	seq   int
}

func New() *Store {
	return &Store{items: make(map[int64]core.Expense)}
}

// AppendExpense stores the expense and returns a synthetic row reference.
// Re-appending the same id overwrites the earlier copy.
func (s *Store) AppendExpense(_ context.Context, e core.Expense) (string, error) {
	if e.ID <= 0 {
		return "", fmt.Errorf("expense id must be positive, got %d", e.ID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++
	s.items[e.ID] = e
	return fmt.Sprintf("mem:%d", s.seq), nil
}

func (s *Store) DeleteExpense(_ context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

// Expenses returns the mirrored rows ordered by id.
func (s *Store) Expenses() []core.Expense {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]core.Expense, 0, len(s.items))
	for _, e := range s.items {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

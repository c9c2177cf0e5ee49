package sheets

import (
	"context"

	"smartlife/internal/core"
)

// Ports for outbound adapters.
type (
	// ExpenseMirror keeps a spreadsheet copy of the expense table.
	ExpenseMirror interface {
		// AppendExpense adds a row and returns a reference to where it landed.
		AppendExpense(ctx context.Context, e core.Expense) (rowRef string, err error)
		// DeleteExpense removes the row for id. A missing row is not an error.
		DeleteExpense(ctx context.Context, id int64) error
	}
)

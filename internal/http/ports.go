package http

import (
	"context"

	"smartlife/internal/core"
	"smartlife/internal/interview"
)

// ExpenseService is what the expense handlers need from the service layer.
type ExpenseService interface {
	CreateExpense(ctx context.Context, in core.ExpenseInput) (core.Expense, error)
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	GetExpense(ctx context.Context, id int64) (core.Expense, error)
	DeleteExpense(ctx context.Context, id int64) error
}

// QuestionGenerator produces interview questions for a topic.
type QuestionGenerator interface {
	Generate(ctx context.Context, topic string, difficulty core.Difficulty) (interview.Result, error)
}

// ReadinessChecker is consulted by /readyz.
type ReadinessChecker interface {
	Ping(ctx context.Context) error
	CountExpenses(ctx context.Context) (int64, error)
	SchemaVersion() (version uint, dirty bool, err error)
}

package http

import (
	"fmt"
	"net/http"

	"smartlife/internal/log"
)

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	in, err := parseExpenseInput(w, r)
	if err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}

	expense, err := s.expenses.CreateExpense(r.Context(), in)
	if err != nil {
		s.writeError(w, r, log.OpCreate, err)
		return
	}

	NewJSONResponse().
		Status(http.StatusCreated).
		Message("Expense added successfully").
		Data(expense).
		Write(w)
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	expenses, err := s.expenses.ListExpenses(r.Context())
	if err != nil {
		s.writeError(w, r, log.OpList, err)
		return
	}

	NewJSONResponse().
		Message(fmt.Sprintf("Retrieved %d expenses", len(expenses))).
		Data(expenses).
		Write(w)
}

func (s *Server) handleGetExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseExpenseID(r)
	if err != nil {
		s.writeError(w, r, log.OpRead, err)
		return
	}

	expense, err := s.expenses.GetExpense(r.Context(), id)
	if err != nil {
		s.writeError(w, r, log.OpRead, err)
		return
	}

	NewJSONResponse().Data(expense).Write(w)
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	id, err := parseExpenseID(r)
	if err != nil {
		s.writeError(w, r, log.OpDelete, err)
		return
	}

	if err := s.expenses.DeleteExpense(r.Context(), id); err != nil {
		s.writeError(w, r, log.OpDelete, err)
		return
	}

	NewJSONResponse().
		Message(fmt.Sprintf("Expense with ID %d deleted successfully", id)).
		Write(w)
}

// Package backend assembles the runtime dependencies the binaries share:
// the expense store, event publisher, question generator and sheet mirror.
package backend

import (
	"smartlife/internal/interview"
	"smartlife/internal/services"
	"smartlife/internal/sheets"
	"smartlife/internal/storage"
)

// CleanupFunc represents a cleanup function for resources
type CleanupFunc func() error

// APIBackend holds what the HTTP server needs.
type APIBackend struct {
	Store     *storage.SQLiteRepository
	Expenses  *services.ExpenseService
	Questions *interview.Generator
	Cleanup   CleanupFunc

	// Publishing reports whether expense events reach the broker.
	Publishing bool
	// LLMReady is false when the server runs without model credentials.
	LLMReady bool
}

// MirrorResult is the sheet mirror selected for the worker.
type MirrorResult struct {
	Mirror sheets.ExpenseMirror
	Type   MirrorType
}

// MirrorType represents where the worker mirrors expenses
type MirrorType string

const (
	SheetsMirror MirrorType = "sheets"
	MemoryMirror MirrorType = "memory"
)

// String implements fmt.Stringer
func (mt MirrorType) String() string {
	return string(mt)
}

// IsValid returns true if the mirror type is valid
func (mt MirrorType) IsValid() bool {
	switch mt {
	case SheetsMirror, MemoryMirror:
		return true
	default:
		return false
	}
}

package amqp

import (
	"encoding/json"
	"fmt"
	"time"

	"smartlife/internal/core"
)

// EventType names the change an ExpenseEvent announces.
type EventType string

const (
	EventExpenseCreated EventType = "expense.created"
	EventExpenseDeleted EventType = "expense.deleted"
)

// ExpenseEvent is published after an expense is stored or removed.
// Created events carry the full record so consumers need no database access.
type ExpenseEvent struct {
	Type      EventType     `json:"type"`
	ID        int64         `json:"id"`
	Expense   *core.Expense `json:"expense,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

func NewExpenseCreatedEvent(e core.Expense) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      EventExpenseCreated,
		ID:        e.ID,
		Expense:   &e,
		Timestamp: time.Now().UTC(),
	}
}

func NewExpenseDeletedEvent(id int64) *ExpenseEvent {
	return &ExpenseEvent{
		Type:      EventExpenseDeleted,
		ID:        id,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON converts the event to JSON bytes
func (m *ExpenseEvent) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// ExpenseEventFromJSON decodes and sanity checks an event body.
func ExpenseEventFromJSON(data []byte) (*ExpenseEvent, error) {
	var msg ExpenseEvent
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.ID <= 0 {
		return nil, fmt.Errorf("invalid expense id %d", msg.ID)
	}
	switch msg.Type {
	case EventExpenseCreated:
		if msg.Expense == nil {
			return nil, fmt.Errorf("%s event without expense payload", msg.Type)
		}
	case EventExpenseDeleted:
	default:
		return nil, fmt.Errorf("unknown event type %q", msg.Type)
	}
	return &msg, nil
}

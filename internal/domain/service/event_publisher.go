package service

import (
	"context"
	"time"
)

// AccountRegisteredEventType tags account registration messages.
const AccountRegisteredEventType = "account.registered"

// AccountRegisteredEvent is emitted once a newly created account has been committed.
type AccountRegisteredEvent struct {
	AccountID    int64     `json:"account_id"`
	Email        string    `json:"email,omitempty"`
	Login        string    `json:"login,omitempty"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
	RequestID    string    `json:"request_id,omitempty"`
}

// EventPublisher delivers account lifecycle events to downstream consumers.
type EventPublisher interface {
	PublishAccountRegistered(ctx context.Context, event *AccountRegisteredEvent) error
	Close() error
}

// Package repository defines the interfaces for the persistence layer.
// These interfaces act as a contract between the domain/application layers and the infrastructure layer.
package repository

import (
	"context"

	"identity/internal/domain/entity"

	"github.com/pkg/errors"
)

// ErrAccountNotFound is returned by lookups that match no account.
var ErrAccountNotFound = errors.New("account not found")

// AccountRepository defines the persistence operations for accounts.
type AccountRepository interface {
	// FindByCredentials returns every account whose email OR login matches
	// the non-nil arguments, ordered by ID. An empty slice means no match.
	FindByCredentials(ctx context.Context, email, login *string) ([]*entity.Account, error)

	// FindByID retrieves a single account by its identifier.
	FindByID(ctx context.Context, id int64) (*entity.Account, error)

	// Create inserts the account and fills in its store-assigned ID and CreatedAt.
	// A uniqueness violation is reported as domainerrors.ErrAccountAlreadyExists.
	Create(ctx context.Context, account *entity.Account) error

	// Delete removes an account. Used by tests and tooling only.
	Delete(ctx context.Context, id int64) error
}

// Package persistence selects the account store backend from configuration.
package persistence

import (
	"log/slog"

	"identity/config"
	"identity/internal/domain/repository"
	"identity/internal/infra/persistence/memory"
	"identity/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New builds the transaction manager for the store configured by database.driver.
func New(params Params) (repository.TransactionManager, error) {
	switch params.Config.Database.Driver {
	case "memory":
		params.Logger.Warn("Using the in-memory account store; accounts are lost on restart")

		return memory.NewTransactionManager(memory.NewStore()), nil
	case "postgres", "":
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lifecycle,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}

		return postgres.NewTransactionManager(db), nil
	default:
		return nil, errors.Errorf("unknown database driver: %s", params.Config.Database.Driver)
	}
}

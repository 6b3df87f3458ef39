package impl

import (
	"context"
	"log/slog"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/usecase"

	"github.com/pkg/errors"
)

// profileService implements the ProfileUsecase interface.
type profileService struct {
	txManager repository.TransactionManager
	logger    *slog.Logger
}

// NewProfileService is the constructor for profileService.
func NewProfileService(
	txManager repository.TransactionManager,
	logger *slog.Logger,
) usecase.ProfileUsecase {
	return &profileService{
		txManager: txManager,
		logger:    logger,
	}
}

// GetProfile retrieves the account behind a verified token.
func (srv *profileService) GetProfile(ctx context.Context, accountID int64) (*entity.Account, error) {
	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Debug("Getting account profile", slog.Int64("accountID", accountID))

	var account *entity.Account

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		found, err := repoFactory.AccountRepo().FindByID(ctx, accountID)
		if err != nil {
			if errors.Is(err, repository.ErrAccountNotFound) {
				return domainerrors.ErrAccountNotFound
			}

			return errors.Wrap(err, "failed to find account")
		}
		account = found

		return nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to get account profile")
	}

	if !account.IsActive {
		return nil, domainerrors.ErrAccountInactive
	}

	return account, nil
}

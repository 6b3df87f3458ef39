package postgres

import (
	"context"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/infra/persistence/model"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// accountRepository implements repository.AccountRepository using GORM.
type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository is the constructor for accountRepository.
func NewAccountRepository(db *gorm.DB) repository.AccountRepository {
	return &accountRepository{db: db}
}

// FindByCredentials matches on email OR login. Nil arguments take no part in the filter.
func (repo *accountRepository) FindByCredentials(ctx context.Context, email, login *string) ([]*entity.Account, error) {
	if email == nil && login == nil {
		return []*entity.Account{}, nil
	}

	query := repo.db.WithContext(ctx).Model(&model.AccountModel{})
	switch {
	case email != nil && login != nil:
		query = query.Where("email = ? OR login = ?", *email, *login)
	case email != nil:
		query = query.Where("email = ?", *email)
	default:
		query = query.Where("login = ?", *login)
	}

	var models []model.AccountModel
	if err := query.Order("id ASC").Find(&models).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find accounts by credentials")
	}

	accounts := make([]*entity.Account, 0, len(models))
	for i := range models {
		accounts = append(accounts, toAccountDomain(&models[i]))
	}

	return accounts, nil
}

// FindByID retrieves a single account by its identifier.
func (repo *accountRepository) FindByID(ctx context.Context, id int64) (*entity.Account, error) {
	var accountM model.AccountModel

	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&accountM).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrAccountNotFound
		}

		return nil, errors.Wrap(err, "failed to find account by id")
	}

	return toAccountDomain(&accountM), nil
}

// Create inserts the account and copies back the generated ID and timestamp.
func (repo *accountRepository) Create(ctx context.Context, account *entity.Account) error {
	accountM := fromAccountDomain(account)

	if err := repo.db.WithContext(ctx).Create(accountM).Error; err != nil {
		if isUniqueConstraintViolation(err) {
			return domainerrors.ErrAccountAlreadyExists.WrapMessage("email and login pair already registered")
		}
		if isNotNullConstraintViolation(err) || isCheckConstraintViolation(err) {
			return domainerrors.ErrAccountCreationFailed.WrapMessage("email or login is required")
		}

		return domainerrors.NewDatabaseExecuteError(err, "failed to create account")
	}

	account.ID = accountM.ID
	account.CreatedAt = accountM.CreatedAt

	return nil
}

// Delete removes an account by its identifier.
func (repo *accountRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.AccountModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete account")
	}
	if result.RowsAffected == 0 {
		return repository.ErrAccountNotFound
	}

	return nil
}

func toAccountDomain(data *model.AccountModel) *entity.Account {
	if data == nil {
		return nil
	}

	return &entity.Account{
		ID:           data.ID,
		Email:        data.Email,
		Login:        data.Login,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
	}
}

func fromAccountDomain(data *entity.Account) *model.AccountModel {
	if data == nil {
		return nil
	}

	return &model.AccountModel{
		ID:           data.ID,
		Email:        data.Email,
		Login:        data.Login,
		PasswordHash: data.PasswordHash,
		IsActive:     data.IsActive,
		CreatedAt:    data.CreatedAt,
	}
}

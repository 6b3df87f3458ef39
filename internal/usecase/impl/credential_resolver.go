package impl

import (
	"context"

	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/repository"
	"identity/internal/domain/service"

	"github.com/pkg/errors"
)

// CredentialResolver maps credentials to an existing account or to a new,
// unsaved one. It never writes to the store.
type CredentialResolver struct {
	hasher             service.PasswordHasher
	activateOnRegister bool
}

// NewCredentialResolver is the constructor for CredentialResolver.
func NewCredentialResolver(hasher service.PasswordHasher, activateOnRegister bool) *CredentialResolver {
	return &CredentialResolver{
		hasher:             hasher,
		activateOnRegister: activateOnRegister,
	}
}

// Resolve looks accounts up by email OR login. The lowest-ID match wins and
// must accept the supplied password. Without a match a new account is built
// and returned with created set.
func (r *CredentialResolver) Resolve(ctx context.Context, repo repository.AccountRepository, creds entity.Credentials) (*entity.Account, bool, error) {
	if err := creds.Validate(); err != nil {
		return nil, false, err
	}

	matches, err := repo.FindByCredentials(ctx, creds.Email, creds.Login)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to look up account")
	}

	if len(matches) > 0 {
		account := matches[0]
		if !r.hasher.Check(creds.Password, account.PasswordHash) {
			return nil, false, domainerrors.ErrInvalidCredentials
		}

		return account, false, nil
	}

	digest, err := r.hasher.Hash(creds.Password)
	if err != nil {
		return nil, false, errors.Wrap(err, "failed to hash password")
	}

	account := &entity.Account{
		Email:        creds.Email,
		Login:        creds.Login,
		PasswordHash: digest,
		IsActive:     r.activateOnRegister,
	}

	return account, true, nil
}

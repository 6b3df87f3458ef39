package usecase

import (
	"context"

	"identity/internal/domain/entity"
)

// ProfileUsecase defines the interface for profile-related business operations.
type ProfileUsecase interface {
	// GetProfile returns the active account identified by accountID.
	GetProfile(ctx context.Context, accountID int64) (*entity.Account, error)
}

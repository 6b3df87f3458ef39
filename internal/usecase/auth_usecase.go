// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"
	"time"

	"identity/internal/domain/entity"
)

// --- Input DTOs ---

// AuthenticateInput carries normalized credentials from the delivery layer.
type AuthenticateInput struct {
	Credentials entity.Credentials
}

// --- Output DTOs ---

// AuthenticateOutput returns the issued token and whether the account was just created.
type AuthenticateOutput struct {
	Token     string
	ExpiresAt time.Time
	Created   bool
	Account   *entity.Account
}

// AuthUsecase finds or creates an account for the given credentials and issues a token.
type AuthUsecase interface {
	Authenticate(ctx context.Context, input *AuthenticateInput) (*AuthenticateOutput, error)
}

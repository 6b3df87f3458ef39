package auth

import (
	"strings"

	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
)

// BearerScheme is the only accepted Authorization scheme.
const BearerScheme = "Bearer"

type bearerGuard struct {
	tokens service.TokenService
}

// NewBearerGuard is the constructor for the Authorization header guard.
func NewBearerGuard(tokens service.TokenService) service.BearerGuard {
	return &bearerGuard{tokens: tokens}
}

// Authenticate parses "Bearer <token>" and returns the verified payload.
func (g *bearerGuard) Authenticate(header string) (service.Payload, error) {
	fields := strings.Fields(header)
	if len(fields) == 0 {
		return nil, domainerrors.ErrHeaderMissing
	}

	if fields[0] != BearerScheme {
		return nil, domainerrors.ErrHeaderMalformed.WithDetails("unsupported scheme " + fields[0])
	}
	if len(fields) < 2 {
		return nil, domainerrors.ErrHeaderMalformed.WithDetails("token is missing")
	}

	return g.tokens.Parse(strings.Join(fields[1:], ""))
}

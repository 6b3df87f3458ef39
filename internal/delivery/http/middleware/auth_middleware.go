package middleware

import (
	deliverycontext "identity/internal/delivery/context"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// AuthMiddleware authenticates requests carrying a Bearer access token.
type AuthMiddleware struct {
	guard    service.BearerGuard
	recorder service.AuthRecorder
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(guard service.BearerGuard, recorder service.AuthRecorder) *AuthMiddleware {
	return &AuthMiddleware{guard: guard, recorder: recorder}
}

// Authenticate validates the Authorization header and stores the account ID
// and payload on the echo.Context for downstream handlers.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		payload, err := m.guard.Authenticate(c.Request().Header.Get(echo.HeaderAuthorization))
		if err != nil {
			m.recorder.RecordTokenCheck(service.TokenOutcomeRejected)

			return errors.WithStack(err)
		}

		accountID, err := payload.AccountID()
		if err != nil {
			m.recorder.RecordTokenCheck(service.TokenOutcomeRejected)

			return domainerrors.ErrTokenMalformed.WithDetails(err.Error())
		}

		m.recorder.RecordTokenCheck(service.TokenOutcomeValid)

		deliverycontext.SetAccountID(c, accountID)
		deliverycontext.SetTokenPayload(c, payload)

		return next(c)
	}
}

package handler

import (
	"net/http"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/delivery/http/response"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/domain/service"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ProfileResponse is the public view of an account.
type ProfileResponse struct {
	ID    int64   `json:"id"`
	Login *string `json:"login"`
	Email *string `json:"email"`
}

// ProfileHandler serves the authenticated account's profile.
type ProfileHandler struct {
	uc       usecase.ProfileUsecase
	recorder service.AuthRecorder
}

// NewProfileHandler is the constructor for ProfileHandler, injected by Fx.
func NewProfileHandler(uc usecase.ProfileUsecase, recorder service.AuthRecorder) *ProfileHandler {
	return &ProfileHandler{uc: uc, recorder: recorder}
}

// GetProfile returns the account behind the verified bearer token.
// Must run behind AuthMiddleware.Authenticate.
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	accountID, ok := deliverycontext.GetAccountID(c)
	if !ok {
		return domainerrors.ErrHeaderMissing
	}

	account, err := h.uc.GetProfile(c.Request().Context(), accountID)
	if err != nil {
		if errors.Is(err, domainerrors.ErrAccountNotFound) {
			h.recorder.RecordTokenCheck(service.TokenOutcomeAccountGone)
		}

		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, ProfileResponse{
		ID:    account.ID,
		Login: account.Login,
		Email: account.Email,
	}, "")
}

// Package handler contains the HTTP handlers for the application.
package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"identity/internal/delivery/http/response"
	"identity/internal/delivery/http/validator"
	"identity/internal/domain/entity"
	domainerrors "identity/internal/domain/errors"
	"identity/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// RegisterRequest is the body of POST /register/.
type RegisterRequest struct {
	Password string `json:"password" validate:"required,password"`
	Email    string `json:"email" validate:"required_without=Login,omitempty,email,max=254"`
	Login    string `json:"login" validate:"omitempty,max=255"`
}

// normalize trims identifiers so validation sees the values that get stored.
func (r *RegisterRequest) normalize() {
	r.Email = strings.TrimSpace(r.Email)
	r.Login = strings.TrimSpace(r.Login)
}

// TokenResponse is returned for both found and created accounts.
type TokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// AuthHandler serves the find-or-create registration endpoint.
type AuthHandler struct {
	uc usecase.AuthUsecase
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Register authenticates an existing account or creates a new one and
// answers 201 when an account was created, 200 otherwise.
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return bindError(err)
	}

	req.normalize()
	if err := c.Validate(&req); err != nil {
		return domainerrors.ErrInvalidCredentialsShape.WithDetails(validator.Describe(err))
	}

	output, err := h.uc.Authenticate(c.Request().Context(), &usecase.AuthenticateInput{
		Credentials: entity.NewCredentials(req.Password, req.Email, req.Login),
	})
	if err != nil {
		return errors.WithStack(err)
	}

	status := http.StatusOK
	message := "Account authenticated"
	if output.Created {
		status = http.StatusCreated
		message = "Account registered"
	}

	return response.Success(c, status, TokenResponse{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt.UTC(),
	}, message)
}

// bindError separates bodies that are not JSON from JSON of the wrong shape,
// such as a top-level array or a non-string field.
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		details := "unexpected JSON " + typeErr.Value
		if typeErr.Field != "" {
			details += " for field " + typeErr.Field
		}

		return domainerrors.ErrInvalidCredentialsShape.WithDetails(details)
	}

	return domainerrors.ErrInvalidRequestBody.WithDetails(err.Error())
}

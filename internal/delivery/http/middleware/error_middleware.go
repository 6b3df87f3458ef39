package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	deliverycontext "identity/internal/delivery/context"
	"identity/internal/delivery/http/response"
	domainerrors "identity/internal/domain/errors"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// ErrorMiddleware error handling middleware
type ErrorMiddleware struct {
	logger *slog.Logger
}

// NewErrorMiddleware creates a new error handling middleware
func NewErrorMiddleware(logger *slog.Logger) *ErrorMiddleware {
	return &ErrorMiddleware{
		logger: logger,
	}
}

// HandleHTTPError handles errors as Echo's HTTPErrorHandler
func (m *ErrorMiddleware) HandleHTTPError(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	logger := deliverycontext.GetLoggerOrDefault(c.Request().Context(), m.logger)

	// Try to parse as AppError
	var appErr domainerrors.AppError
	if errors.As(err, &appErr) {
		if appErr.HTTPCode() >= http.StatusInternalServerError {
			logger.Error("Request failed",
				slog.String("code", appErr.ErrorCode()),
				slog.Any("error", err),
				slog.String("path", c.Request().URL.Path),
			)
		}

		m.write(c, logger, appErr.HTTPCode(), appErr.Message(), appErr.ErrorCode(), appErr.Details())

		return
	}

	// Check if it's Echo's HTTPError
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		message := http.StatusText(httpErr.Code)
		if msg, ok := httpErr.Message.(string); ok {
			message = msg
		} else if httpErr.Message != nil {
			message = fmt.Sprint(httpErr.Message)
		}

		m.write(c, logger, httpErr.Code, message, "HTTP_ERROR", message)

		return
	}

	// Default to internal error, log error and return generic error
	logger.Error("Unhandled error",
		slog.Any("error", err),
		slog.String("path", c.Request().URL.Path),
		slog.String("method", c.Request().Method),
	)

	internal := domainerrors.ErrInternalError
	m.write(c, logger, internal.HTTPCode(), internal.Message(), internal.ErrorCode(), "")
}

func (m *ErrorMiddleware) write(c echo.Context, logger *slog.Logger, status int, message, code, details string) {
	var err error
	if c.Request().Method == http.MethodHead {
		err = c.NoContent(status)
	} else {
		err = c.JSON(status, response.Response{
			Success: false,
			Code:    status,
			Message: message,
			Error: &response.ErrorInfo{
				Code:    code,
				Details: details,
			},
		})
	}

	if err != nil {
		logger.Error("Failed to write error response", slog.Any("error", err))
	}
}

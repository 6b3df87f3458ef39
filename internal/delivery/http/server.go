package http

import (
	"context"
	"log/slog"
	"net"
	nethttp "net/http"
	"strconv"

	"identity/config"
	"identity/internal/delivery"
	"identity/internal/delivery/http/middleware"
	"identity/internal/delivery/http/router"
	"identity/internal/delivery/http/validator"
	"identity/internal/domain/lifecycle"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type HTTPParams struct {
	fx.In
	fx.Lifecycle

	Config       *config.Config
	Logger       *slog.Logger
	RouterParams router.RouterParams

	RequestID *middleware.RequestIDMiddleware
	Logging   *middleware.LoggerMiddleware
	Errors    *middleware.ErrorMiddleware
}

type httpServer struct {
	cfg    *config.Config
	logger *slog.Logger
	server *echo.Echo
}

func NewServer(params HTTPParams) (delivery.Delivery, error) {
	echoServer := NewEcho(params.Config, params.RequestID, params.Logging, params.Errors)

	router := router.NewRouter(params.RouterParams)
	router.RegisterRoutes(echoServer)

	delivery := &httpServer{
		cfg:    params.Config,
		logger: params.Logger,
		server: echoServer,
	}

	params.Append(fx.Hook{
		OnStop: delivery.stop,
	})

	return delivery, nil
}

// NewEcho builds the echo instance with the middleware chain, validator and
// error handler but without routes.
func NewEcho(
	cfg *config.Config,
	requestID *middleware.RequestIDMiddleware,
	logging *middleware.LoggerMiddleware,
	errs *middleware.ErrorMiddleware,
) *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.HTTPErrorHandler = errs.HandleHTTPError
	echoServer.Validator = validator.New(cfg.Auth.MinPasswordLength)

	echoServer.Use(requestID.Process)
	echoServer.Use(logging.Handle)
	echoServer.Use(echomiddleware.Recover())
	echoServer.Use(echomiddleware.BodyLimit(cfg.HTTP.MaxRequestBodySize))

	return echoServer
}

func (s *httpServer) Serve(ctx context.Context) error {
	hostPort := net.JoinHostPort("0.0.0.0", strconv.Itoa(s.cfg.HTTP.Port))
	s.logger.Info("Starting HTTP server", slog.String("hostPort", hostPort))

	timeouts := s.cfg.HTTP.Timeouts
	srv := &nethttp.Server{
		Addr:              hostPort,
		ReadTimeout:       timeouts.ReadTimeout,
		ReadHeaderTimeout: timeouts.ReadHeaderTimeout,
		WriteTimeout:      timeouts.WriteTimeout,
		IdleTimeout:       timeouts.IdleTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	if err := s.server.StartServer(srv); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		return errors.Wrap(err, "failed to serve http")
	}

	return nil
}

func (s *httpServer) stop(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, lifecycle.DefaultTimeout)
	defer cancel()

	s.logger.Info("Shutting down HTTP server")

	return errors.WithStack(s.server.Shutdown(shutdownCtx))
}

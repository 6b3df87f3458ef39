// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"net/http"

	"identity/internal/delivery/http/middleware"
	"identity/internal/delivery/http/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler    *handler.AuthHandler
	ProfileHandler *handler.ProfileHandler
	AuthMiddleware *middleware.AuthMiddleware
	MetricsHandler http.Handler `name:"metricsHandler"`
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler    *handler.AuthHandler
	profileHandler *handler.ProfileHandler
	authMiddleware *middleware.AuthMiddleware
	metricsHandler http.Handler
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:    params.AuthHandler,
		profileHandler: params.ProfileHandler,
		authMiddleware: params.AuthMiddleware,
		metricsHandler: params.MetricsHandler,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	if r.metricsHandler != nil {
		e.GET("/metrics", echo.WrapHandler(r.metricsHandler))
	}

	e.POST("/register/", r.authHandler.Register)
	e.GET("/profile/", r.profileHandler.GetProfile, r.authMiddleware.Authenticate)
}

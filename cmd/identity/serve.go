package main

import (
	"context"
	"log/slog"
	nethttp "net/http"
	"os"

	"identity/config"
	"identity/internal/delivery"
	"identity/internal/delivery/http"
	"identity/internal/delivery/http/middleware"
	"identity/internal/delivery/http/router/handler"
	"identity/internal/infra/auth"
	logs "identity/internal/infra/log"
	"identity/internal/infra/metrics"
	"identity/internal/infra/persistence"
	"identity/internal/infra/pubsub"
	"identity/internal/usecase/impl"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

// NewServeCmd creates the serve subcommand.
func NewServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		RunE: func(_ *cobra.Command, _ []string) error {
			fx.New(appOptions()).Run()

			return nil
		},
	}
}

func appOptions() fx.Option {
	return fx.Options(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	)
}

func injectInfra() fx.Option {
	return fx.Options(
		fx.Provide(
			config.New,
			logs.New,
			context.Background,
			metrics.New,
			fx.Annotate(
				metricsHandler,
				fx.ResultTags(`name:"metricsHandler"`),
			),
		),
		pubsub.Module,
	)
}

func metricsHandler(m *metrics.Metrics) nethttp.Handler {
	return m.Handler()
}

func injectRepo() fx.Option {
	return fx.Options(
		fx.Provide(
			persistence.New,
		),
	)
}

func injectService() fx.Option {
	return fx.Options(
		fx.Provide(
			auth.NewPasswordHasher,
			auth.NewJWTService,
			auth.NewBearerGuard,
			metrics.NewRecorder,
		),
	)
}

func injectUsecase() fx.Option {
	return fx.Options(
		fx.Provide(
			impl.NewAuthService,
			impl.NewProfileService,
		),
	)
}

func injectMiddleware() fx.Option {
	return fx.Options(
		fx.Provide(
			middleware.NewAuthMiddleware,
			middleware.NewErrorMiddleware,
			middleware.NewLoggerMiddleware,
			middleware.NewRequestIDMiddleware,
		),
	)
}

func injectHandler() fx.Option {
	return fx.Options(
		fx.Provide(
			handler.NewAuthHandler,
			handler.NewProfileHandler,
		),
	)
}

func injectDelivery() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				http.NewServer,
				fx.ResultTags(`group:"deliveries"`),
			),
		),
	)
}

// startServer serves every delivery once the other start hooks (database
// ping and migrations) have completed.
func startServer(ctx context.Context, params startServerParams) {
	params.Append(fx.Hook{
		OnStart: func(context.Context) error {
			for _, delivery := range params.Deliveries {
				go func() {
					if err := delivery.Serve(ctx); err != nil {
						slog.Error("Failed to start server", slog.Any("error", err))
						os.Exit(1)
					}
				}()
			}

			return nil
		},
	})
}

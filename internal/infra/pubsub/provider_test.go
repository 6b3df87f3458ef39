package pubsub

import (
	"context"
	"log/slog"
	"testing"

	"identity/config"
	"identity/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newParams(t *testing.T, cfg *config.PubSubConfig) PublisherParams {
	t.Helper()

	return PublisherParams{
		Lc:     fxtest.NewLifecycle(t),
		Ctx:    context.Background(),
		Config: &config.Config{PubSub: cfg},
		Logger: slog.Default(),
	}
}

func TestNewEventPublisher(t *testing.T) {
	t.Run("unset provider is noop", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(t, nil))
		require.NoError(t, err)
		assert.IsType(t, &noopPublisher{}, publisher)
		assert.NoError(t, publisher.PublishAccountRegistered(context.Background(), &service.AccountRegisteredEvent{AccountID: 1}))
	})

	t.Run("local provider", func(t *testing.T) {
		publisher, err := NewEventPublisher(newParams(t, &config.PubSubConfig{
			Provider:      config.PubSubProviderLocal,
			LocalEndpoint: "http://localhost:8090/push",
		}))
		require.NoError(t, err)
		assert.IsType(t, &localHTTPPublisher{}, publisher)
	})

	tests := map[string]*config.PubSubConfig{
		"local without endpoint": {Provider: config.PubSubProviderLocal},
		"google without project": {Provider: config.PubSubProviderGoogle, TopicID: "accounts"},
		"google without topic":   {Provider: config.PubSubProviderGoogle, ProjectID: "proj"},
		"unknown provider":       {Provider: "kafka"},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewEventPublisher(newParams(t, cfg))
			assert.Error(t, err)
		})
	}
}

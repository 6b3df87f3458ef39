package impl

import (
	"io"
	"log/slog"
	"time"

	"identity/config"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestConfig(activate bool) *config.Config {
	return &config.Config{
		SecretKey: config.SecretKeyConfig{Access: "test_access_secret_key_very_long_for_testing"},
		Auth: &config.AuthConfig{
			AccessTTL:          time.Hour,
			PasswordScheme:     config.PasswordSchemeSHA256,
			MinPasswordLength:  10,
			ActivateOnRegister: &activate,
			StoreTimeout:       time.Second,
			ConflictRetries:    2,
		},
	}
}

func strPtr(s string) *string { return &s }

// discardRecorder drops authentication telemetry.
type discardRecorder struct{}

func (discardRecorder) RecordAuthentication(string, time.Duration) {}

func (discardRecorder) RecordTokenCheck(string) {}

package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"identity/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_JSONWithServiceAttrs(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "identity"
	cfg.Env.Env = "test"
	cfg.Env.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := newLogger(&buf, cfg)
	require.NoError(t, err)

	logger.Info("dropped")
	logger.Warn("kept", slog.Int("n", 1))

	var record map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &record))
	assert.Equal(t, "kept", record["msg"])
	assert.Equal(t, "identity", record["service"])
	assert.Equal(t, "test", record["env"])
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"":      slog.LevelInfo,
		"Warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for input, want := range tests {
		got, err := parseLogLevel(input)
		require.NoError(t, err, input)
		assert.Equal(t, want, got, input)
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

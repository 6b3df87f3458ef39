package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	cfg := &Config{}
	cfg.SecretKey.Access = "0123456789abcdef0123456789abcdef"
	cfg.Database.Driver = "memory"
	cfg.ApplyDefaults()

	return cfg
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, 5*time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, PasswordSchemeArgon2id, cfg.Auth.PasswordScheme)
	assert.Equal(t, 10, cfg.Auth.MinPasswordLength)
	assert.Equal(t, 5*time.Second, cfg.Auth.StoreTimeout)
	assert.Equal(t, uint64(3), cfg.Auth.ConflictRetries)
	assert.True(t, cfg.Auth.ActivatesOnRegister())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "short secret",
			mutate:  func(c *Config) { c.SecretKey.Access = "short" },
			wantErr: "secretKey.access",
		},
		{
			name:    "postgres without section",
			mutate:  func(c *Config) { c.Database.Driver = "postgres" },
			wantErr: "postgres section is required",
		},
		{
			name:    "unknown driver",
			mutate:  func(c *Config) { c.Database.Driver = "mongo" },
			wantErr: "unknown database driver",
		},
		{
			name:    "unknown scheme",
			mutate:  func(c *Config) { c.Auth.PasswordScheme = "md5" },
			wantErr: "unknown password scheme",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)

				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestActivatesOnRegister(t *testing.T) {
	disabled := false
	assert.False(t, (&AuthConfig{ActivateOnRegister: &disabled}).ActivatesOnRegister())

	var nilCfg *AuthConfig
	assert.True(t, nilCfg.ActivatesOnRegister())
}

func TestLoadWithEnv_OverridesFromEnvironment(t *testing.T) {
	dir := t.TempDir()
	content := []byte(`
env:
  serviceName: identity
secretKey:
  access: from-file
auth:
  accessTTL: 1h
  passwordScheme: sha256
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "identity-test.yaml"), content, 0o600))

	t.Chdir(dir)
	t.Setenv("SECRETKEY_ACCESS", "from-env-0123456789abcdef0123456789")

	cfg, err := LoadWithEnv[Config]("identity-test")
	require.NoError(t, err)

	assert.Equal(t, "identity", cfg.Env.ServiceName)
	assert.Equal(t, "from-env-0123456789abcdef0123456789", cfg.SecretKey.Access)
	require.NotNil(t, cfg.Auth)
	assert.Equal(t, time.Hour, cfg.Auth.AccessTTL)
	assert.Equal(t, PasswordSchemeSHA256, cfg.Auth.PasswordScheme)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("does-not-exist")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

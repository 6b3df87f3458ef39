package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/go-viper/mapstructure/v2"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/pkg/errors"
	"github.com/slighter12/go-lib/database/postgres"
)

const (
	defaultPath               = "."
	defaultMaxRequestBodySize = "100KB"

	// MinSecretKeyLength is the shortest accepted HMAC signing secret.
	MinSecretKeyLength = 32

	defaultAccessTTL         = 5 * time.Hour
	defaultMinPasswordLength = 10
	defaultStoreTimeout      = 5 * time.Second
	defaultConflictRetries   = 3
)

// Pub/Sub providers for account events.
const (
	PubSubProviderLocal  = "local"
	PubSubProviderGoogle = "google"
)

// Password hashing schemes understood by the hasher.
const (
	PasswordSchemeArgon2id = "argon2id"
	PasswordSchemeBcrypt   = "bcrypt"
	PasswordSchemeSHA256   = "sha256"
)

type Config struct {
	Env struct {
		Env         string `json:"env" yaml:"env"`
		ServiceName string `json:"serviceName" yaml:"serviceName"`
		Debug       bool   `json:"debug" yaml:"debug"`
		Log         Log    `json:"log" yaml:"log"`
	} `json:"env" yaml:"env"`

	HTTP struct {
		Port               int    `json:"port" yaml:"port"`
		MaxRequestBodySize string `json:"maxRequestBodySize" yaml:"maxRequestBodySize"`
		Timeouts           struct {
			ReadTimeout       time.Duration `json:"readTimeout" yaml:"readTimeout"`
			ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" yaml:"readHeaderTimeout"`
			WriteTimeout      time.Duration `json:"writeTimeout" yaml:"writeTimeout"`
			IdleTimeout       time.Duration `json:"idleTimeout" yaml:"idleTimeout"`
		} `json:"timeouts" yaml:"timeouts"`
	} `json:"http" yaml:"http"`

	Postgres *postgres.DBConn `json:"postgres" yaml:"postgres" mapstructure:"postgres"`

	Database DatabaseConfig `json:"database" yaml:"database"`

	SecretKey SecretKeyConfig `json:"secretKey" yaml:"secretKey"`

	Auth *AuthConfig `json:"auth" yaml:"auth"`

	// PubSub configuration for account event publishing
	PubSub *PubSubConfig `json:"pubsub" yaml:"pubsub"`
}

// SecretKeyConfig holds token signing secrets.
type SecretKeyConfig struct {
	Access string `json:"access" yaml:"access"`
}

// DatabaseConfig selects the account store backend.
type DatabaseConfig struct {
	// Driver is "postgres" (default) or "memory".
	Driver      string `json:"driver" yaml:"driver"`
	AutoMigrate bool   `json:"autoMigrate" yaml:"autoMigrate"`

	// SlowQueryThreshold marks queries logged as slow. Zero keeps the default.
	SlowQueryThreshold time.Duration `json:"slowQueryThreshold" yaml:"slowQueryThreshold"`
}

// AuthConfig defines authentication-related configuration
type AuthConfig struct {
	AccessTTL          time.Duration `json:"accessTTL" yaml:"accessTTL"`
	PasswordScheme     string        `json:"passwordScheme" yaml:"passwordScheme"`
	BcryptCost         int           `json:"bcryptCost" yaml:"bcryptCost"`
	MinPasswordLength  int           `json:"minPasswordLength" yaml:"minPasswordLength"`
	ActivateOnRegister *bool         `json:"activateOnRegister" yaml:"activateOnRegister"`
	StoreTimeout       time.Duration `json:"storeTimeout" yaml:"storeTimeout"`
	ConflictRetries    uint64        `json:"conflictRetries" yaml:"conflictRetries"`
}

// ActivatesOnRegister reports whether new accounts start active. Defaults to true.
func (a *AuthConfig) ActivatesOnRegister() bool {
	if a == nil || a.ActivateOnRegister == nil {
		return true
	}

	return *a.ActivateOnRegister
}

type Log struct {
	Pretty bool   `json:"pretty" yaml:"pretty"`
	Level  string `json:"level" yaml:"level"`
}

// PubSubConfig defines Pub/Sub configuration for event publishing
type PubSubConfig struct {
	// Provider type: "local" for local HTTP or "google" for Google Pub/Sub
	Provider string `json:"provider" yaml:"provider"`

	// Google Cloud project ID (for google provider)
	ProjectID string `json:"projectId" yaml:"projectId"`

	// Pub/Sub topic ID (for google provider)
	TopicID string `json:"topicId" yaml:"topicId"`

	// Local HTTP endpoint for development (for local provider)
	LocalEndpoint string `json:"localEndpoint" yaml:"localEndpoint"`
}

// LoadWithEnv loads .yaml files through koanf.
func LoadWithEnv[T any](currEnv string, configPath ...string) (*T, error) {
	cfg := new(T)
	koanfInstance := koanf.New(".")

	searchPaths := []string{defaultPath}
	if len(configPath) != 0 {
		pwd, err := os.Getwd()
		if err != nil {
			return nil, errors.Wrap(err, "os.Getwd")
		}
		for _, path := range configPath {
			searchPaths = append(searchPaths, filepath.Join(pwd, path))
		}
	}

	configFile, found := findConfigFile(currEnv, searchPaths)
	if !found {
		return nil, errors.Errorf("config file %s.yaml not found in any search path", currEnv)
	}

	if err := koanfInstance.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		return nil, errors.Wrapf(err, "read %s config failed", currEnv)
	}

	existingConfigMap := koanfInstance.Raw()

	// Example: SECRETKEY_ACCESS -> secretKey.access
	if err := koanfInstance.Load(env.Provider(".", env.Opt{
		TransformFunc: func(k, v string) (string, any) {
			return canonicalizeEnvKey(k, existingConfigMap), v
		},
	}), nil); err != nil {
		return nil, errors.Wrap(err, "load env variables failed")
	}

	if err := koanfInstance.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToTimeDurationHookFunc(),
			),
			MatchName: func(mapKey, fieldName string) bool {
				return strings.EqualFold(mapKey, fieldName)
			},
		},
	}); err != nil {
		return nil, errors.Wrapf(err, "unmarshal %s config failed", currEnv)
	}

	return cfg, nil
}

func findConfigFile(currEnv string, searchPaths []string) (string, bool) {
	for _, path := range searchPaths {
		candidate := filepath.Join(path, currEnv+".yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true
		}
	}

	return "", false
}

func New() (*Config, error) {
	cfg, err := LoadWithEnv[Config]("config", "config", "../config", "../../config")
	if err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()

	if cfg.Postgres != nil {
		// POSTGRES_REPLICAS_0_HOST, POSTGRES_REPLICAS_0_PORT, ...
		cfg.Postgres.Replicas = buildReplicasFromEnv()
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ApplyDefaults fills in unset values.
func (c *Config) ApplyDefaults() {
	if strings.TrimSpace(c.HTTP.MaxRequestBodySize) == "" {
		c.HTTP.MaxRequestBodySize = defaultMaxRequestBodySize
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Auth == nil {
		c.Auth = &AuthConfig{}
	}
	if c.Auth.AccessTTL == 0 {
		c.Auth.AccessTTL = defaultAccessTTL
	}
	if c.Auth.PasswordScheme == "" {
		c.Auth.PasswordScheme = PasswordSchemeArgon2id
	}
	if c.Auth.MinPasswordLength == 0 {
		c.Auth.MinPasswordLength = defaultMinPasswordLength
	}
	if c.Auth.StoreTimeout == 0 {
		c.Auth.StoreTimeout = defaultStoreTimeout
	}
	if c.Auth.ConflictRetries == 0 {
		c.Auth.ConflictRetries = defaultConflictRetries
	}
}

// Validate rejects configurations the service cannot run with.
func (c *Config) Validate() error {
	if len(c.SecretKey.Access) < MinSecretKeyLength {
		return errors.Errorf("secretKey.access must be at least %d bytes", MinSecretKeyLength)
	}

	switch c.Database.Driver {
	case "postgres":
		if c.Postgres == nil {
			return errors.New("postgres section is required for the postgres driver")
		}
	case "memory":
	default:
		return errors.Errorf("unknown database driver: %s", c.Database.Driver)
	}

	if c.Auth == nil {
		return errors.New("auth section is required")
	}

	switch c.Auth.PasswordScheme {
	case PasswordSchemeArgon2id, PasswordSchemeBcrypt, PasswordSchemeSHA256:
	default:
		return errors.Errorf("unknown password scheme: %s", c.Auth.PasswordScheme)
	}

	if c.Auth.MinPasswordLength < 1 {
		return errors.New("auth.minPasswordLength must be positive")
	}

	return nil
}

func canonicalizeEnvKey(rawKey string, existing map[string]any) string {
	segments := strings.Split(strings.ToLower(rawKey), "_")
	canonical := make([]string, 0, len(segments))
	current := existing

	for _, segment := range segments {
		if segment == "" {
			continue
		}

		if matched, next, ok := findExistingSegment(current, segment); ok {
			canonical = append(canonical, matched)
			current = next
		} else {
			canonical = append(canonical, segment)
			current = nil
		}
	}

	return strings.Join(canonical, ".")
}

func findExistingSegment(current map[string]any, segment string) (matched string, next map[string]any, ok bool) {
	if len(current) == 0 {
		return "", nil, false
	}

	needle := normalizeToken(segment)
	for key, value := range current {
		if normalizeToken(key) != needle {
			continue
		}

		child, _ := value.(map[string]any)

		return key, child, true
	}

	return "", nil, false
}

func normalizeToken(s string) string {
	var normalized strings.Builder
	normalized.Grow(len(s))

	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			continue
		}
		normalized.WriteRune(unicode.ToLower(r))
	}

	return normalized.String()
}

// buildReplicasFromEnv reads POSTGRES_REPLICAS_{index}_{HOST,PORT,USERNAME,PASSWORD}.
func buildReplicasFromEnv() []postgres.ConnectionConfig {
	var replicas []postgres.ConnectionConfig

	for i := 0; ; i++ {
		prefix := "POSTGRES_REPLICAS_" + strconv.Itoa(i) + "_"

		host := os.Getenv(prefix + "HOST")
		port := os.Getenv(prefix + "PORT")
		if host == "" || port == "" {
			break
		}

		replicas = append(replicas, postgres.ConnectionConfig{
			Host:     host,
			Port:     port,
			UserName: os.Getenv(prefix + "USERNAME"),
			Password: os.Getenv(prefix + "PASSWORD"),
		})
	}

	return replicas
}

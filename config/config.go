package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. OSU_V1_API_KEY.
const EnvPrefix = "OSU"

// DefaultPath returns the file written by Save when no path is given.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".config", "osu-api", "config.yaml")
}

// Load loads the configuration from file, the environment and the OS
// keyring, in increasing order of precedence for the file and environment.
// Secrets missing from both are looked up in the keyring.
//
// An explicit configPath must exist. Without one the standard locations are
// searched and a missing file is not an error.
func Load(configPath string) (*Config, error) {
	v, err := newViper(configPath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	fillSecrets(&cfg)

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

func newViper(configPath string) (*viper.Viper, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
		return v, nil
	}

	// Look for config in standard locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "osu-api"))
	}
	v.AddConfigPath("/etc/osu-api/")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}
	return v, nil
}

// setDefaults sets default configuration values. Every key must have a
// default for the environment override to apply to it.
func setDefaults(v *viper.Viper) {
	// API defaults
	v.SetDefault("v1.api_key", "")
	v.SetDefault("v1.base_url", "https://osu.ppy.sh/api")
	v.SetDefault("v2.client_id", "")
	v.SetDefault("v2.client_secret", "")
	v.SetDefault("v2.base_url", "https://osu.ppy.sh/api/v2")
	v.SetDefault("v2.token_url", "https://osu.ppy.sh/oauth/token")

	// HTTP defaults
	v.SetDefault("http.timeout", "30s")
	v.SetDefault("http.user_agent", "")
	v.SetDefault("http.retries", 2)

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)

	// Gateway defaults
	v.SetDefault("server.addr", ":8080")

	// Token cache defaults
	v.SetDefault("token_cache.redis_addr", "")
	v.SetDefault("token_cache.redis_password", "")
	v.SetDefault("token_cache.redis_db", 0)
	v.SetDefault("token_cache.key", "osu-api:v2:token")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	// Validate logging level
	validLevels := map[string]bool{
		"trace": true,
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	if _, err := cfg.HTTP.TimeoutDuration(); err != nil {
		return err
	}
	if cfg.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative: %d", cfg.HTTP.Retries)
	}

	if cfg.V1.BaseURL == "" {
		return fmt.Errorf("v1.base_url is required")
	}
	if cfg.V2.BaseURL == "" || cfg.V2.TokenURL == "" {
		return fmt.Errorf("v2.base_url and v2.token_url are required")
	}

	if cfg.TokenCache.Enabled() && cfg.TokenCache.Key == "" {
		return fmt.Errorf("token_cache.key is required when token_cache.redis_addr is set")
	}

	return nil
}

// RequireV1 checks that the legacy API can be used.
func (c *Config) RequireV1() error {
	if c.V1.APIKey == "" {
		return fmt.Errorf("v1.api_key is required (set %s_V1_API_KEY, run 'osu-api config set-secret %s' or add it to %s)",
			EnvPrefix, KeyV1APIKey, DefaultPath())
	}
	return nil
}

// RequireV2 checks that a modern API token can be minted.
func (c *Config) RequireV2() error {
	if c.V2.ClientID == "" || c.V2.ClientSecret == "" {
		return fmt.Errorf("v2.client_id and v2.client_secret are required (set %s_V2_CLIENT_ID and %s_V2_CLIENT_SECRET or run 'osu-api config set-secret %s')",
			EnvPrefix, EnvPrefix, KeyV2ClientSecret)
	}
	return nil
}

// fillSecrets looks up empty secrets in the OS keyring. An unavailable
// keyring leaves them empty.
func fillSecrets(cfg *Config) {
	for key, field := range map[string]*string{
		KeyV1APIKey:       &cfg.V1.APIKey,
		KeyV2ClientSecret: &cfg.V2.ClientSecret,
	} {
		if *field != "" {
			continue
		}
		if secret, err := keyringGet(key); err == nil && secret != "" {
			*field = secret
		}
	}
}

// Keys lists every configuration key in dotted form.
func Keys() []string {
	v := viper.New()
	setDefaults(v)
	keys := v.AllKeys()
	slices.Sort(keys)
	return keys
}

// Get returns the effective value of key, after file, environment and
// keyring are applied.
func Get(path, key string) (string, error) {
	if !slices.Contains(Keys(), key) {
		return "", fmt.Errorf("unknown config key: %s", key)
	}
	v, err := newViper(path)
	if err != nil {
		return "", err
	}
	value := v.GetString(key)
	if value == "" && IsSecretKey(key) {
		if secret, err := keyringGet(key); err == nil {
			value = secret
		}
	}
	return value, nil
}

// Set writes key=value into the file at path, creating it if needed.
// Environment overrides are not persisted.
func Set(path, key, value string) error {
	if !slices.Contains(Keys(), key) {
		return fmt.Errorf("unknown config key: %s (valid keys: %s)", key, strings.Join(Keys(), ", "))
	}
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	setDefaults(v)
	v.SetConfigType("yaml")
	if _, err := os.Stat(path); err == nil {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("error reading config: %w", err)
		}
	}
	v.Set(key, value)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return fmt.Errorf("invalid value for %s: %w", key, err)
	}
	if err := validate(&cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return Save(path, &cfg)
}

// SecretSource tells where SetSecret stored a secret.
type SecretSource string

const (
	SecretSourceKeyring SecretSource = "keyring"
	SecretSourceFile    SecretSource = "file"
)

// SetSecret stores a secret in the OS keyring, falling back to the config
// file when no keyring is available.
func SetSecret(path, key, value string) (SecretSource, error) {
	if !IsSecretKey(key) {
		return "", fmt.Errorf("%s is not a secret (secrets: %s, %s)", key, KeyV1APIKey, KeyV2ClientSecret)
	}
	if err := keyringSet(key, value); err == nil {
		// Drop any plain-text copy so the keyring value is the one in use.
		if err := clearFileSecret(path, key); err != nil {
			return SecretSourceKeyring, err
		}
		return SecretSourceKeyring, nil
	}
	if err := Set(path, key, value); err != nil {
		return "", err
	}
	return SecretSourceFile, nil
}

// DeleteSecret removes a secret from the OS keyring.
func DeleteSecret(key string) error {
	if !IsSecretKey(key) {
		return fmt.Errorf("%s is not a secret", key)
	}
	return keyringDelete(key)
}

func clearFileSecret(path, key string) error {
	if path == "" {
		path = DefaultPath()
	}
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	return Set(path, key, "")
}

// Save writes cfg as YAML, with owner-only permissions.
func Save(path string, cfg *Config) error {
	if path == "" {
		path = DefaultPath()
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encoding config: %w", err)
	}
	return os.WriteFile(path, data, 0o600)
}

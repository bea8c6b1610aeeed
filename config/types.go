package config

import (
	"fmt"
	"time"
)

// Config represents the complete configuration structure
type Config struct {
	V1         V1Config         `mapstructure:"v1" yaml:"v1"`
	V2         V2Config         `mapstructure:"v2" yaml:"v2"`
	HTTP       HTTPConfig       `mapstructure:"http" yaml:"http"`
	Logging    LoggingConfig    `mapstructure:"logging" yaml:"logging"`
	Server     ServerConfig     `mapstructure:"server" yaml:"server"`
	TokenCache TokenCacheConfig `mapstructure:"token_cache" yaml:"token_cache"`
}

// V1Config holds legacy API connection details
type V1Config struct {
	APIKey  string `mapstructure:"api_key" yaml:"api_key,omitempty"`
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// V2Config holds the OAuth application used for the modern API
type V2Config struct {
	ClientID     string `mapstructure:"client_id" yaml:"client_id,omitempty"`
	ClientSecret string `mapstructure:"client_secret" yaml:"client_secret,omitempty"`
	BaseURL      string `mapstructure:"base_url" yaml:"base_url"`
	TokenURL     string `mapstructure:"token_url" yaml:"token_url"`
}

// HTTPConfig contains settings shared by both API clients
type HTTPConfig struct {
	// Timeout bounds a whole request, e.g. "30s". Zero disables it.
	Timeout   string `mapstructure:"timeout" yaml:"timeout"`
	UserAgent string `mapstructure:"user_agent" yaml:"user_agent"`
	// Retries is how often the CLI and gateway retry a request that failed
	// with a connection error, 429 or 5xx.
	Retries int `mapstructure:"retries" yaml:"retries"`
}

// TimeoutDuration parses Timeout.
func (h HTTPConfig) TimeoutDuration() (time.Duration, error) {
	if h.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(h.Timeout)
	if err != nil {
		return 0, fmt.Errorf("invalid http.timeout %q: %w", h.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("http.timeout must not be negative: %s", h.Timeout)
	}
	return d, nil
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
	Color  bool   `mapstructure:"color" yaml:"color"`
}

// ServerConfig contains settings for the HTTP gateway
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// TokenCacheConfig points at the Redis instance that keeps minted v2
// tokens. An empty RedisAddr disables the cache.
type TokenCacheConfig struct {
	RedisAddr     string `mapstructure:"redis_addr" yaml:"redis_addr,omitempty"`
	RedisPassword string `mapstructure:"redis_password" yaml:"redis_password,omitempty"`
	RedisDB       int    `mapstructure:"redis_db" yaml:"redis_db"`
	Key           string `mapstructure:"key" yaml:"key"`
}

// Enabled reports whether a Redis address is configured.
func (t TokenCacheConfig) Enabled() bool {
	return t.RedisAddr != ""
}

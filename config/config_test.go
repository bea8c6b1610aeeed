package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
)

func TestMain(m *testing.M) {
	keyring.MockInit()
	os.Exit(m.Run())
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
v1:
  api_key: file-key
v2:
  client_id: "1234"
  client_secret: file-secret
http:
  timeout: 10s
logging:
  level: debug
  format: json
token_cache:
  redis_addr: localhost:6379
  redis_db: 2
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.V1.APIKey)
	assert.Equal(t, "https://osu.ppy.sh/api", cfg.V1.BaseURL)
	assert.Equal(t, "1234", cfg.V2.ClientID)
	assert.Equal(t, "https://osu.ppy.sh/oauth/token", cfg.V2.TokenURL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.True(t, cfg.TokenCache.Enabled())
	assert.Equal(t, 2, cfg.TokenCache.RedisDB)
	assert.Equal(t, "osu-api:v2:token", cfg.TokenCache.Key)
	assert.Equal(t, 2, cfg.HTTP.Retries)

	timeout, err := cfg.HTTP.TimeoutDuration()
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, timeout)

	assert.NoError(t, cfg.RequireV1())
	assert.NoError(t, cfg.RequireV2())
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "v1:\n  api_key: file-key\n")
	t.Setenv("OSU_V1_API_KEY", "env-key")
	t.Setenv("OSU_LOGGING_LEVEL", "warn")
	t.Setenv("OSU_TOKEN_CACHE_REDIS_ADDR", "redis:6379")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.V1.APIKey)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "redis:6379", cfg.TokenCache.RedisAddr)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoadSecretsFromKeyring(t *testing.T) {
	require.NoError(t, keyringSet(KeyV2ClientSecret, "keyring-secret"))
	t.Cleanup(func() { _ = keyringDelete(KeyV2ClientSecret) })

	path := writeConfig(t, "v2:\n  client_id: \"1234\"\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "keyring-secret", cfg.V2.ClientSecret)
	assert.Error(t, cfg.RequireV1())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			V1:      V1Config{BaseURL: "https://osu.ppy.sh/api"},
			V2:      V2Config{BaseURL: "https://osu.ppy.sh/api/v2", TokenURL: "https://osu.ppy.sh/oauth/token"},
			HTTP:    HTTPConfig{Timeout: "30s"},
			Logging: LoggingConfig{Level: "info", Format: "console"},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{name: "bad level", mutate: func(c *Config) { c.Logging.Level = "loud" }, wantErr: "invalid logging level"},
		{name: "bad format", mutate: func(c *Config) { c.Logging.Format = "xml" }, wantErr: "invalid logging format"},
		{name: "bad timeout", mutate: func(c *Config) { c.HTTP.Timeout = "soon" }, wantErr: "invalid http.timeout"},
		{name: "negative timeout", mutate: func(c *Config) { c.HTTP.Timeout = "-1s" }, wantErr: "must not be negative"},
		{name: "no timeout", mutate: func(c *Config) { c.HTTP.Timeout = "" }},
		{name: "negative retries", mutate: func(c *Config) { c.HTTP.Retries = -1 }, wantErr: "http.retries"},
		{name: "missing base url", mutate: func(c *Config) { c.V1.BaseURL = "" }, wantErr: "v1.base_url"},
		{
			name:    "cache without key",
			mutate:  func(c *Config) { c.TokenCache = TokenCacheConfig{RedisAddr: "localhost:6379"} },
			wantErr: "token_cache.key",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, Set(path, "v2.client_id", "1234"))
	require.NoError(t, Set(path, "token_cache.redis_db", "3"))
	require.NoError(t, Set(path, "logging.color", "false"))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "1234", cfg.V2.ClientID)
	assert.Equal(t, 3, cfg.TokenCache.RedisDB)
	assert.False(t, cfg.Logging.Color)

	value, err := Get(path, "v2.client_id")
	require.NoError(t, err)
	assert.Equal(t, "1234", value)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSetRejects(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	err := Set(path, "v3.anything", "x")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown config key")

	err = Set(path, "logging.level", "loud")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid logging level")

	_, err = Get(path, "nope")
	assert.Error(t, err)
}

func TestSetSecret(t *testing.T) {
	path := writeConfig(t, "v1:\n  api_key: plain-text-key\n")
	t.Cleanup(func() { _ = keyringDelete(KeyV1APIKey) })

	source, err := SetSecret(path, KeyV1APIKey, "kept-in-keyring")
	require.NoError(t, err)
	assert.Equal(t, SecretSourceKeyring, source)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "plain-text-key")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "kept-in-keyring", cfg.V1.APIKey)

	_, err = SetSecret(path, "v2.client_id", "x")
	assert.Error(t, err)
}

func TestSaveOmitsEmptySecrets(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, Save(path, &Config{V2: V2Config{ClientID: "1234"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "api_key")
	assert.NotContains(t, string(data), "client_secret")
	assert.Contains(t, string(data), "client_id: \"1234\"")
}

func TestKeys(t *testing.T) {
	keys := Keys()
	assert.Contains(t, keys, "v1.api_key")
	assert.Contains(t, keys, "token_cache.redis_addr")
	assert.True(t, IsSecretKey("v2.client_secret"))
	assert.False(t, IsSecretKey("v2.client_id"))
}

package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HACKCTL_API_URL", "HACKCTL_HTTP_TIMEOUT", "HACKCTL_RATE_LIMIT",
		"HACKCTL_SESSION_FILE", "HACKCTL_TIMEZONE", "LOG_LEVEL", "LOG_FORMAT",
		"TRACING_ENABLED", "TRACING_EXPORTER", "TRACING_OTLP_ENDPOINT", "TRACING_SAMPLE_RATE",
		"MOCKAPI_HOST", "MOCKAPI_PORT", "MOCKAPI_JWT_SECRET", "MOCKAPI_JWT_EXPIRY_HOURS",
		"MOCKAPI_ADMIN_EMAIL", "MOCKAPI_ADMIN_PASSWORD", "ENVIRONMENT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Zero(t, cfg.API.Timeout)
	assert.Zero(t, cfg.API.RateLimit)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8000, cfg.MockAPI.Port)
	assert.Equal(t, "session.yaml", filepath.Base(cfg.Session.File))
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)

	path := filepath.Join(dir, "hackctl.yaml")
	content := []byte(`api:
  base_url: https://file.example
  timeout: 15s
  rate_limit: 2
display:
  timezone: Europe/Moscow
logging:
  level: debug
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))

	t.Setenv("HACKCTL_API_URL", "https://env.example")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.API.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.API.Timeout)
	assert.InDelta(t, 2.0, cfg.API.RateLimit, 0.0001)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "Europe/Moscow", cfg.Location().String())
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Chdir(dir)
	// godotenv never overrides variables that are already set, even to "".
	require.NoError(t, os.Unsetenv("HACKCTL_API_URL"))
	require.NoError(t, os.Unsetenv("MOCKAPI_PORT"))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("HACKCTL_API_URL=https://dotenv.example\nMOCKAPI_PORT=9100\n"), 0o600))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://dotenv.example", cfg.API.BaseURL)
	assert.Equal(t, 9100, cfg.MockAPI.Port)
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	t.Chdir(t.TempDir())

	_, err := Load("does-not-exist.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{name: "empty base url", mutate: func(c *Config) { c.API.BaseURL = " " }, wantErr: "HACKCTL_API_URL"},
		{name: "base url without scheme", mutate: func(c *Config) { c.API.BaseURL = "localhost:8000" }, wantErr: "HACKCTL_API_URL"},
		{name: "base url with query", mutate: func(c *Config) { c.API.BaseURL = "http://localhost:8000?x=1" }, wantErr: "query parameters"},
		{name: "negative rate", mutate: func(c *Config) { c.API.RateLimit = -1 }, wantErr: "HACKCTL_RATE_LIMIT"},
		{name: "unknown timezone", mutate: func(c *Config) { c.Display.Timezone = "Mars/Olympus" }, wantErr: "HACKCTL_TIMEZONE"},
		{name: "sample rate", mutate: func(c *Config) { c.Tracing.SampleRate = 1.5 }, wantErr: "TRACING_SAMPLE_RATE"},
		{name: "port", mutate: func(c *Config) { c.MockAPI.Port = 0 }, wantErr: "MOCKAPI_PORT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
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

func TestNewLogger_Level(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "warn", Format: "json"}, &buf)

	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.Equal(t, zerolog.WarnLevel, logger.GetLevel())
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestNewLogger_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(LoggingConfig{Level: "loud"}, &buf)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}

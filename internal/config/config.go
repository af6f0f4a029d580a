package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/itamhack/hackctl/internal/validation"
)

type Config struct {
	API         APIConfig     `yaml:"api"`
	Session     SessionConfig `yaml:"session"`
	Display     DisplayConfig `yaml:"display"`
	Logging     LoggingConfig `yaml:"logging"`
	Tracing     TracingConfig `yaml:"tracing"`
	MockAPI     MockAPIConfig `yaml:"mockapi"`
	Environment string        `yaml:"environment"`
}

type APIConfig struct {
	BaseURL string `yaml:"base_url"`
	// Timeout of zero leaves requests bounded only by the caller's context.
	Timeout time.Duration `yaml:"timeout"`
	// RateLimit in requests per second; zero disables limiting.
	RateLimit float64 `yaml:"rate_limit"`
}

type SessionConfig struct {
	File string `yaml:"file"`
}

type DisplayConfig struct {
	Timezone string `yaml:"timezone"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type TracingConfig struct {
	Enabled      bool    `yaml:"enabled"`
	Exporter     string  `yaml:"exporter"`
	ServiceName  string  `yaml:"service_name"`
	OTLPEndpoint string  `yaml:"otlp_endpoint"`
	SampleRate   float64 `yaml:"sample_rate"`
}

type MockAPIConfig struct {
	Host          string        `yaml:"host"`
	Port          int           `yaml:"port"`
	JWTSecret     string        `yaml:"jwt_secret"`
	JWTExpiry     time.Duration `yaml:"jwt_expiry"`
	AdminEmail    string        `yaml:"admin_email"`
	AdminPassword string        `yaml:"admin_password"`
}

// Defaults returns the configuration used when neither a file nor the
// environment says otherwise.
func Defaults() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8000",
		},
		Session: SessionConfig{
			File: defaultSessionFile(),
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
		Tracing: TracingConfig{
			Exporter:    "stdout",
			ServiceName: "hackctl",
			SampleRate:  1.0,
		},
		MockAPI: MockAPIConfig{
			Host:          "127.0.0.1",
			Port:          8000,
			JWTSecret:     "hackctl-mockapi-development-secret",
			JWTExpiry:     24 * time.Hour,
			AdminEmail:    "admin@hack.local",
			AdminPassword: "admin12345",
		},
		Environment: "development",
	}
}

// Load builds the configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Defaults()
	if path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field at once.
func (c Config) Validate() error {
	var errs []string
	if err := validation.ValidateAPIBaseURL(c.API.BaseURL); err != nil {
		errs = append(errs, "HACKCTL_API_URL: "+err.Error())
	}
	if c.API.Timeout < 0 {
		errs = append(errs, "HACKCTL_HTTP_TIMEOUT must not be negative")
	}
	if c.API.RateLimit < 0 {
		errs = append(errs, "HACKCTL_RATE_LIMIT must not be negative")
	}
	if c.Display.Timezone != "" {
		if _, err := time.LoadLocation(c.Display.Timezone); err != nil {
			errs = append(errs, fmt.Sprintf("HACKCTL_TIMEZONE: unknown location %q", c.Display.Timezone))
		}
	}
	if c.Tracing.SampleRate < 0 || c.Tracing.SampleRate > 1 {
		errs = append(errs, "TRACING_SAMPLE_RATE must be between 0.0 and 1.0")
	}
	if c.MockAPI.Port <= 0 || c.MockAPI.Port > 65535 {
		errs = append(errs, fmt.Sprintf("MOCKAPI_PORT out of range: %d", c.MockAPI.Port))
	}
	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}
	return nil
}

// Location resolves the display timezone, falling back to time.Local.
func (c Config) Location() *time.Location {
	if c.Display.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.Display.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.API.BaseURL = getEnv("HACKCTL_API_URL", cfg.API.BaseURL)
	cfg.API.Timeout = getEnvDuration("HACKCTL_HTTP_TIMEOUT", cfg.API.Timeout)
	cfg.API.RateLimit = getEnvFloat("HACKCTL_RATE_LIMIT", cfg.API.RateLimit)
	cfg.Session.File = getEnv("HACKCTL_SESSION_FILE", cfg.Session.File)
	cfg.Display.Timezone = getEnv("HACKCTL_TIMEZONE", cfg.Display.Timezone)

	cfg.Logging.Level = getEnv("LOG_LEVEL", cfg.Logging.Level)
	cfg.Logging.Format = getEnv("LOG_FORMAT", cfg.Logging.Format)

	cfg.Tracing.Enabled = getEnvBool("TRACING_ENABLED", cfg.Tracing.Enabled)
	cfg.Tracing.Exporter = getEnv("TRACING_EXPORTER", cfg.Tracing.Exporter)
	cfg.Tracing.OTLPEndpoint = getEnv("TRACING_OTLP_ENDPOINT", cfg.Tracing.OTLPEndpoint)
	cfg.Tracing.SampleRate = getEnvFloat("TRACING_SAMPLE_RATE", cfg.Tracing.SampleRate)

	cfg.MockAPI.Host = getEnv("MOCKAPI_HOST", cfg.MockAPI.Host)
	cfg.MockAPI.Port = getEnvInt("MOCKAPI_PORT", cfg.MockAPI.Port)
	cfg.MockAPI.JWTSecret = getEnv("MOCKAPI_JWT_SECRET", cfg.MockAPI.JWTSecret)
	if hours := getEnvInt("MOCKAPI_JWT_EXPIRY_HOURS", 0); hours > 0 {
		cfg.MockAPI.JWTExpiry = time.Duration(hours) * time.Hour
	}
	cfg.MockAPI.AdminEmail = getEnv("MOCKAPI_ADMIN_EMAIL", cfg.MockAPI.AdminEmail)
	cfg.MockAPI.AdminPassword = getEnv("MOCKAPI_ADMIN_PASSWORD", cfg.MockAPI.AdminPassword)

	cfg.Environment = getEnv("ENVIRONMENT", cfg.Environment)
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "hackctl", "session.yaml")
	}
	return filepath.Join(dir, "hackctl", "session.yaml")
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

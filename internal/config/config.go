// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/mmynk/aquaflow/internal/models"
)

// DevJWTSecret is used when JWT_SECRET is unset and APP_ENV is "dev".
const DevJWTSecret = "aquaflow-dev-secret-change-me"

// Config holds the application's configuration.
type Config struct {
	Env       string
	Port      int
	DBPath    string
	LogLevel  string
	LogFormat string

	JWTSecret string
	TokenTTL  time.Duration

	CORSOrigins []string

	Gemini GeminiConfig

	// Tariff is validated during Load.
	Tariff models.TariffConfig
}

// GeminiConfig configures the insight and OCR client.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
	Timeout time.Duration

	// RequestsPerSecond caps outbound calls; bursts of one are allowed.
	RequestsPerSecond float64
}

// Load reads a .env file if one exists, then the environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Warn("Failed to read .env file", "error", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv builds the configuration from a lookup function.
func FromEnv(getenv func(string) string) (Config, error) {
	e := env{getenv: getenv}

	cfg := Config{
		Env:       e.getString("APP_ENV", "dev"),
		Port:      e.getInt("PORT", 8080),
		DBPath:    e.getString("DB_PATH", "./data/aquaflow.db"),
		LogLevel:  e.getString("LOG_LEVEL", "info"),
		LogFormat: e.getString("LOG_FORMAT", "text"),

		JWTSecret: e.getString("JWT_SECRET", ""),
		TokenTTL:  e.getDuration("TOKEN_TTL", 24*time.Hour),

		CORSOrigins: strings.Split(e.getString("CORS_ORIGINS", "*"), ","),

		Gemini: GeminiConfig{
			APIKey:            e.getString("GEMINI_API_KEY", ""),
			Model:             e.getString("GEMINI_MODEL", "gemini-3-flash-preview"),
			BaseURL:           e.getString("GEMINI_BASE_URL", "https://generativelanguage.googleapis.com"),
			Timeout:           e.getDuration("INSIGHT_TIMEOUT", 15*time.Second),
			RequestsPerSecond: e.getFloat("INSIGHT_RPS", 1),
		},
		Tariff: models.DefaultTariff(),
	}

	if path := e.getString("TARIFF_FILE", ""); path != "" {
		tariff, err := LoadTariffFile(path)
		if err != nil {
			return Config{}, err
		}
		cfg.Tariff = tariff
	}
	cfg.Tariff.BaseFee = e.getFloat("TARIFF_BASE_FEE", cfg.Tariff.BaseFee)
	cfg.Tariff.Tier1Limit = e.getFloat("TARIFF_TIER1_LIMIT", cfg.Tariff.Tier1Limit)
	cfg.Tariff.Tier1Rate = e.getFloat("TARIFF_TIER1_RATE", cfg.Tariff.Tier1Rate)
	cfg.Tariff.Tier2Limit = e.getFloat("TARIFF_TIER2_LIMIT", cfg.Tariff.Tier2Limit)
	cfg.Tariff.Tier2Rate = e.getFloat("TARIFF_TIER2_RATE", cfg.Tariff.Tier2Rate)
	cfg.Tariff.Tier3Rate = e.getFloat("TARIFF_TIER3_RATE", cfg.Tariff.Tier3Rate)

	if len(e.errs) > 0 {
		return Config{}, errors.Join(e.errs...)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks settings that cannot be defaulted.
func (c *Config) Validate() error {
	if err := c.Tariff.Validate(); err != nil {
		return err
	}
	if c.JWTSecret == "" {
		if c.Env != "dev" {
			return fmt.Errorf("JWT_SECRET must be set when APP_ENV is %q", c.Env)
		}
		c.JWTSecret = DevJWTSecret
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("PORT out of range: %d", c.Port)
	}
	if c.Gemini.RequestsPerSecond <= 0 {
		return fmt.Errorf("INSIGHT_RPS must be positive, got %v", c.Gemini.RequestsPerSecond)
	}
	return nil
}

// LoadTariffFile reads a YAML tariff such as:
//
//	base_fee: 15
//	tier1_limit: 10
//	tier1_rate: 1.5
//	tier2_limit: 30
//	tier2_rate: 2.75
//	tier3_rate: 4.5
//
// Missing keys keep the default tariff's values.
func LoadTariffFile(path string) (models.TariffConfig, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return models.TariffConfig{}, fmt.Errorf("failed to read tariff file: %w", err)
	}
	tariff := models.DefaultTariff()
	if err := yaml.Unmarshal(raw, &tariff); err != nil {
		return models.TariffConfig{}, fmt.Errorf("failed to parse tariff file %s: %w", path, err)
	}
	return tariff, nil
}

// env collects parse errors so every bad variable is reported at once.
type env struct {
	getenv func(string) string
	errs   []error
}

func (e *env) getString(key, fallback string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *env) getInt(key string, fallback int) int {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return n
}

func (e *env) getFloat(key string, fallback float64) float64 {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return f
}

func (e *env) getDuration(key string, fallback time.Duration) time.Duration {
	v := e.getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.errs = append(e.errs, fmt.Errorf("%s: %w", key, err))
		return fallback
	}
	return d
}

package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Pixabay accepts per_page values in this range.
const (
	MinPageSize = 3
	MaxPageSize = 200
)

type Config struct {
	ServerPort         string        `env:"SERVER_PORT" env-default:"8080"`
	PixabayURL         string        `env:"PIXABAY_API_URL" env-default:"https://pixabay.com/api/"`
	PixabayKey         string        `env:"PIXABAY_API_KEY" env-required:"true"`
	PageSize           int           `env:"PAGE_SIZE" env-default:"40"`
	EndNoticeDelay     time.Duration `env:"END_NOTICE_DELAY" env-default:"500ms"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT" env-default:"10s"`
	SessionIdleTimeout time.Duration `env:"SESSION_IDLE_TIMEOUT" env-default:"30m"`
	Language           string        `env:"LANGUAGE" env-default:"en"`
	KafkaBrokers       []string      `env:"KAFKA_BROKERS" env-separator:","`
	KafkaTopic         string        `env:"KAFKA_TOPIC" env-default:"gallery_search_events"`
	TracingEnabled     bool          `env:"TRACING_ENABLED" env-default:"false"`
	LogLevel           string        `env:"LOG_LEVEL" env-default:"info"`
}

func Load() (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read configuration from environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Info("Configuration loaded",
		"port", cfg.ServerPort,
		"pixabay_url", cfg.PixabayURL,
		"page_size", cfg.PageSize,
		"kafka_enabled", cfg.KafkaEnabled(),
		"tracing_enabled", cfg.TracingEnabled)
	return &cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.PixabayKey) == "" {
		return fmt.Errorf("pixabay API key not configured")
	}
	if c.PageSize < MinPageSize || c.PageSize > MaxPageSize {
		return fmt.Errorf("invalid page size: %d (must be %d-%d)", c.PageSize, MinPageSize, MaxPageSize)
	}
	if c.EndNoticeDelay < 0 {
		return fmt.Errorf("invalid end notice delay: %s", c.EndNoticeDelay)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("invalid request timeout: %s", c.RequestTimeout)
	}
	if c.SessionIdleTimeout <= 0 {
		return fmt.Errorf("invalid session idle timeout: %s", c.SessionIdleTimeout)
	}
	return nil
}

// KafkaEnabled reports whether search events should be published.
func (c *Config) KafkaEnabled() bool {
	for _, b := range c.KafkaBrokers {
		if strings.TrimSpace(b) != "" {
			return true
		}
	}
	return false
}

// SlogLevel maps LOG_LEVEL to a slog.Level, defaulting to info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

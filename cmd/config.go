package cmd

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is read from the environment. DB, Redis and Kafka are optional:
// without them the journal is not kept, rates are cached in memory and
// events are only logged.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	APIBaseURL string        `env:"API_BASE_URL,required"`
	APIToken   string        `env:"API_TOKEN"`
	APITimeout time.Duration `env:"API_TIMEOUT" envDefault:"10s"`

	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBName     string `env:"DB_NAME"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	RedisAddr    string        `env:"REDIS_ADDR"`
	RateCacheTTL time.Duration `env:"RATE_CACHE_TTL" envDefault:"5m"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC" envDefault:"shipping.wizard.events"`

	InternalProvider string `env:"INTERNAL_PROVIDER" envDefault:"internal"`

	SessionIdleTTL       time.Duration `env:"SESSION_IDLE_TTL" envDefault:"30m"`
	SessionSweepSchedule string        `env:"SESSION_SWEEP_SCHEDULE" envDefault:"0 * * * * *"`
	BoxRefreshSchedule   string        `env:"BOX_REFRESH_SCHEDULE" envDefault:"0 */5 * * * *"`
	BoxPageSize          int           `env:"BOX_PAGE_SIZE" envDefault:"100"`
}

// LoadConfig parses the process environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

func (c Config) HasDatabase() bool {
	return c.DBHost != "" && c.DBName != ""
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HasRedis() bool {
	return c.RedisAddr != ""
}

func (c Config) HasKafka() bool {
	return len(c.KafkaBrokers) > 0
}

// SlogLevel maps LOG_LEVEL onto slog; unknown values mean info.
func (c Config) SlogLevel() slog.Level {
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

package config

import (
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator"
	_ "github.com/joho/godotenv/autoload"
	"github.com/knadh/koanf"
	"github.com/knadh/koanf/providers/env"
)

type Config struct {
	Server      ServerConfig      `koanf:"server"`
	Ledger      LedgerConfig      `koanf:"ledger"`
	Monext      MonextConfig      `koanf:"monext"`
	URLs        URLConfig         `koanf:"urls"`
	Logger      LoggerConfig      `koanf:"logger"`
	HealthCheck HealthCheckConfig `koanf:"health_check"`
}

type ServerConfig struct {
	Port         string        `koanf:"port" validate:"required"`
	ReadTimeout  time.Duration `koanf:"read_timeout" validate:"required"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"required"`
	IdleTimeout  time.Duration `koanf:"idle_timeout" validate:"required"`
}

// LedgerConfig points at the commerce ledger system of record.
type LedgerConfig struct {
	BaseURL     string        `koanf:"base_url" validate:"required"`
	AuthToken   string        `koanf:"auth_token" validate:"required"`
	ConnTimeout time.Duration `koanf:"conn_timeout" validate:"required"`
}

// MonextConfig holds the Monext API credentials and the three store-scoped
// settings. Environment, PointOfSaleRef and CaptureType each accept either a
// literal value or a JSON object keyed by store key; they are parsed once
// with ParseStoreScoped.
type MonextConfig struct {
	APIKey         string        `koanf:"api_key" validate:"required"`
	Environment    string        `koanf:"environment" validate:"required"`
	PointOfSaleRef string        `koanf:"point_of_sale_ref" validate:"required"`
	CaptureType    string        `koanf:"capture_type" validate:"required"`
	SandboxURL     string        `koanf:"sandbox_url"`
	ProductionURL  string        `koanf:"production_url"`
	ConnTimeout    time.Duration `koanf:"conn_timeout" validate:"required"`
}

type URLConfig struct {
	// ProcessorURL is the public base URL of this connector, embedded in the
	// return and notification URLs handed to Monext.
	ProcessorURL string `koanf:"processor_url" validate:"required"`
	// MerchantReturnURL is the fallback browser destination when the caller's
	// session carries none.
	MerchantReturnURL string `koanf:"merchant_return_url" validate:"required"`
}

type LoggerConfig struct {
	Level string `koanf:"level"`
}

type HealthCheckConfig struct {
	Interval time.Duration `koanf:"interval" validate:"required"`
	Timeout  time.Duration `koanf:"timeout" validate:"required"`
}

func (c LoggerConfig) NewLogger() *slog.Logger {
	var level slog.Level
	switch strings.ToLower(c.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

func LoadConfig() (*Config, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelError,
	}))
	k := koanf.New(".")

	err := k.Load(env.Provider("CONNECTOR_", ".", func(s string) string {
		return strings.ReplaceAll(
			strings.ToLower(strings.TrimPrefix(s, "CONNECTOR_")),
			"__",
			".",
		)
	}), nil)
	if err != nil {
		logger.Error("failed to load environment variables", "error", err)
		return nil, err
	}

	mainConfig := &Config{}

	err = k.Unmarshal("", mainConfig)
	if err != nil {
		logger.Error("could not unmarshal main config", "error", err)
		return nil, err
	}

	validate := validator.New()

	err = validate.Struct(mainConfig)
	if err != nil {
		logger.Error("config validation failed", "error", err)
		return nil, err
	}

	return mainConfig, nil
}

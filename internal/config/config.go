package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/archguru/advisor-backend/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// Completion service configuration
	LLMConnectorCfg LLMConnectorConfig `envPrefix:"LLM_"`

	// Session store configuration
	SessionTTL             time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	SessionCleanupInterval time.Duration `env:"SESSION_CLEANUP_INTERVAL" envDefault:"10m"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

type LLMConnectorConfig struct {
	HTTPClientConfig
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Model               string               `env:"MODEL,notEmpty"`
	Temperature         float64              `env:"TEMPERATURE" envDefault:"0.7"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"120s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"120s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	// The completion credential is startup-fatal unless mocks are enabled.
	if !cfg.EnableMocks {
		if cfg.LLMConnectorCfg.Url == "" {
			return fmt.Errorf("LLM_SERVICE_URL must be set when mocks are disabled")
		}
		if cfg.LLMConnectorCfg.Token == "" {
			return fmt.Errorf("LLM_TOKEN must be set when mocks are disabled")
		}
	}

	if cfg.LLMConnectorCfg.Temperature < 0 || cfg.LLMConnectorCfg.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be between 0 and 2, got %g", cfg.LLMConnectorCfg.Temperature)
	}

	if cfg.SessionTTL < time.Minute {
		return fmt.Errorf("SESSION_TTL must be at least 1 minute, got %s", cfg.SessionTTL)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}

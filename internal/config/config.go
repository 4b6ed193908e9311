package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Application
	LogLevel  string `env:"LOG_LEVEL"  envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"console"`

	// Client
	APIKey        string        `env:"CHECKOUTPAGE_API_KEY"`
	BaseURL       string        `env:"CHECKOUTPAGE_BASE_URL"       envDefault:"https://api.checkoutpage.com"`
	ClientTimeout time.Duration `env:"CHECKOUTPAGE_CLIENT_TIMEOUT" envDefault:"30s"`
	Output        string        `env:"CHECKOUTPAGE_OUTPUT"         envDefault:"table"`

	// Fake API HTTP Server
	HTTPServerHost         string        `env:"HTTP_SERVER_HOST"          envDefault:"127.0.0.1"`
	HTTPServerPort         int           `env:"HTTP_SERVER_PORT"          envDefault:"8080"`
	HTTPBodyLimit          string        `env:"HTTP_BODY_LIMIT"           envDefault:"1M"`
	HTTPServerReadTimeout  time.Duration `env:"HTTP_SERVER_READ_TIMEOUT"  envDefault:"30s"`
	HTTPServerWriteTimeout time.Duration `env:"HTTP_SERVER_WRITE_TIMEOUT" envDefault:"30s"`

	// Fake API behaviour
	FakeAPIKeys      []string `env:"FAKEAPI_KEYS"       envDefault:"sk_test_fake" envSeparator:","`
	FakeAPIRateLimit float64  `env:"FAKEAPI_RATE_LIMIT" envDefault:"0"`
	FakeAPIRateBurst int      `env:"FAKEAPI_RATE_BURST" envDefault:"10"`

	// Graceful Shutdown
	GracefulShutdownPeriod time.Duration `env:"GRACEFUL_SHUTDOWN_PERIOD" envDefault:"10s"`
}

func New() (*Config, error) {
	var cfg Config

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return &cfg, nil
}

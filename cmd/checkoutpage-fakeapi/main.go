// Command checkoutpage-fakeapi serves the in-memory Checkout Page API on
// HTTP_SERVER_HOST:HTTP_SERVER_PORT until interrupted.
package main

import (
	"fmt"
	"os"

	"github.com/andyle182810/checkoutpage/fakeapi"
	"github.com/andyle182810/checkoutpage/httpserver"
	"github.com/andyle182810/checkoutpage/internal/config"
	"github.com/andyle182810/checkoutpage/logutil"
	"github.com/andyle182810/checkoutpage/runner"
	_ "github.com/joho/godotenv/autoload"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("Application exited with an error")
	}

	log.Info().Msg("Application shutdown complete")
}

func run() error {
	cfg, err := config.New()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger := logutil.New(cfg.LogLevel, cfg.LogFormat, os.Stderr)
	zerolog.SetGlobalLevel(logutil.ParseZerologLevel(cfg.LogLevel))
	log.Logger = logger

	api := fakeapi.New(fakeapi.Config{
		APIKeys:   cfg.FakeAPIKeys,
		RateLimit: rate.Limit(cfg.FakeAPIRateLimit),
		RateBurst: cfg.FakeAPIRateBurst,
		Seed:      fakeapi.DefaultSeed(),
		Now:       nil,
	})

	srv := httpserver.New(&httpserver.Config{
		Host:         cfg.HTTPServerHost,
		Port:         cfg.HTTPServerPort,
		BodyLimit:    cfg.HTTPBodyLimit,
		ReadTimeout:  cfg.HTTPServerReadTimeout,
		WriteTimeout: cfg.HTTPServerWriteTimeout,
		GracePeriod:  cfg.GracefulShutdownPeriod,
	}, logger)
	api.Register(srv.Root)

	logger.Info().
		Int("api_keys", len(cfg.FakeAPIKeys)).
		Float64("rate_limit", cfg.FakeAPIRateLimit).
		Strs("ticket_codes", api.Store().TicketCodes()).
		Msg("Fake Checkout Page API initialized")

	appRunner := runner.New(
		runner.WithService(srv),
		runner.WithShutdownTimeout(cfg.GracefulShutdownPeriod),
		runner.WithLogger(logger),
	)

	if err := appRunner.Run(); err != nil {
		return fmt.Errorf("fake api stopped: %w", err)
	}

	return nil
}

package runner

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 30 * time.Second

var (
	ErrServicePanic    = errors.New("runner: service panicked")
	ErrServiceFailed   = errors.New("runner: service failed to start")
	ErrShutdownTimeout = errors.New("runner: shutdown timeout exceeded")
	ErrServiceStop     = errors.New("runner: service failed to stop")
)

type Service interface {
	Start(ctx context.Context) error
	Stop() error
	Name() string
}

type Runner struct {
	services        []Service
	shutdownTimeout time.Duration
	logger          zerolog.Logger
}

type Option func(*Runner)

func New(opts ...Option) *Runner {
	runner := &Runner{
		services:        make([]Service, 0),
		shutdownTimeout: defaultShutdownTimeout,
		logger:          zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(runner)
	}

	return runner
}

// WithService registers a service. Services start in registration order and
// stop in reverse.
func WithService(svc Service) Option {
	return func(r *Runner) {
		r.services = append(r.services, svc)
	}
}

func WithShutdownTimeout(d time.Duration) Option {
	return func(r *Runner) {
		r.shutdownTimeout = d
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// Run blocks until SIGINT or SIGTERM.
func (r *Runner) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.RunContext(ctx)
}

// RunContext starts every service, waits for ctx to end and stops them. A
// start failure stops the services already running and is returned.
func (r *Runner) RunContext(ctx context.Context) error {
	for idx, svc := range r.services {
		r.logger.Info().Str("service_name", svc.Name()).Msg("Starting service")

		if err := startService(ctx, svc); err != nil {
			r.logger.Error().Err(err).Str("service_name", svc.Name()).Msg("Service failed to start")

			return errors.Join(err, r.stopAll(r.services[:idx]))
		}
	}

	r.logger.Info().
		Int("pid", os.Getpid()).
		Int("services", len(r.services)).
		Msg("All services started, waiting for shutdown signal")

	<-ctx.Done()
	r.logger.Warn().Msg("Shutdown signal received")

	if err := r.stopAll(r.services); err != nil {
		return err
	}

	r.logger.Info().Msg("Graceful shutdown completed")

	return nil
}

func startService(ctx context.Context, svc Service) (err error) { //nolint:nonamedreturns
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("%w: %s: %v", ErrServicePanic, svc.Name(), rec)
		}
	}()

	if err := svc.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %s: %w", ErrServiceFailed, svc.Name(), err)
	}

	return nil
}

func (r *Runner) stopAll(services []Service) error {
	if len(services) == 0 {
		return nil
	}

	done := make(chan error, 1)

	go func() {
		done <- r.stopInReverse(services)
	}()

	select {
	case err := <-done:
		return err
	case <-time.After(r.shutdownTimeout):
		r.logger.Error().
			Dur("timeout", r.shutdownTimeout).
			Msg("Shutdown timeout exceeded, some services may not have stopped cleanly")

		return ErrShutdownTimeout
	}
}

func (r *Runner) stopInReverse(services []Service) error {
	var errs []error

	for _, service := range slices.Backward(services) {
		r.logger.Info().Str("service_name", service.Name()).Msg("Stopping service")

		if err := service.Stop(); err != nil {
			r.logger.Error().Err(err).Str("service_name", service.Name()).Msg("Service failed to stop")

			errs = append(errs, fmt.Errorf("%w: %s: %w", ErrServiceStop, service.Name(), err))

			continue
		}

		r.logger.Info().Str("service_name", service.Name()).Msg("Service stopped")
	}

	return errors.Join(errs...)
}

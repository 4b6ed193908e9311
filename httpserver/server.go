package httpserver

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/andyle182810/checkoutpage/middleware"
	"github.com/andyle182810/checkoutpage/validator"
	"github.com/labstack/echo/v5"
	echomiddleware "github.com/labstack/echo/v5/middleware"
	"github.com/rs/zerolog"
)

const (
	kilobyte         = 1 << 10
	megabyte         = 1 << 20
	gigabyte         = 1 << 30
	defaultBodyLimit = 1 * megabyte
)

var ErrNotRunning = errors.New("httpserver: server is not running")

type Config struct {
	Host         string
	Port         int
	BodyLimit    string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	GracePeriod  time.Duration
}

type Server struct {
	address      string
	gracePeriod  time.Duration
	readTimeout  time.Duration
	writeTimeout time.Duration
	logger       zerolog.Logger
	Echo         *echo.Echo
	Root         *echo.Group

	mu         sync.Mutex
	listener   net.Listener
	httpServer *http.Server
}

// New wires the shared middleware stack: request ids, request logging and
// JSON error bodies of the form {"message": ...}. Port 0 picks a free port.
func New(cfg *Config, logger zerolog.Logger) *Server {
	e := echo.New()
	e.Validator = validator.DefaultRestValidator()
	e.HTTPErrorHandler = middleware.ErrorHandler(&middleware.ErrorHandlerConfig{ //nolint:exhaustruct
		Logger: &logger,
	})

	e.Pre(echomiddleware.BodyLimit(parseBodyLimit(cfg.BodyLimit)))
	e.Use(middleware.RequestID(nil))
	e.Use(middleware.RequestLogger(logger, RedactedAPIKeyExtractor))

	return &Server{ //nolint:exhaustruct
		address:      net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		gracePeriod:  cfg.GracePeriod,
		readTimeout:  cfg.ReadTimeout,
		writeTimeout: cfg.WriteTimeout,
		logger:       logger,
		Echo:         e,
		Root:         e.Group(""),
	}
}

func parseBodyLimit(limit string) int64 {
	if limit == "" {
		return defaultBodyLimit
	}

	multiplier := int64(1)
	unit := limit[len(limit)-1:]

	switch unit {
	case "K", "k":
		multiplier = kilobyte
		limit = limit[:len(limit)-1]
	case "M", "m":
		multiplier = megabyte
		limit = limit[:len(limit)-1]
	case "G", "g":
		multiplier = gigabyte
		limit = limit[:len(limit)-1]
	}

	size, err := strconv.ParseInt(limit, 10, 64)
	if err != nil || size <= 0 {
		return defaultBodyLimit
	}

	return size * multiplier
}

// Start binds the listener synchronously, so an address in use is reported
// here, and serves in the background.
func (s *Server) Start(_ context.Context) error {
	listener, err := net.Listen("tcp", s.address)
	if err != nil {
		return fmt.Errorf("httpserver: listen on %s: %w", s.address, err)
	}

	httpServer := &http.Server{ //nolint:exhaustruct
		Handler:      s.Echo,
		ReadTimeout:  s.readTimeout,
		WriteTimeout: s.writeTimeout,
	}

	s.mu.Lock()
	s.listener = listener
	s.httpServer = httpServer
	s.mu.Unlock()

	s.logger.Info().
		Str("address", listener.Addr().String()).
		Msg("The HTTP server is being started")

	go func() {
		if err := httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error().Err(err).Msg("HTTP server stopped unexpectedly")
		}
	}()

	return nil
}

func (s *Server) Stop() error {
	s.mu.Lock()
	httpServer := s.httpServer
	s.mu.Unlock()

	if httpServer == nil {
		return ErrNotRunning
	}

	s.logger.Info().Msg("The graceful shutdown of HTTP server is being initiated")

	ctx, cancel := context.WithTimeout(context.Background(), s.gracePeriod)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("httpserver: shutdown: %w", err)
	}

	s.logger.Info().Msg("The HTTP server shutdown has been completed successfully")

	return nil
}

func (s *Server) Name() string {
	return "http"
}

// URL is the base URL of a started server, e.g. "http://127.0.0.1:41234".
func (s *Server) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}

	return "http://" + s.listener.Addr().String()
}

// RedactedAPIKeyExtractor logs only the last four characters of the key.
func RedactedAPIKeyExtractor(ctx *echo.Context) map[string]any {
	const visible = 4

	key := middleware.GetAPIKey(ctx)
	if key == "" {
		return map[string]any{}
	}

	if len(key) > visible {
		key = key[len(key)-visible:]
	}

	return map[string]any{"api_key": "..." + key}
}

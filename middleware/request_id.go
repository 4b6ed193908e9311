package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

const maxRequestIDLength = 128

var ErrInvalidRequestID = errors.New("middleware: invalid request id")

type RequestIDConfig struct {
	Skipper      middleware.Skipper
	Generator    func() string
	AutoGenerate bool
	Validator    func(string) error
}

// DefaultRequestIDConfig echoes caller-supplied ids and generates a UUID
// when the header is absent.
func DefaultRequestIDConfig() RequestIDConfig {
	return RequestIDConfig{
		Skipper:      middleware.DefaultSkipper,
		Generator:    uuid.NewString,
		AutoGenerate: true,
		Validator:    ValidateRequestID,
	}
}

// ValidateRequestID accepts up to 128 visible ASCII characters.
func ValidateRequestID(rid string) error {
	if len(rid) > maxRequestIDLength {
		return fmt.Errorf("%w: longer than %d characters", ErrInvalidRequestID, maxRequestIDLength)
	}

	for _, r := range rid {
		if r <= ' ' || r > '~' {
			return fmt.Errorf("%w: contains %q", ErrInvalidRequestID, r)
		}
	}

	return nil
}

func RequestID(skipper middleware.Skipper) echo.MiddlewareFunc {
	config := DefaultRequestIDConfig()
	config.Skipper = skipper

	return RequestIDWithConfig(config)
}

func RequestIDWithConfig(config RequestIDConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	if config.Generator == nil {
		config.Generator = uuid.NewString
	}

	if config.Validator == nil {
		config.Validator = ValidateRequestID
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			req := ctx.Request()
			rid := strings.TrimSpace(req.Header.Get(HeaderXRequestID))

			switch {
			case rid == "" && !config.AutoGenerate:
				return echo.NewHTTPError(http.StatusBadRequest, "Missing required header: "+HeaderXRequestID)
			case rid == "":
				rid = config.Generator()
				req.Header.Set(HeaderXRequestID, rid)
			default:
				if err := config.Validator(rid); err != nil {
					return echo.NewHTTPError(http.StatusBadRequest, "Invalid "+HeaderXRequestID+" header").Wrap(err)
				}
			}

			ctx.Response().Header().Set(HeaderXRequestID, rid)
			ctx.Set(ContextKeyRequestID, rid)

			return next(ctx)
		}
	}
}

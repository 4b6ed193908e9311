package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/labstack/echo/v5"
	"github.com/labstack/echo/v5/middleware"
)

const bearerPrefix = "Bearer "

type BearerAuthConfig struct {
	Skipper middleware.Skipper
	// Keys lists the accepted API keys. An empty list rejects every request.
	Keys []string
}

func BearerAuth(keys ...string) echo.MiddlewareFunc {
	return BearerAuthWithConfig(BearerAuthConfig{
		Skipper: middleware.DefaultSkipper,
		Keys:    keys,
	})
}

// BearerAuthWithConfig answers 401 for a missing or unknown bearer key and
// stores the accepted key under ContextKeyAPIKey.
func BearerAuthWithConfig(config BearerAuthConfig) echo.MiddlewareFunc {
	if config.Skipper == nil {
		config.Skipper = middleware.DefaultSkipper
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			if config.Skipper(ctx) {
				return next(ctx)
			}

			header := ctx.Request().Header.Get(HeaderAuthorization)
			if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing API key")
			}

			key := strings.TrimSpace(header[len(bearerPrefix):])
			if key == "" || !acceptedKey(config.Keys, key) {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid API key")
			}

			ctx.Set(ContextKeyAPIKey, key)

			return next(ctx)
		}
	}
}

func acceptedKey(keys []string, candidate string) bool {
	for _, key := range keys {
		if subtle.ConstantTimeCompare([]byte(key), []byte(candidate)) == 1 {
			return true
		}
	}

	return false
}

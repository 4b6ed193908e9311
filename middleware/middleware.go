package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v5"
)

const (
	ContextKeyAPIKey    string = "apiKey"
	ContextKeyRequestID string = "requestID"
	ContextKeyHandler   string = "handler"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderXRequestID    = "X-Request-ID"
	HeaderRetryAfter    = "Retry-After"
)

const (
	HeaderRateLimitLimit     = "X-Ratelimit-Limit"
	HeaderRateLimitRemaining = "X-Ratelimit-Remaining"
	HeaderRateLimitReset     = "X-Ratelimit-Reset"
)

// GetAPIKey returns the bearer key accepted by BearerAuth.
func GetAPIKey(c *echo.Context) string {
	if apiKey, ok := c.Get(ContextKeyAPIKey).(string); ok {
		return apiKey
	}

	return ""
}

func GetRequestID(c *echo.Context) string {
	if requestID, ok := c.Get(ContextKeyRequestID).(string); ok {
		return requestID
	}

	return uuid.NewString()
}

func GetHandler(c *echo.Context) string {
	if handler, ok := c.Get(ContextKeyHandler).(string); ok {
		return handler
	}

	return ""
}

// Handler tags the request with a handler name for the request and error logs.
func Handler(name string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			ctx.Set(ContextKeyHandler, name)

			return next(ctx)
		}
	}
}

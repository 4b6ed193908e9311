package middleware

import (
	"errors"
	"maps"
	"net/http"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"
)

type LogFieldExtractor func(*echo.Context) map[string]any

// RequestLogger writes one event per request. Handler errors are logged with
// the status they will be rendered with and then passed on unchanged.
func RequestLogger(log zerolog.Logger, extraLogFieldExtractor ...LogFieldExtractor) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx *echo.Context) error {
			start := time.Now()

			err := next(ctx)

			status := http.StatusOK
			size := int64(0)

			if res, unwrapErr := echo.UnwrapResponse(ctx.Response()); unwrapErr == nil && res != nil {
				status = res.Status
				size = res.Size
			}

			var httpErr *echo.HTTPError
			if errors.As(err, &httpErr) {
				status = httpErr.Code
			} else if err != nil {
				status = http.StatusInternalServerError
			}

			fields := extractLogFields(ctx, start, status, size)

			for _, extractor := range extraLogFieldExtractor {
				maps.Copy(fields, extractor(ctx))
			}

			logRequest(log, fields, err, status)

			return err
		}
	}
}

func extractLogFields(ctx *echo.Context, start time.Time, status int, size int64) map[string]any {
	req := ctx.Request()

	fields := map[string]any{
		"remote_ip":  ctx.RealIP(),
		"latency":    time.Since(start).String(),
		"method":     req.Method,
		"path":       req.URL.Path,
		"query":      req.URL.RawQuery,
		"status":     status,
		"size":       size,
		"user_agent": req.UserAgent(),
	}

	if id, ok := ctx.Get(ContextKeyRequestID).(string); ok && id != "" {
		fields["request_id"] = id
	}

	if handler := GetHandler(ctx); handler != "" {
		fields["handler"] = handler
	}

	return fields
}

func logRequest(log zerolog.Logger, fields map[string]any, err error, status int) {
	logger := log.With().Fields(fields).Logger()
	if err != nil {
		logger = logger.With().Err(err).Logger()
	}

	switch {
	case status >= http.StatusInternalServerError:
		logger.Error().Msg("The request has resulted in a server error")
	case status >= http.StatusBadRequest:
		logger.Warn().Msg("The request has resulted in a client error")
	default:
		logger.Info().Msg("The request has completed successfully")
	}
}

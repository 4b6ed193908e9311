package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog"
)

const internalErrorMessage = "Internal server error"

type ErrorHandlerConfig struct {
	Logger *zerolog.Logger
	// MessageField names the JSON key carrying the message. Defaults to "message".
	MessageField          string
	IncludeInternalErrors bool
	CustomErrorResponse   func(*echo.Context, *echo.HTTPError) any
}

// ErrorHandler renders every error as a JSON object with a single message
// field. Errors carrying a status, such as echo's route and body limit
// errors, keep it. Anything else becomes a 500.
func ErrorHandler(config ...*ErrorHandlerConfig) echo.HTTPErrorHandler {
	cfg := getErrorHandlerConfig(config)

	return func(ectx *echo.Context, err error) {
		res, unwrapErr := echo.UnwrapResponse(ectx.Response())
		if unwrapErr == nil && res.Committed {
			return
		}

		var (
			httpErr *echo.HTTPError
			coder   echo.HTTPStatusCoder
		)

		cause := err

		switch {
		case errors.As(err, &httpErr):
			cause = httpErr.Unwrap()
		case errors.As(err, &coder):
			code := coder.StatusCode()
			httpErr = echo.NewHTTPError(code, http.StatusText(code))
		default:
			httpErr = echo.NewHTTPError(http.StatusInternalServerError, internalErrorMessage)
		}

		if cfg.Logger != nil {
			logHTTPError(ectx, httpErr, cause, cfg.Logger)
		}

		if cfg.CustomErrorResponse != nil {
			_ = ectx.JSON(httpErr.Code, cfg.CustomErrorResponse(ectx, httpErr))

			return
		}

		_ = ectx.JSON(httpErr.Code, buildErrorResponse(httpErr, cause, cfg))
	}
}

func getErrorHandlerConfig(config []*ErrorHandlerConfig) *ErrorHandlerConfig {
	cfg := &ErrorHandlerConfig{} //nolint:exhaustruct
	if len(config) > 0 && config[0] != nil {
		copied := *config[0]
		cfg = &copied
	}

	if cfg.MessageField == "" {
		cfg.MessageField = "message"
	}

	return cfg
}

func buildErrorResponse(httpErr *echo.HTTPError, cause error, cfg *ErrorHandlerConfig) map[string]any {
	response := map[string]any{
		cfg.MessageField: httpErr.Message,
	}

	if cfg.IncludeInternalErrors && cause != nil {
		response["internal"] = cause.Error()
	}

	return response
}

func logHTTPError(ectx *echo.Context, httpErr *echo.HTTPError, cause error, logger *zerolog.Logger) {
	logFields := map[string]any{
		"status_code": httpErr.Code,
		"message":     httpErr.Message,
		"path":        ectx.Request().URL.Path,
		"method":      ectx.Request().Method,
	}

	if id, ok := ectx.Get(ContextKeyRequestID).(string); ok && id != "" {
		logFields["request_id"] = id
	}

	if handler := GetHandler(ectx); handler != "" {
		logFields["handler"] = handler
	}

	loggerWithFields := logger.With().Fields(logFields).Logger()

	if cause != nil {
		loggerWithFields = loggerWithFields.With().Err(cause).Logger()
	}

	switch {
	case httpErr.Code >= http.StatusInternalServerError:
		loggerWithFields.Error().Msg("Request failed with server error")
	case httpErr.Code >= http.StatusBadRequest:
		loggerWithFields.Warn().Msg("Request failed with client error")
	default:
		loggerWithFields.Info().Msg("HTTP error")
	}
}

package httpserver

import (
	"fmt"

	"github.com/labstack/echo/v5"
)

// HTTPError builds an echo error whose message is err's text, optionally
// followed by a detail, and keeps err as the cause.
func HTTPError(code int, err error, details ...string) error {
	message := err.Error()

	if len(details) > 0 {
		message = fmt.Sprintf("%s: %s", message, details[0])
	}

	return echo.NewHTTPError(code, message).Wrap(err)
}

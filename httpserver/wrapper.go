package httpserver

import (
	"net/http"

	"github.com/andyle182810/checkoutpage/middleware"
	"github.com/labstack/echo/v5"
	"github.com/rs/zerolog/log"
)

// HandlerFunc receives a bound and validated request and returns the status
// and body to encode as JSON.
type HandlerFunc[TREQ any] func(ectx *echo.Context, req *TREQ) (int, any, error)

// Wrapper binds path, query and JSON body into TREQ, validates it with the
// echo validator and renders the handler's result. Bind failures are 400,
// validation failures 422.
func Wrapper[TREQ any](wrapped HandlerFunc[TREQ]) echo.HandlerFunc {
	return func(ectx *echo.Context) error {
		var req TREQ

		if err := ectx.Bind(&req); err != nil {
			logFailure(ectx, err, "The request could not be bound")

			return echo.NewHTTPError(http.StatusBadRequest, "Malformed request").Wrap(err)
		}

		if err := ectx.Validate(&req); err != nil {
			logFailure(ectx, err, "The request failed validation")

			return HTTPError(http.StatusUnprocessableEntity, err)
		}

		status, res, err := wrapped(ectx, &req)
		if err != nil {
			return err
		}

		if status == 0 {
			status = http.StatusOK
		}

		log.Debug().
			Str("request_id", middleware.GetRequestID(ectx)).
			Str("handler", middleware.GetHandler(ectx)).
			Int("status", status).
			Msg("The handler has produced a response")

		return ectx.JSON(status, res)
	}
}

func logFailure(ectx *echo.Context, err error, msg string) {
	log.Debug().
		Err(err).
		Str("path", ectx.Request().URL.Path).
		Str("handler", middleware.GetHandler(ectx)).
		Msg(msg)
}

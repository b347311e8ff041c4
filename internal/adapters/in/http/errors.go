package http

import (
	"errors"
	"net/http"

	"dispatch/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

const kindUnauthorized = "unauthorized"

func statusFor(kind string) int {
	switch kind {
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidValue:
		return http.StatusBadRequest
	case errs.KindForbidden, errs.KindNotOwner:
		return http.StatusForbidden
	case errs.KindInvalidState:
		return http.StatusUnprocessableEntity
	case errs.KindConflict, errs.KindAlreadyTaken, errs.KindAlreadyFinished, errs.KindDuplicateDocument:
		return http.StatusConflict
	case kindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// errorHandler replaces echo's default so domain errors keep their kind on
// the wire. Internal errors are logged and answered with a generic message.
func errorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		body := toError(err)
		if body.Code >= http.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Request().Method).
				Str("path", c.Path()).
				Msg("request failed")
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(body.Code)
		} else {
			err = c.JSON(body.Code, body)
		}
		if err != nil {
			log.Error().Err(err).Msg("write error response")
		}
	}
}

func toError(err error) Error {
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return Error{Code: he.Code, Kind: kindForStatus(he.Code), Message: messageOf(he)}
	}

	kind := errs.KindOf(err)
	code := statusFor(kind)
	msg := err.Error()
	if code == http.StatusInternalServerError {
		msg = http.StatusText(code)
	}
	return Error{Code: code, Kind: kind, Message: msg}
}

func kindForStatus(code int) string {
	switch code {
	case http.StatusNotFound:
		return errs.KindNotFound
	case http.StatusUnauthorized:
		return kindUnauthorized
	case http.StatusForbidden:
		return errs.KindForbidden
	case http.StatusBadRequest, http.StatusRequestEntityTooLarge, http.StatusUnsupportedMediaType:
		return errs.KindInvalidValue
	case http.StatusMethodNotAllowed:
		return errs.KindInvalidState
	default:
		return errs.KindInternal
	}
}

func messageOf(he *echo.HTTPError) string {
	if s, ok := he.Message.(string); ok {
		return s
	}
	return http.StatusText(he.Code)
}

func badRequest(msg string, cause error) error {
	if cause != nil {
		msg = msg + ": " + cause.Error()
	}
	return echo.NewHTTPError(http.StatusBadRequest, msg).SetInternal(cause)
}

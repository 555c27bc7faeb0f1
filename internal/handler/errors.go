package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// NewHTTPErrorHandler returns the centralized error responder.  Handlers
// render their own 4xx bodies inline; anything that escapes them (panics
// recovered by middleware, echo routing errors, unclassified failures)
// lands here and is rendered in the same {error, message} shape.  In
// production the body stays generic; elsewhere the underlying message is
// included to ease debugging.
func NewHTTPErrorHandler(production bool) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}
		status := http.StatusInternalServerError
		message := "internal server error"
		if he, ok := err.(*echo.HTTPError); ok {
			status = he.Code
			if s, ok := he.Message.(string); ok {
				message = s
			}
		} else if !production {
			message = err.Error()
		}

		body := echo.Map{"error": errorLabel(status), "message": message}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(status)
			return
		}
		_ = c.JSON(status, body)
	}
}

func errorLabel(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "validation_error"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusTooManyRequests:
		return "too_many_requests"
	default:
		return "internal_error"
	}
}

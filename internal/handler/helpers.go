// Package handler contains the HTTP handlers of the service.  Handlers
// bind and validate input, call repositories or the reaction service, and
// render JSON envelopes: successes as {success, data, message?} and
// failures as {error, message, details?}.
package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
)

// fieldError is one entry of a validation error's details list.
type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func validationError(c echo.Context, details ...fieldError) error {
	return c.JSON(http.StatusBadRequest, echo.Map{
		"error":   "validation_error",
		"message": "invalid request",
		"details": details,
	})
}

func notFoundError(c echo.Context, message string) error {
	return c.JSON(http.StatusNotFound, echo.Map{"error": "not_found", "message": message})
}

func storageError(c echo.Context) error {
	return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage_error", "message": "database error"})
}

// movieIDParam parses the :movieId path parameter, which must be a
// positive integer.
func movieIDParam(c echo.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

const (
	defaultLimit = 20
	maxLimit     = 100
)

// pagination parses the limit and offset query parameters.  Out-of-range
// values are validation errors rather than being clamped.
func pagination(c echo.Context) (limit, offset int, errs []fieldError) {
	limit, offset = defaultLimit, 0
	if v := c.QueryParam("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxLimit {
			errs = append(errs, fieldError{Field: "limit", Message: "limit must be an integer between 1 and 100"})
		} else {
			limit = n
		}
	}
	if v := c.QueryParam("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs = append(errs, fieldError{Field: "offset", Message: "offset must be a non-negative integer"})
		} else {
			offset = n
		}
	}
	return limit, offset, errs
}

// Package respond writes the API response envelope shared by all claim and
// tenant endpoints: {"success": bool, "data": ...} or {"success": false,
// "error": "..."}.
package respond

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
)

type Envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// OK writes a success envelope with the given status code.
func OK(c echo.Context, status int, data interface{}) error {
	return c.JSON(status, Envelope{Success: true, Data: data})
}

// Fail writes a failure envelope with an explicit status, for callers whose
// errors live outside the apperr taxonomy (authentication, rate limiting).
func Fail(c echo.Context, status int, msg string) error {
	return c.JSON(status, Envelope{Success: false, Error: msg})
}

// Error writes a failure envelope. The HTTP status follows the apperr kind;
// unknown errors are treated as internal and surface only an opaque message.
// The original error is returned so the request logger still records it.
func Error(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	msg := "internal error"

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		status = http.StatusBadRequest
		msg = err.Error()
	case apperr.KindNotFound:
		status = http.StatusNotFound
		msg = err.Error()
	case apperr.KindAuthorization:
		status = http.StatusForbidden
		msg = err.Error()
	}

	if werr := c.JSON(status, Envelope{Success: false, Error: msg}); werr != nil {
		return werr
	}
	return err
}

package auth

import (
	"github.com/labstack/echo/v4"

	"github.com/Fadil369/Nphies-pro/internal/platform/apperr"
	"github.com/Fadil369/Nphies-pro/pkg/respond"
)

// Authorize succeeds when the context's scope set intersects the required
// scopes (OR semantics). The returned error names only the required scopes.
func Authorize(ac AccessContext, required ...string) error {
	for _, want := range required {
		if ac.HasScope(want) {
			return nil
		}
	}
	return apperr.Authorization(required...)
}

// RequireScope returns middleware gating a route behind at least one of the
// given scopes. Failing requests are rejected before the handler runs.
func RequireScope(required ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ac := AccessFromContext(c.Request().Context())
			if err := Authorize(ac, required...); err != nil {
				return respond.Error(c, err)
			}
			return next(c)
		}
	}
}

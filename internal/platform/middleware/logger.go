package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/Fadil369/Nphies-pro/internal/platform/auth"
)

// Logger emits one structured access log line per request, tagged with the
// resolved actor and role when the request carried a principal.
func Logger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			req := c.Request()
			rid, _ := c.Get("request_id").(string)

			err := next(c)

			evt := logger.Info()
			if err != nil {
				evt = logger.Error().Err(err)
			}

			evt.
				Str("request_id", rid).
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", c.Response().Status).
				Dur("latency", time.Since(start)).
				Str("remote_ip", c.RealIP())

			// The auth middleware swaps the request, so read the principal
			// off the post-chain context.
			if ac := auth.AccessFromContext(c.Request().Context()); ac.ActorID != "" {
				evt.Str("actor_id", ac.ActorID).Str("role", ac.Role)
			}
			evt.Msg("request")

			return err
		}
	}
}

package middleware

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// RequestLog emits one structured line per request: method, path,
// status, duration and the caller identity when a JWT was presented.
func RequestLog(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			ev := logger.Info()
			status := c.Response().Status
			if status >= 500 {
				ev = logger.Error()
			}
			ev.Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", status).
				Dur("duration", time.Since(start)).
				Str("remote", c.RealIP())
			if id := currentUserID(c); id != "anon" {
				ev = ev.Str("patient", id)
			}
			ev.Msg("request")
			return nil
		}
	}
}

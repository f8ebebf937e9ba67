package middleware

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/anonto42/nano-social/backend/internal/logger"
)

// RequestLogger writes one record per request to the application logger.
func RequestLogger(log *logger.Logger) echo.MiddlewareFunc {
	return echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			args := []any{
				"method", v.Method,
				"uri", v.URI,
				"status", v.Status,
				"latency", v.Latency,
			}
			if user := CurrentUser(c); user != nil {
				args = append(args, "user_id", user.ID)
			}
			if v.Error != nil {
				log.Warn("request failed", append(args, "error", v.Error)...)
				return nil
			}
			log.Info("request", args...)
			return nil
		},
	})
}

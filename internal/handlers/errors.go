package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/logger"
	"github.com/anonto42/nano-social/backend/internal/middleware"
)

const msgInternal = "Internal Server Error"

// ErrorHandler renders every error as {"error": message}. Failures that are
// not client errors are logged and reported with a generic message.
func ErrorHandler(log *logger.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, msg := http.StatusInternalServerError, msgInternal
		var httpErr *echo.HTTPError
		if appErr, ok := apperror.As(err); ok {
			status, msg = appErr.StatusCode(), appErr.Message
		} else if errors.As(err, &httpErr) {
			status = httpErr.Code
			if s, ok := httpErr.Message.(string); ok {
				msg = s
			} else {
				msg = fmt.Sprint(httpErr.Message)
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				"method", c.Request().Method,
				"uri", c.Request().RequestURI,
				"error", err)
			msg = msgInternal
		}

		if c.Request().Method == http.MethodHead {
			err = c.NoContent(status)
		} else {
			err = c.JSON(status, echo.Map{"error": msg})
		}
		if err != nil {
			log.Error("failed to write error response", "error", err)
		}
	}
}

// currentUserID returns the id of the user loaded by the auth middleware.
func currentUserID(c echo.Context) uint {
	user := middleware.CurrentUser(c)
	if user == nil {
		return 0
	}
	return user.ID
}

func badPayload() error {
	return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
}

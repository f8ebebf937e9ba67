package middleware

import (
	"errors"
	"fmt"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/repositories"
	"github.com/anonto42/nano-social/backend/internal/token"
)

const userContextKey = "user"

const (
	msgNoToken      = "Unauthorized: No Token Provided"
	msgInvalidToken = "Unauthorized: Invalid Token"
	msgExpiredToken = "Unauthorized: Token Expired"
	msgUserNotFound = "User not found"
)

// TokenVerifier resolves a session token to a user id.
type TokenVerifier interface {
	Verify(raw string) (uint, error)
}

// ProtectRoute reads the jwt cookie, verifies it and loads the user into the
// request context.
func ProtectRoute(tokens TokenVerifier, users repositories.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(token.CookieName)
			if err != nil || cookie.Value == "" {
				return apperror.NewUnauthorized(msgNoToken, nil)
			}

			userID, err := tokens.Verify(cookie.Value)
			if errors.Is(err, token.ErrExpiredToken) {
				return apperror.NewUnauthorized(msgExpiredToken, err)
			}
			if err != nil {
				return apperror.NewUnauthorized(msgInvalidToken, err)
			}

			user, err := users.GetUserByID(c.Request().Context(), userID)
			if errors.Is(err, repositories.ErrNotFound) {
				return apperror.NewNotFound(msgUserNotFound)
			}
			if err != nil {
				return fmt.Errorf("failed to load authenticated user: %w", err)
			}

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by ProtectRoute, or nil on routes
// without it.
func CurrentUser(c echo.Context) *models.User {
	user, _ := c.Get(userContextKey).(*models.User)
	return user
}

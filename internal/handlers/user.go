package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// UserHandler handles HTTP requests related to users
type UserHandler struct {
	users *services.Users
}

// NewUserHandler creates a new UserHandler
func NewUserHandler(users *services.Users) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterProfileRoutes registers user profile-related routes
func (h *UserHandler) RegisterProfileRoutes(g *echo.Group) {
	g.GET("/profile/:username", h.GetProfile)
	g.GET("/suggested", h.GetSuggestedUsers)
	g.POST("/update", h.UpdateProfile)
}

// GetProfile returns the public profile of :username
func (h *UserHandler) GetProfile(c echo.Context) error {
	profile, err := h.users.Profile(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

func (h *UserHandler) GetSuggestedUsers(c echo.Context) error {
	users, err := h.users.Suggested(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// UpdateProfile edits the caller's own profile
func (h *UserHandler) UpdateProfile(c echo.Context) error {
	var req models.UpdateUserRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	profile, err := h.users.Update(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, profile)
}

package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	graph *services.Graph
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(graph *services.Graph) *FollowHandler {
	return &FollowHandler{graph: graph}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/follow/:id", h.FollowUnfollowUser)
}

// FollowUnfollowUser toggles whether the caller follows :id
func (h *FollowHandler) FollowUnfollowUser(c echo.Context) error {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperror.NewBadRequest("Invalid user ID")
	}

	res, err := h.graph.FollowUnfollow(c.Request().Context(), currentUserID(c), uint(targetID))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": res.Message})
}

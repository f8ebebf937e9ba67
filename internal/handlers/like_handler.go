package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	graph *services.Graph
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(graph *services.Graph) *LikeHandler {
	return &LikeHandler{graph: graph}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/like/:id", h.LikeUnlikePost)
}

// LikeUnlikePost toggles the caller's like and returns the post's likes
func (h *LikeHandler) LikeUnlikePost(c echo.Context) error {
	likes, err := h.graph.LikeUnlike(c.Request().Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, likes)
}

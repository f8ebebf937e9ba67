package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// PostHandler handles post creation and deletion
type PostHandler struct {
	posts *services.Posts
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.Posts) *PostHandler {
	return &PostHandler{posts: posts}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/create", h.CreatePost)
	g.DELETE("/:id", h.DeletePost)
}

// CreatePost creates a post with text and/or a data-URI image
func (h *PostHandler) CreatePost(c echo.Context) error {
	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	post, err := h.posts.Create(c.Request().Context(), currentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, post)
}

// DeletePost deletes a post owned by the caller
func (h *PostHandler) DeletePost(c echo.Context) error {
	if err := h.posts.Delete(c.Request().Context(), currentUserID(c), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": services.MsgPostDeleted})
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// CommentHandler handles comments on posts
type CommentHandler struct {
	posts *services.Posts
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(posts *services.Posts) *CommentHandler {
	return &CommentHandler{posts: posts}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/comment/:id", h.CommentOnPost)
}

// CommentOnPost appends a comment and returns the updated post
func (h *CommentHandler) CommentOnPost(c echo.Context) error {
	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return badPayload()
	}

	post, err := h.posts.Comment(c.Request().Context(), currentUserID(c), c.Param("id"), req.Text)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

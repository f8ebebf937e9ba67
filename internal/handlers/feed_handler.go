package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/apperror"
	"github.com/anonto42/nano-social/backend/internal/services"
)

// FeedHandler handles post listings
type FeedHandler struct {
	posts *services.Posts
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(posts *services.Posts) *FeedHandler {
	return &FeedHandler{posts: posts}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/all", h.GetAllPosts)
	g.GET("/following", h.GetFollowingPosts)
	g.GET("/user/:username", h.GetUserPosts)
	g.GET("/likes/:id", h.GetLikedPosts)
}

func (h *FeedHandler) GetAllPosts(c echo.Context) error {
	posts, err := h.posts.All(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetFollowingPosts lists posts by users the caller follows
func (h *FeedHandler) GetFollowingPosts(c echo.Context) error {
	posts, err := h.posts.Following(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

func (h *FeedHandler) GetUserPosts(c echo.Context) error {
	posts, err := h.posts.ByUsername(c.Request().Context(), c.Param("username"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

// GetLikedPosts lists the posts liked by the user in :id
func (h *FeedHandler) GetLikedPosts(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return apperror.NewNotFound(services.MsgUserNotFound)
	}

	posts, err := h.posts.Liked(c.Request().Context(), uint(id))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, posts)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.Notifications
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.Notifications) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("", h.GetNotifications)
	g.GET("/unread-count", h.GetUnreadCount)
	g.DELETE("", h.DeleteNotifications)
}

// GetNotifications lists the caller's notifications and marks them read
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	list, err := h.notifications.List(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), currentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": count})
}

func (h *NotificationHandler) DeleteNotifications(c echo.Context) error {
	if err := h.notifications.DeleteAll(c.Request().Context(), currentUserID(c)); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"message": services.MsgNotificationsDeleted})
}

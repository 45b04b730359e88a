package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// NotificationHandler handles notification-related HTTP requests
type NotificationHandler struct {
	notifications *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifications *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifications: notifications}
}

// RegisterNotificationRoutes registers notification routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group, guards Guards) {
	g.GET("/notifications", h.GetNotifications, guards.Optional)
	g.GET("/notifications/unread-count", h.GetUnreadCount, guards.Optional)
	g.PUT("/notifications/read-all", h.MarkAllAsRead, guards.Required)
	g.PUT("/notifications/:id/read", h.MarkAsRead, guards.Required)
}

// GetNotifications returns the newest notifications of the caller
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	views, err := h.notifications.List(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"notifications": views})
}

// GetUnreadCount returns the unread notification count
func (h *NotificationHandler) GetUnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"count": count})
}

// MarkAsRead marks a notification as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	if err := h.notifications.MarkAsRead(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

// MarkAllAsRead marks all notifications as read
func (h *NotificationHandler) MarkAllAsRead(c echo.Context) error {
	if err := h.notifications.MarkAllAsRead(c.Request().Context(), middleware.SubjectFrom(c)); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

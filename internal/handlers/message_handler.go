package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// MessageHandler handles the contact form and its admin inbox.
type MessageHandler struct {
	messages *services.MessageService
}

func NewMessageHandler(messages *services.MessageService) *MessageHandler {
	return &MessageHandler{messages: messages}
}

func (h *MessageHandler) RegisterMessageRoutes(g *echo.Group, guards Guards) {
	g.POST("/messages", h.SendMessage, guards.Optional, guards.RateLimit)
}

func (h *MessageHandler) RegisterAdminMessageRoutes(g *echo.Group, guards Guards) {
	admin := guards.Admin(auth.ActionManageMessages)

	g.GET("/messages", h.ListMessages, guards.Required, admin)
	g.DELETE("/messages/:id", h.DeleteMessage, guards.Required, admin)
	g.POST("/messages/:id/reply", h.ReplyMessage, guards.Required, admin)
}

// SendMessage accepts a message from a guest or a signed-in user
func (h *MessageHandler) SendMessage(c echo.Context) error {
	var req models.SendMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if _, err := h.messages.Send(c.Request().Context(), middleware.SubjectFrom(c), req.Content); err != nil {
		return fromService(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"success": true})
}

func (h *MessageHandler) ListMessages(c echo.Context) error {
	messages, err := h.messages.List(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, messages)
}

func (h *MessageHandler) DeleteMessage(c echo.Context) error {
	if err := h.messages.Delete(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

// ReplyMessage emails the author of a message
func (h *MessageHandler) ReplyMessage(c echo.Context) error {
	var req models.ReplyMessageRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	if err := h.messages.Reply(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id"), req.Content); err != nil {
		return fromService(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"success": true})
}

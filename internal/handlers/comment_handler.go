package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// CommentHandler handles replies on guestbook posts
type CommentHandler struct {
	social *services.SocialService
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(social *services.SocialService) *CommentHandler {
	return &CommentHandler{social: social}
}

// RegisterCommentRoutes registers reply routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group, guards Guards) {
	g.POST("/guestbook/:post_id/replies", h.CreateReply, guards.Required, guards.RateLimit)
}

// CreateReply replies to a post, or to another reply when reply_to_id is set
func (h *CommentHandler) CreateReply(c echo.Context) error {
	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	// Blank content is rejected by the service with no writes.
	reply, err := h.social.SubmitReply(c.Request().Context(), middleware.SubjectFrom(c), c.Param("post_id"), req.Content, req.ReplyToID)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusCreated, reply)
}

package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	social *services.SocialService
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(social *services.SocialService) *LikeHandler {
	return &LikeHandler{social: social}
}

// RegisterLikeRoutes registers like-related routes. Both are toggles.
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group, guards Guards) {
	g.POST("/guestbook/:post_id/like", h.TogglePostLike, guards.Required)
	g.POST("/guestbook/replies/:reply_id/like", h.ToggleReplyLike, guards.Required)
}

// TogglePostLike likes or unlikes a guestbook post
func (h *LikeHandler) TogglePostLike(c echo.Context) error {
	liked, err := h.social.ToggleGuestbookLike(c.Request().Context(), middleware.SubjectFrom(c), c.Param("post_id"))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"liked": liked})
}

// ToggleReplyLike likes or unlikes a reply
func (h *LikeHandler) ToggleReplyLike(c echo.Context) error {
	liked, err := h.social.ToggleReplyLike(c.Request().Context(), middleware.SubjectFrom(c), c.Param("reply_id"))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"liked": liked})
}

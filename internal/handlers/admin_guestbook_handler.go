package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// AdminGuestbookHandler serves the moderation dashboard.
type AdminGuestbookHandler struct {
	admin *services.AdminGuestbookService
}

func NewAdminGuestbookHandler(admin *services.AdminGuestbookService) *AdminGuestbookHandler {
	return &AdminGuestbookHandler{admin: admin}
}

func (h *AdminGuestbookHandler) RegisterAdminGuestbookRoutes(g *echo.Group, guards Guards) {
	admin := guards.Admin(auth.ActionModerateGuestbook)

	g.GET("/guestbook", h.ListEntries, guards.Required, admin)
	g.GET("/guestbook/:post_id", h.GetThread, guards.Required, admin)
	g.POST("/guestbook/:post_id/replies", h.SubmitReply, guards.Required, admin)
	g.PUT("/guestbook/:post_id/read", h.MarkAsRead, guards.Required, admin)
	g.DELETE("/guestbook/:post_id", h.DeleteEntry, guards.Required, admin)
	g.DELETE("/guestbook/replies/:reply_id", h.DeleteReply, guards.Required, admin)
	g.POST("/guestbook/replies/:reply_id/like", h.ToggleReplyLike, guards.Required, admin)
}

func (h *AdminGuestbookHandler) ListEntries(c echo.Context) error {
	rows, err := h.admin.ListEntries(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, rows)
}

func (h *AdminGuestbookHandler) GetThread(c echo.Context) error {
	thread, err := h.admin.GetThread(c.Request().Context(), middleware.SubjectFrom(c), c.Param("post_id"))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, thread)
}

func (h *AdminGuestbookHandler) SubmitReply(c echo.Context) error {
	var req models.CreateReplyRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}

	reply, err := h.admin.SubmitReply(c.Request().Context(), middleware.SubjectFrom(c), c.Param("post_id"), req.Content)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusCreated, reply)
}

func (h *AdminGuestbookHandler) MarkAsRead(c echo.Context) error {
	if err := h.admin.MarkAsRead(c.Request().Context(), middleware.SubjectFrom(c), c.Param("post_id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

func (h *AdminGuestbookHandler) DeleteEntry(c echo.Context) error {
	if err := h.admin.DeleteEntry(c.Request().Context(), middleware.SubjectFrom(c), c.Param("post_id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

func (h *AdminGuestbookHandler) DeleteReply(c echo.Context) error {
	if err := h.admin.DeleteReply(c.Request().Context(), middleware.SubjectFrom(c), c.Param("reply_id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

func (h *AdminGuestbookHandler) ToggleReplyLike(c echo.Context) error {
	liked, err := h.admin.ToggleReplyLike(c.Request().Context(), middleware.SubjectFrom(c), c.Param("reply_id"))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"liked": liked})
}

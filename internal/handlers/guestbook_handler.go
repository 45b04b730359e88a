package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// GuestbookHandler serves the public guestbook page.
type GuestbookHandler struct {
	guestbook *services.GuestbookService
}

func NewGuestbookHandler(guestbook *services.GuestbookService) *GuestbookHandler {
	return &GuestbookHandler{guestbook: guestbook}
}

func (h *GuestbookHandler) RegisterGuestbookRoutes(g *echo.Group, guards Guards) {
	g.GET("/guestbook", h.ListEntries, guards.Optional)
	g.POST("/guestbook", h.CreateEntry, guards.Required, guards.RateLimit)
}

// ListEntries returns every post with replies and like state for the caller
func (h *GuestbookHandler) ListEntries(c echo.Context) error {
	entries, err := h.guestbook.ListEntries(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, entries)
}

// CreateEntry signs the guestbook
func (h *GuestbookHandler) CreateEntry(c echo.Context) error {
	var req models.CreateGuestbookRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.guestbook.CreateEntry(c.Request().Context(), middleware.SubjectFrom(c), req.Message, req.Topic)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusCreated, post)
}

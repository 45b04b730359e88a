package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// DashboardHandler records visits and serves the admin overview.
type DashboardHandler struct {
	tracking *services.TrackingService
}

func NewDashboardHandler(tracking *services.TrackingService) *DashboardHandler {
	return &DashboardHandler{tracking: tracking}
}

func (h *DashboardHandler) RegisterTrackingRoutes(g *echo.Group) {
	g.POST("/track", h.TrackVisit)
}

func (h *DashboardHandler) RegisterAdminDashboardRoutes(g *echo.Group, guards Guards) {
	g.GET("/stats", h.GetStats, guards.Required, guards.Admin(auth.ActionViewDashboard))
}

// TrackVisit always answers 204; failures are only logged.
func (h *DashboardHandler) TrackVisit(c echo.Context) error {
	h.tracking.Track(c.Request().Context(), c.RealIP(), c.Request().UserAgent())
	return c.NoContent(http.StatusNoContent)
}

func (h *DashboardHandler) GetStats(c echo.Context) error {
	stats, err := h.tracking.DashboardStats(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, stats)
}

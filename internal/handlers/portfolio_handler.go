package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/models"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// PortfolioHandler serves projects and the tech stack.
type PortfolioHandler struct {
	portfolio *services.PortfolioService
}

func NewPortfolioHandler(portfolio *services.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{portfolio: portfolio}
}

func (h *PortfolioHandler) RegisterPortfolioRoutes(g *echo.Group) {
	g.GET("/projects", h.ListProjects)
	g.GET("/tech", h.ListTech)
}

func (h *PortfolioHandler) RegisterAdminPortfolioRoutes(g *echo.Group, guards Guards) {
	admin := guards.Admin(auth.ActionManagePortfolio)

	g.POST("/projects", h.CreateProject, guards.Required, admin)
	g.DELETE("/projects/:id", h.DeleteProject, guards.Required, admin)
	g.POST("/tech", h.CreateTech, guards.Required, admin)
	g.DELETE("/tech/:id", h.DeleteTech, guards.Required, admin)
}

func (h *PortfolioHandler) ListProjects(c echo.Context) error {
	projects, err := h.portfolio.ListProjects(c.Request().Context())
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, projects)
}

func (h *PortfolioHandler) ListTech(c echo.Context) error {
	tech, err := h.portfolio.ListTech(c.Request().Context())
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, tech)
}

func (h *PortfolioHandler) CreateProject(c echo.Context) error {
	var req models.CreateProjectRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	project, err := h.portfolio.CreateProject(c.Request().Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusCreated, project)
}

func (h *PortfolioHandler) DeleteProject(c echo.Context) error {
	if err := h.portfolio.DeleteProject(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

func (h *PortfolioHandler) CreateTech(c echo.Context) error {
	var req models.CreateTechRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	tech, err := h.portfolio.CreateTech(c.Request().Context(), middleware.SubjectFrom(c), req)
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusCreated, tech)
}

func (h *PortfolioHandler) DeleteTech(c echo.Context) error {
	if err := h.portfolio.DeleteTech(c.Request().Context(), middleware.SubjectFrom(c), c.Param("id")); err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, echo.Map{"success": true})
}

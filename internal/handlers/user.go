package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

type UserHandler struct {
	accounts *services.AccountService
}

func NewUserHandler(accounts *services.AccountService) *UserHandler {
	return &UserHandler{accounts: accounts}
}

func (h *UserHandler) RegisterProfileRoutes(g *echo.Group, guards Guards) {
	g.GET("/me", h.GetProfile, guards.Required)
}

// GetProfile returns the signed-in user's stored profile
func (h *UserHandler) GetProfile(c echo.Context) error {
	user, err := h.accounts.Me(c.Request().Context(), middleware.SubjectFrom(c))
	if err != nil {
		return fromService(c, err)
	}
	return success(c, http.StatusOK, user)
}

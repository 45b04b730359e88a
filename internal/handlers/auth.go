package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/middleware"
	"github.com/xteonlyone/portfolio/backend/internal/services"
	"github.com/xteonlyone/portfolio/backend/pkg/firebase"
)

// AuthHandler exchanges a verified Google sign-in for a session token.
type AuthHandler struct {
	accounts *services.AccountService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *services.AccountService) *AuthHandler {
	return &AuthHandler{accounts: accounts}
}

// RegisterAuthRoutes registers authentication-related routes. firebaseAuth
// verifies the ID token before FirebaseLogin runs.
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group, firebaseAuth echo.MiddlewareFunc) {
	g.POST("/firebase-login", h.FirebaseLogin, firebaseAuth)
}

// FirebaseLogin upserts the signed-in user and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	token, ok := middleware.FirebaseTokenFrom(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	resp, err := h.accounts.SignIn(c.Request().Context(), firebase.IdentityFromToken(token))
	if err != nil {
		return fromService(c, err)
	}
	return c.JSON(http.StatusOK, resp)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
	"github.com/xteonlyone/portfolio/backend/internal/services"
)

// Guards are the route-level middlewares handlers attach to their routes.
type Guards struct {
	Required  echo.MiddlewareFunc
	Optional  echo.MiddlewareFunc
	RateLimit echo.MiddlewareFunc
	Admin     func(action auth.Action) echo.MiddlewareFunc
}

func success(c echo.Context, status int, data any) error {
	return c.JSON(status, echo.Map{"success": true, "data": data})
}

// fromService maps service errors onto HTTP responses.
func fromService(c echo.Context, err error) error {
	var actionErr *services.ActionError
	switch {
	case errors.Is(err, services.ErrUnauthenticated):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	case errors.Is(err, services.ErrForbidden):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrEmptyContent), errors.Is(err, services.ErrInvalidInput):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	case errors.Is(err, services.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, services.ErrNoRecipient):
		return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &actionErr):
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": actionErr.Message})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false, "error": "Something went wrong"})
	}
}

func bindAndValidate(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	return c.Validate(req)
}

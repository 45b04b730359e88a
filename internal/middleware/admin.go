package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
)

// RequirePolicy rejects callers the policy does not authorize for action.
// Services check again; this only keeps unauthorized traffic off the
// handlers.
func RequirePolicy(policy auth.Policy, action auth.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject := SubjectFrom(c)
			if !subject.Authenticated() {
				return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
			}
			if !policy.IsAuthorized(subject, action) {
				return echo.NewHTTPError(http.StatusForbidden, "unauthorized access: admin only")
			}
			return next(c)
		}
	}
}

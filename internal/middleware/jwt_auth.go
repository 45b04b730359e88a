package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/xteonlyone/portfolio/backend/internal/auth"
)

const subjectKey = "subject"

// SubjectFrom returns the caller stored by the JWT middleware. Anonymous
// requests yield the zero Subject.
func SubjectFrom(c echo.Context) auth.Subject {
	if s, ok := c.Get(subjectKey).(auth.Subject); ok {
		return s
	}
	return auth.Subject{}
}

func bearerToken(c echo.Context) (string, bool) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// JWTAuthMiddleware checks for a valid session token and stores its subject.
func JWTAuthMiddleware(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Header.Get("Authorization") == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			tokenString, ok := bearerToken(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}

			subject, err := tokens.Parse(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(subjectKey, subject)
			return next(c)
		}
	}
}

// OptionalJWTMiddleware stores the subject when a valid token is present and
// lets anonymous requests through otherwise.
func OptionalJWTMiddleware(tokens *auth.TokenIssuer) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if tokenString, ok := bearerToken(c); ok {
				if subject, err := tokens.Parse(tokenString); err == nil {
					c.Set(subjectKey, subject)
				}
			}
			return next(c)
		}
	}
}

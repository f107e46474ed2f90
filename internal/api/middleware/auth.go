package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roadrescue/dispatch-system/internal/api/metrics"
	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// SessionValidator is the slice of AuthService the middleware depends on.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
}

// Auth validates the opaque session token carried in the Authorization
// header (no Bearer prefix — the portal sends the raw token) and injects
// the session identity into the request context.
func Auth(validator SessionValidator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := c.Request().Header.Get("Authorization")
			if token == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			session, err := validator.ValidateSession(c.Request().Context(), token)
			if err != nil {
				metrics.SessionLookupsTotal.WithLabelValues("invalid").Inc()
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or missing token")
			}
			metrics.SessionLookupsTotal.WithLabelValues("valid").Inc()

			c.Set("user_id", session.UserID)
			c.Set("role", string(session.Role))
			c.Set("session_token", token)

			return next(c)
		}
	}
}

// Package middleware holds the portal's echo middleware.
package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/roadrescue/dispatch-system/internal/portal/session"
)

// RequireSession redirects to /login when the request carries no session
// cookie. It checks only for the cookie's presence; validity is settled when
// the token reaches the dispatch API. The API responses are what the page
// renders from, so an expired cookie fails loudly one hop later instead of
// silently here.
func RequireSession() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, err := c.Cookie(session.CookieName); err != nil {
				return c.Redirect(http.StatusFound, "/login")
			}
			return next(c)
		}
	}
}

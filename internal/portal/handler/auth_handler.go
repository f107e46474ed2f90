package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/portal/session"
)

// AuthHandler serves the portal's login, logout, and profile image routes.
type AuthHandler struct {
	backend Backend
	log     zerolog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(backend Backend, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{backend: backend, log: log}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// Login handles POST /login. On success it both sets the session cookie and
// returns the session payload, so the browser is signed in after this single
// round trip. Every failure collapses to the same 401 so the form cannot be
// used to probe which usernames exist.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.backend.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		h.log.Info().Str("username", req.Username).Msg("login rejected")
		return echo.NewHTTPError(http.StatusUnauthorized, "invalid credentials")
	}

	if err := session.WriteCookie(c.Response(), user); err != nil {
		// The session exists on the API side but the browser never got it;
		// tear it down so no orphaned session lingers.
		if logoutErr := h.backend.Logout(c.Request().Context(), user.SessionToken); logoutErr != nil {
			h.log.Warn().Err(logoutErr).Msg("orphaned session cleanup failed")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "could not establish session")
	}

	return c.JSON(http.StatusOK, user)
}

// Logout handles POST /logout. The API-side session is invalidated first
// (when a token exists), then the cookie is cleared unconditionally: the
// browser always ends up signed out, even from a corrupted session.
func (h *AuthHandler) Logout(c echo.Context) error {
	user, ok := session.ReadRequest(c.Request())
	if ok && user.SessionToken != "" {
		if err := h.backend.Logout(c.Request().Context(), user.SessionToken); err != nil {
			h.log.Warn().Err(err).Msg("logout: backend invalidation failed")
		}
	}

	session.ClearCookie(c.Response())
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// UserImage handles GET /user_image by proxying the authenticated user's
// profile image from the dispatch API.
func (h *AuthHandler) UserImage(c echo.Context) error {
	user, ok := session.ReadRequest(c.Request())
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	img, err := h.backend.UserImage(c.Request().Context(), user.SessionToken, user.UserID)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

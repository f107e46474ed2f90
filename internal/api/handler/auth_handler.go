package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/api/metrics"
	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

// AuthHandler exposes registration, login, logout and profile image routes.
type AuthHandler struct {
	authService ports.AuthService
	log         zerolog.Logger
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authService ports.AuthService, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, log: log}
}

// Register handles POST /api/register.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Account details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Password: req.Password,
		Role:     domain.Role(req.Role),
		AreaID:   req.AreaID,
	})
	if err != nil {
		return err
	}

	h.log.Info().Str("username", user.Username).Str("role", string(user.Role)).Msg("user registered")

	return c.JSON(http.StatusCreated, registerResponse{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
}

// Login handles POST /api/login. On success it returns the flat session
// payload the portal stores in its session cookie.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  domain.SessionUser
// @Failure      401   {object}  map[string]string
// @Router       /api/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	sessionUser, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.LoginsTotal.WithLabelValues("success").Inc()

	return c.JSON(http.StatusOK, sessionUser)
}

// Logout handles POST /api/logout. Logout is idempotent: it returns 200 even
// when the token is already gone, so a stale portal cookie never strands the
// user in a logged-in state.
//
// @Summary      Logout
// @Tags         auth
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]string
// @Router       /api/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, _ := c.Get("session_token").(string)
	if token != "" {
		if err := h.authService.Logout(c.Request().Context(), token); err != nil {
			h.log.Warn().Err(err).Msg("logout: session invalidation failed")
		}
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "logged out"})
}

// UserImage handles GET /api/user_image/:id. It streams the stored profile
// image for a user.
//
// @Summary      Profile image
// @Tags         auth
// @Produce      png
// @Security     ApiKeyAuth
// @Param        id   path      int  true  "User id"
// @Success      200  {file}    binary
// @Failure      404  {object}  map[string]string
// @Router       /api/user_image/{id} [get]
func (h *AuthHandler) UserImage(c echo.Context) error {
	userID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	img, err := h.authService.ProfileImage(c.Request().Context(), userID)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "image/png", img)
}

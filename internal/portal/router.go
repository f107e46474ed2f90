// Package portal wires the browser-facing service: the session endpoint,
// the login/logout flow, the guarded order board, and the typed client that
// fronts the dispatch API.
package portal

import (
	"net/http"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/portal/handler"
	"github.com/roadrescue/dispatch-system/internal/portal/middleware"
	"github.com/roadrescue/dispatch-system/internal/portal/session"
)

// NewRouter builds the portal's echo instance. backend is the dispatch API
// client; tests pass a stub.
func NewRouter(backend handler.Backend, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = newValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echoprometheus.NewMiddleware("dispatch_portal"))

	e.GET("/metrics", echoprometheus.NewHandler())

	store := session.NewStore()
	e.GET("/session", store.Get)
	e.POST("/session", store.Set)
	e.DELETE("/session", store.Delete)

	authHandler := handler.NewAuthHandler(backend, log)
	orderHandler := handler.NewOrderHandler(backend, log)

	e.POST("/login", authHandler.Login)
	e.POST("/logout", authHandler.Logout)
	e.GET("/user_image", authHandler.UserImage)

	// Signed-out visitors land on the login page; everything under the
	// order board requires a session cookie.
	guard := middleware.RequireSession()
	e.GET("/", func(c echo.Context) error {
		return c.Redirect(http.StatusFound, "/orders")
	}, guard)

	orders := e.Group("/orders", guard)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.POST("/:id/dispatch", orderHandler.Dispatch)

	return e
}

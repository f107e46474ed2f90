// Package api wires the HTTP transport for the dispatch service: routing,
// middleware, validation, error mapping, and Prometheus instrumentation.
package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/api/handler"
	"github.com/roadrescue/dispatch-system/internal/api/middleware"
	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

// Deps carries everything the router needs, already constructed.
type Deps struct {
	AuthService     ports.AuthService
	OrderService    ports.OrderService
	TowTruckService ports.TowTruckService
	HealthDeps      map[string]handler.Pinger
	Logger          zerolog.Logger
}

// NewRouter builds the echo instance with all routes and middleware attached.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Logger)

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.Logger())
	e.Use(echoprometheus.NewMiddleware("dispatch_api"))

	e.GET("/metrics", echoprometheus.NewHandler())

	authHandler := handler.NewAuthHandler(d.AuthService, d.Logger)
	orderHandler := handler.NewOrderHandler(d.OrderService, d.Logger)
	towTruckHandler := handler.NewTowTruckHandler(d.TowTruckService)
	healthHandler := handler.NewHealthHandler(d.HealthDeps)

	e.GET("/health", healthHandler.Live)
	e.GET("/health/ready", healthHandler.Ready)

	// Public routes.
	e.POST("/api/register", authHandler.Register)
	e.POST("/api/login", authHandler.Login)

	// Authenticated routes.
	auth := e.Group("/api", middleware.Auth(d.AuthService))
	auth.POST("/logout", authHandler.Logout)
	auth.GET("/user_image/:id", authHandler.UserImage)

	auth.GET("/order/list", orderHandler.List)
	auth.GET("/order/:id", orderHandler.Get)
	auth.POST("/order/client", orderHandler.CreateClientOrder,
		middleware.RBAC(domain.RoleClient, domain.RoleAdmin))
	auth.POST("/order/dispatcher", orderHandler.AssignTowTruck,
		middleware.RBAC(domain.RoleDispatcher, domain.RoleAdmin))
	auth.POST("/order/status", orderHandler.UpdateStatus,
		middleware.RBAC(domain.RoleDispatcher, domain.RoleDriver, domain.RoleAdmin))

	auth.GET("/tow_truck/nearest", towTruckHandler.Nearest,
		middleware.RBAC(domain.RoleDispatcher, domain.RoleAdmin))

	return e
}

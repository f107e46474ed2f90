package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

// TowTruckHandler exposes tow-truck lookup routes.
type TowTruckHandler struct {
	towTruckService ports.TowTruckService
}

// NewTowTruckHandler creates a TowTruckHandler.
func NewTowTruckHandler(towTruckService ports.TowTruckService) *TowTruckHandler {
	return &TowTruckHandler{towTruckService: towTruckService}
}

// Nearest handles GET /api/tow_truck/nearest?order_id=N. It returns the
// closest available truck in the order's service area.
//
// @Summary      Nearest available tow truck
// @Tags         tow-trucks
// @Produce      json
// @Security     ApiKeyAuth
// @Param        order_id  query     int  true  "Order id"
// @Success      200       {object}  domain.TowTruck
// @Failure      404       {object}  map[string]string
// @Router       /api/tow_truck/nearest [get]
func (h *TowTruckHandler) Nearest(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.QueryParam("order_id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid or missing order_id")
	}

	truck, err := h.towTruckService.Nearest(c.Request().Context(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, truck)
}

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

// OrderHandler exposes order listing, creation, dispatch, and lifecycle routes.
type OrderHandler struct {
	orderService ports.OrderService
	log          zerolog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(orderService ports.OrderService, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{orderService: orderService, log: log}
}

// List handles GET /api/order/list.
//
// @Summary      List orders
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Param        status      query     string  false  "Filter by status"
// @Param        sort_by     query     string  false  "order_time or car_value"
// @Param        sort_order  query     string  false  "asc or desc"
// @Param        area        query     int     false  "Scope to a service area"
// @Param        page        query     int     false  "0-based page"
// @Param        page_size   query     int     false  "Page size (max 100)"
// @Success      200  {array}  domain.Order
// @Router       /api/order/list [get]
func (h *OrderHandler) List(c echo.Context) error {
	var q listOrdersQuery
	if err := c.Bind(&q); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid query parameters")
	}

	orders, err := h.orderService.List(c.Request().Context(), ports.ListOrdersInput{
		Status:    q.Status,
		AreaID:    q.Area,
		SortBy:    q.SortBy,
		SortOrder: q.SortOrder,
		Page:      q.Page,
		PageSize:  q.PageSize,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /api/order/:id.
//
// @Summary      Get an order
// @Tags         orders
// @Produce      json
// @Security     ApiKeyAuth
// @Param        id   path      int  true  "Order id"
// @Success      200  {object}  domain.Order
// @Failure      404  {object}  map[string]string
// @Router       /api/order/{id} [get]
func (h *OrderHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	order, err := h.orderService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// CreateClientOrder handles POST /api/order/client. The client identity comes
// from the session, not the request body.
//
// @Summary      Create a client order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      clientOrderRequest  true  "Order details"
// @Success      201   {object}  domain.Order
// @Failure      400   {object}  map[string]string
// @Router       /api/order/client [post]
func (h *OrderHandler) CreateClientOrder(c echo.Context) error {
	var req clientOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	userID, _ := c.Get("user_id").(int64)

	order, err := h.orderService.CreateClientOrder(c.Request().Context(), ports.CreateClientOrderInput{
		ClientID: userID,
		NodeID:   req.NodeID,
		CarValue: req.CarValue,
	})
	if err != nil {
		return err
	}
	metrics.OrdersCreatedTotal.Inc()

	h.log.Info().Int64("order_id", order.ID).Int64("client_id", userID).Msg("order created")

	return c.JSON(http.StatusCreated, order)
}

// AssignTowTruck handles POST /api/order/dispatcher.
//
// @Summary      Assign a tow truck to an order
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      dispatchOrderRequest  true  "Assignment"
// @Success      200   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/order/dispatcher [post]
func (h *OrderHandler) AssignTowTruck(c echo.Context) error {
	var req dispatchOrderRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.orderService.AssignTowTruck(c.Request().Context(), ports.AssignTowTruckInput{
		OrderID:      req.OrderID,
		DispatcherID: req.DispatcherID,
		TowTruckID:   req.TowTruckID,
		OrderTime:    req.OrderTime,
	})
	if err != nil {
		metrics.TruckAssignmentsTotal.WithLabelValues("failure").Inc()
		return err
	}
	metrics.TruckAssignmentsTotal.WithLabelValues("success").Inc()

	h.log.Info().
		Int64("order_id", req.OrderID).
		Int64("tow_truck_id", req.TowTruckID).
		Msg("tow truck assigned")

	return c.JSON(http.StatusOK, map[string]string{"message": "tow truck assigned"})
}

// UpdateStatus handles POST /api/order/status.
//
// @Summary      Update an order's status
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     ApiKeyAuth
// @Param        body  body      statusUpdateRequest  true  "Transition"
// @Success      200   {object}  map[string]string
// @Failure      422   {object}  map[string]string
// @Router       /api/order/status [post]
func (h *OrderHandler) UpdateStatus(c echo.Context) error {
	var req statusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	status := domain.OrderStatus(req.Status)
	if err := h.orderService.UpdateStatus(c.Request().Context(), req.OrderID, status); err != nil {
		return err
	}
	metrics.OrderStatusUpdatesTotal.WithLabelValues(req.Status).Inc()

	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

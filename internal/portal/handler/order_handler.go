package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/portal/authstate"
	"github.com/roadrescue/dispatch-system/internal/portal/client"
	"github.com/roadrescue/dispatch-system/internal/portal/session"
)

// OrderHandler serves the portal's order board and dispatch actions.
type OrderHandler struct {
	backend Backend
	log     zerolog.Logger
}

// NewOrderHandler creates an OrderHandler.
func NewOrderHandler(backend Backend, log zerolog.Logger) *OrderHandler {
	return &OrderHandler{backend: backend, log: log}
}

func resolveState(c echo.Context) *authstate.State {
	var state authstate.State
	state.Resolve(c.Request(), authstate.ReaderFunc(session.ReadRequest))
	return &state
}

// List handles GET /orders. Dispatchers see only their own area. A request
// whose cookie no longer decodes renders an empty board rather than an
// error page; the next navigation will bounce through the login redirect.
func (h *OrderHandler) List(c echo.Context) error {
	state := resolveState(c)
	if state.Phase() != authstate.PhaseAuthenticated {
		return c.JSON(http.StatusOK, []*domain.Order{})
	}

	orders, err := h.backend.ListOrders(c.Request().Context(), state.Token(), state.DispatcherArea())
	if err != nil {
		return err
	}
	if orders == nil {
		orders = []*domain.Order{}
	}
	return c.JSON(http.StatusOK, orders)
}

// Get handles GET /orders/:id.
func (h *OrderHandler) Get(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	state := resolveState(c)
	if state.Phase() != authstate.PhaseAuthenticated {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}

	order, err := h.backend.GetOrder(c.Request().Context(), state.Token(), orderID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, order)
}

// Dispatch handles POST /orders/:id/dispatch. It finds the nearest available
// truck for the order and assigns it on behalf of the signed-in dispatcher.
func (h *OrderHandler) Dispatch(c echo.Context) error {
	orderID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid order id")
	}

	state := resolveState(c)
	user := state.User()
	if user == nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "no session")
	}
	if user.Role != domain.RoleDispatcher || user.Dispatcher == nil {
		return domain.ErrForbidden
	}

	ctx := c.Request().Context()
	token := state.Token()

	order, err := h.backend.GetOrder(ctx, token, orderID)
	if err != nil {
		return err
	}

	truck, err := h.backend.NearestTowTruck(ctx, token, order.ID)
	if err != nil {
		return err
	}

	err = h.backend.ArrangeTowTruck(ctx, token, client.ArrangeInput{
		OrderID:      order.ID,
		DispatcherID: user.Dispatcher.DispatcherID,
		TowTruckID:   truck.ID,
		OrderTime:    time.Now().UTC(),
	})
	if err != nil {
		return err
	}

	h.log.Info().
		Int64("order_id", order.ID).
		Int64("tow_truck_id", truck.ID).
		Int64("dispatcher_id", user.Dispatcher.DispatcherID).
		Msg("order dispatched")

	return c.JSON(http.StatusOK, map[string]int64{
		"order_id":     order.ID,
		"tow_truck_id": truck.ID,
	})
}

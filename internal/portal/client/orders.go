package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// ListOrders fetches the dispatch work queue. The portal's order board only
// ever shows pending work in arrival order, so the status and sort
// parameters are fixed here rather than taken from the caller. area, when
// non-nil, scopes the list to a dispatcher's service area.
func (c *Client) ListOrders(ctx context.Context, token string, area *int64) ([]*domain.Order, error) {
	query := url.Values{}
	query.Set("status", string(domain.OrderPending))
	query.Set("sort_by", "order_time")
	query.Set("sort_order", "asc")
	if area != nil {
		query.Set("area", strconv.FormatInt(*area, 10))
	}

	var orders []*domain.Order
	if err := c.doJSON(ctx, "order_list", http.MethodGet, "/api/order/list", query, token, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// GetOrder fetches a single order by id.
func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (*domain.Order, error) {
	var order domain.Order
	err := c.doJSON(ctx, "order_get", http.MethodGet, "/api/order/"+strconv.FormatInt(orderID, 10), nil, token, nil, &order)
	if err != nil {
		var reqErr *RequestError
		if errors.As(err, &reqErr) && reqErr.StatusCode == http.StatusNotFound {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

// ArrangeInput carries a dispatcher's truck assignment.
type ArrangeInput struct {
	OrderID      int64     `json:"order_id"`
	DispatcherID int64     `json:"dispatcher_id"`
	TowTruckID   int64     `json:"tow_truck_id"`
	OrderTime    time.Time `json:"order_time"`
}

// ArrangeTowTruck assigns a truck to an order. The call runs under the
// client's arrange timeout and is not retried: a duplicate submission could
// double-book the truck.
func (c *Client) ArrangeTowTruck(ctx context.Context, token string, in ArrangeInput) error {
	ctx, cancel := context.WithTimeout(ctx, c.arrangeTimeout)
	defer cancel()

	return c.doJSON(ctx, "order_dispatch", http.MethodPost, "/api/order/dispatcher", nil, token, in, nil)
}

// UpdateOrderStatus moves an order through its lifecycle.
func (c *Client) UpdateOrderStatus(ctx context.Context, token string, orderID int64, status domain.OrderStatus) error {
	body := map[string]any{"order_id": orderID, "status": status}
	return c.doJSON(ctx, "order_status", http.MethodPost, "/api/order/status", nil, token, body, nil)
}

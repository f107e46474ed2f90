package client

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// NearestTowTruck returns the closest available truck for an order.
func (c *Client) NearestTowTruck(ctx context.Context, token string, orderID int64) (*domain.TowTruck, error) {
	query := url.Values{}
	query.Set("order_id", strconv.FormatInt(orderID, 10))

	var truck domain.TowTruck
	if err := c.doJSON(ctx, "tow_truck_nearest", http.MethodGet, "/api/tow_truck/nearest", query, token, nil, &truck); err != nil {
		return nil, err
	}
	return &truck, nil
}

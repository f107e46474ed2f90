package handler

import "time"

// listOrdersQuery binds the query string of GET /api/order/list.
type listOrdersQuery struct {
	Status    string `query:"status"`
	SortBy    string `query:"sort_by"`
	SortOrder string `query:"sort_order"`
	Area      *int64 `query:"area"`
	Page      int    `query:"page"`
	PageSize  int    `query:"page_size"`
}

// clientOrderRequest is the payload for POST /api/order/client.
type clientOrderRequest struct {
	NodeID   int64   `json:"node_id" validate:"required"`
	CarValue float64 `json:"car_value" validate:"required,gt=0"`
}

// dispatchOrderRequest is the payload for POST /api/order/dispatcher.
type dispatchOrderRequest struct {
	OrderID      int64     `json:"order_id" validate:"required"`
	DispatcherID int64     `json:"dispatcher_id" validate:"required"`
	TowTruckID   int64     `json:"tow_truck_id" validate:"required"`
	OrderTime    time.Time `json:"order_time" validate:"required"`
}

// statusUpdateRequest is the payload for POST /api/order/status.
type statusUpdateRequest struct {
	OrderID int64  `json:"order_id" validate:"required"`
	Status  string `json:"status" validate:"required,oneof=pending dispatched in_progress completed canceled"`
}

package ports

import (
	"context"
	"time"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// ListOrdersFilter carries all query parameters for listing orders.
type ListOrdersFilter struct {
	Status    string // optional: filter by order status
	AreaID    *int64 // optional: scope to a dispatcher area
	SortBy    string // "order_time" or "car_value"
	SortOrder string // "asc" or "desc"
	Page      int    // 0-based
	PageSize  int
}

// DispatchUpdate is the set of fields written when a tow truck is assigned.
type DispatchUpdate struct {
	DispatcherID       int64
	DispatcherUserID   int64
	DispatcherUsername string
	TowTruckID         int64
	DriverUserID       int64
	DriverUsername     string
	OrderTime          time.Time
}

// OrderRepository defines persistence operations for orders.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	FindByID(ctx context.Context, id int64) (*domain.Order, error)
	List(ctx context.Context, filter ListOrdersFilter) ([]*domain.Order, error)
	ApplyDispatch(ctx context.Context, orderID int64, upd DispatchUpdate) error
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, completedAt *time.Time) error
	// AreaIDForNode resolves which service area a map node belongs to.
	AreaIDForNode(ctx context.Context, nodeID int64) (int64, error)
}

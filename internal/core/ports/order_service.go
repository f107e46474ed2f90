package ports

import (
	"context"
	"time"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// ListOrdersInput carries the list parameters accepted from the transport layer.
type ListOrdersInput struct {
	Status    string
	AreaID    *int64
	SortBy    string
	SortOrder string
	Page      int
	PageSize  int
}

// CreateClientOrderInput creates a new pending order for a client.
type CreateClientOrderInput struct {
	ClientID int64
	NodeID   int64
	CarValue float64
}

// AssignTowTruckInput carries a dispatcher's truck assignment.
type AssignTowTruckInput struct {
	OrderID      int64
	DispatcherID int64
	TowTruckID   int64
	OrderTime    time.Time
}

// OrderService defines use-case operations for orders.
type OrderService interface {
	List(ctx context.Context, in ListOrdersInput) ([]*domain.Order, error)
	Get(ctx context.Context, id int64) (*domain.Order, error)
	CreateClientOrder(ctx context.Context, in CreateClientOrderInput) (*domain.Order, error)
	AssignTowTruck(ctx context.Context, in AssignTowTruckInput) error
	UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error
}

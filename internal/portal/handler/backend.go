package handler

import (
	"context"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/portal/client"
)

// Backend is the slice of the dispatch API client the portal handlers use.
// *client.Client satisfies it; tests substitute stubs.
type Backend interface {
	Login(ctx context.Context, username, password string) (*domain.SessionUser, error)
	Logout(ctx context.Context, token string) error
	UserImage(ctx context.Context, token string, userID int64) ([]byte, error)

	ListOrders(ctx context.Context, token string, area *int64) ([]*domain.Order, error)
	GetOrder(ctx context.Context, token string, orderID int64) (*domain.Order, error)
	NearestTowTruck(ctx context.Context, token string, orderID int64) (*domain.TowTruck, error)
	ArrangeTowTruck(ctx context.Context, token string, in client.ArrangeInput) error
}

package ports

import (
	"context"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// TowTruckService locates trucks for orders.
type TowTruckService interface {
	// Nearest returns the closest available truck in the order's area.
	Nearest(ctx context.Context, orderID int64) (*domain.TowTruck, error)
}

package ports

import (
	"context"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// TowTruckRepository defines persistence operations for tow trucks.
type TowTruckRepository interface {
	FindByID(ctx context.Context, id int64) (*domain.TowTruck, error)
	ListAvailableByArea(ctx context.Context, areaID int64) ([]*domain.TowTruck, error)
	UpdateStatus(ctx context.Context, id int64, status domain.TowTruckStatus) error
}

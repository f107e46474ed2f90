package service

import (
	"context"
	"fmt"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

// TowTruckService locates trucks for orders. Nearest is node-id distance
// within the order's area; full road-graph routing belongs to the routing
// service, not this API.
type TowTruckService struct {
	trucks ports.TowTruckRepository
	orders ports.OrderRepository
}

func NewTowTruckService(trucks ports.TowTruckRepository, orders ports.OrderRepository) *TowTruckService {
	return &TowTruckService{trucks: trucks, orders: orders}
}

func (s *TowTruckService) Nearest(ctx context.Context, orderID int64) (*domain.TowTruck, error) {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return nil, fmt.Errorf("nearest tow truck: %w", err)
	}

	candidates, err := s.trucks.ListAvailableByArea(ctx, order.AreaID)
	if err != nil {
		return nil, fmt.Errorf("nearest tow truck: %w", err)
	}
	if len(candidates) == 0 {
		return nil, domain.ErrNoAvailableTruck
	}

	best := candidates[0]
	bestDist := nodeDistance(best.NodeID, order.NodeID)
	for _, t := range candidates[1:] {
		if d := nodeDistance(t.NodeID, order.NodeID); d < bestDist {
			best, bestDist = t, d
		}
	}
	return best, nil
}

func nodeDistance(a, b int64) int64 {
	if a > b {
		return a - b
	}
	return b - a
}

var _ ports.TowTruckService = (*TowTruckService)(nil)

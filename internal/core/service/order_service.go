package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// OrderService implements order use cases.
type OrderService struct {
	orders ports.OrderRepository
	trucks ports.TowTruckRepository
	users  ports.AuthRepository
	log    zerolog.Logger
}

func NewOrderService(orders ports.OrderRepository, trucks ports.TowTruckRepository, users ports.AuthRepository, log zerolog.Logger) *OrderService {
	return &OrderService{orders: orders, trucks: trucks, users: users, log: log}
}

func (s *OrderService) List(ctx context.Context, in ports.ListOrdersInput) ([]*domain.Order, error) {
	filter := ports.ListOrdersFilter{
		Status:    in.Status,
		AreaID:    in.AreaID,
		SortBy:    sanitizeSortBy(in.SortBy),
		SortOrder: sanitizeSortOrder(in.SortOrder),
		Page:      in.Page,
		PageSize:  in.PageSize,
	}
	if filter.Page < 0 {
		filter.Page = 0
	}
	if filter.PageSize <= 0 {
		filter.PageSize = defaultPageSize
	}
	if filter.PageSize > maxPageSize {
		filter.PageSize = maxPageSize
	}
	return s.orders.List(ctx, filter)
}

func (s *OrderService) Get(ctx context.Context, id int64) (*domain.Order, error) {
	return s.orders.FindByID(ctx, id)
}

func (s *OrderService) CreateClientOrder(ctx context.Context, in ports.CreateClientOrderInput) (*domain.Order, error) {
	client, err := s.users.FindUserByID(ctx, in.ClientID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	areaID, err := s.orders.AreaIDForNode(ctx, in.NodeID)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	order := &domain.Order{
		Status:         domain.OrderPending,
		NodeID:         in.NodeID,
		AreaID:         areaID,
		CarValue:       in.CarValue,
		ClientID:       in.ClientID,
		ClientUsername: client.Username,
		OrderTime:      time.Now().UTC(),
	}
	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.log.Info().Int64("order_id", created.ID).Int64("client_id", in.ClientID).Msg("order created")
	return created, nil
}

// AssignTowTruck moves a pending order to dispatched, records the dispatcher
// and the truck's driver on the order, and marks the truck busy.
func (s *OrderService) AssignTowTruck(ctx context.Context, in ports.AssignTowTruckInput) error {
	order, err := s.orders.FindByID(ctx, in.OrderID)
	if err != nil {
		return fmt.Errorf("assign tow truck: %w", err)
	}
	if !order.Status.CanTransitionTo(domain.OrderDispatched) {
		return fmt.Errorf("assign tow truck: %w (from %s)", domain.ErrInvalidTransition, order.Status)
	}

	truck, err := s.trucks.FindByID(ctx, in.TowTruckID)
	if err != nil {
		return fmt.Errorf("assign tow truck: %w", err)
	}
	if truck.Status != domain.TruckAvailable {
		return fmt.Errorf("assign tow truck: %w", domain.ErrNoAvailableTruck)
	}

	dispatcher, err := s.users.FindDispatcherByID(ctx, in.DispatcherID)
	if err != nil {
		return fmt.Errorf("assign tow truck: %w", err)
	}
	dispatcherUser, err := s.users.FindUserByID(ctx, dispatcher.UserID)
	if err != nil {
		return fmt.Errorf("assign tow truck: %w", err)
	}
	driverUser, err := s.users.FindUserByID(ctx, truck.DriverUserID)
	if err != nil {
		return fmt.Errorf("assign tow truck: %w", err)
	}

	upd := ports.DispatchUpdate{
		DispatcherID:       dispatcher.ID,
		DispatcherUserID:   dispatcher.UserID,
		DispatcherUsername: dispatcherUser.Username,
		TowTruckID:         truck.ID,
		DriverUserID:       driverUser.ID,
		DriverUsername:     driverUser.Username,
		OrderTime:          in.OrderTime,
	}
	if err := s.orders.ApplyDispatch(ctx, order.ID, upd); err != nil {
		return fmt.Errorf("assign tow truck: %w", err)
	}
	if err := s.trucks.UpdateStatus(ctx, truck.ID, domain.TruckBusy); err != nil {
		s.log.Error().Err(err).Int64("tow_truck_id", truck.ID).Msg("failed to mark truck busy")
	}

	s.log.Info().
		Int64("order_id", order.ID).
		Int64("dispatcher_id", dispatcher.ID).
		Int64("tow_truck_id", truck.ID).
		Msg("tow truck assigned")
	return nil
}

// UpdateStatus applies a validated lifecycle transition. Reaching completed
// stamps completed_time; terminal states free the assigned truck.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus) error {
	order, err := s.orders.FindByID(ctx, orderID)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if !order.Status.CanTransitionTo(status) {
		return fmt.Errorf("update status: %w (from %s to %s)", domain.ErrInvalidTransition, order.Status, status)
	}

	var completedAt *time.Time
	if status == domain.OrderCompleted {
		now := time.Now().UTC()
		completedAt = &now
	}
	if err := s.orders.UpdateStatus(ctx, orderID, status, completedAt); err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if (status == domain.OrderCompleted || status == domain.OrderCanceled) && order.TowTruckID != 0 {
		if err := s.trucks.UpdateStatus(ctx, order.TowTruckID, domain.TruckAvailable); err != nil {
			s.log.Error().Err(err).Int64("tow_truck_id", order.TowTruckID).Msg("failed to free truck")
		}
	}
	return nil
}

func sanitizeSortBy(sortBy string) string {
	switch sortBy {
	case "order_time", "car_value":
		return sortBy
	default:
		return "order_time"
	}
}

func sanitizeSortOrder(order string) string {
	if order == "desc" {
		return "desc"
	}
	return "asc"
}

var _ ports.OrderService = (*OrderService)(nil)

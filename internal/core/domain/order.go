package domain

import "time"

// OrderStatus represents the lifecycle state of a towing order.
type OrderStatus string

const (
	OrderPending    OrderStatus = "pending"
	OrderDispatched OrderStatus = "dispatched"
	OrderInProgress OrderStatus = "in_progress"
	OrderCompleted  OrderStatus = "completed"
	OrderCanceled   OrderStatus = "canceled"
)

// validTransitions defines the allowed state machine transitions.
var validTransitions = map[OrderStatus][]OrderStatus{
	OrderPending:    {OrderDispatched, OrderCanceled},
	OrderDispatched: {OrderInProgress, OrderCanceled},
	OrderInProgress: {OrderCompleted, OrderCanceled},
}

// CanTransitionTo reports whether a transition from the current status to
// next is valid.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Order is a towing service request tracked from creation to completion.
// Usernames are denormalized onto the record so list views need no joins.
type Order struct {
	ID                 int64       `json:"id" bson:"_id"`
	Status             OrderStatus `json:"status" bson:"status"`
	NodeID             int64       `json:"node_id" bson:"node_id"`
	AreaID             int64       `json:"area_id" bson:"area_id"`
	TowTruckID         int64       `json:"tow_truck_id" bson:"tow_truck_id,omitempty"`
	CarValue           float64     `json:"car_value" bson:"car_value"`
	ClientID           int64       `json:"client_id" bson:"client_id"`
	ClientUsername     string      `json:"client_username" bson:"client_username"`
	DispatcherID       int64       `json:"dispatcher_id" bson:"dispatcher_id,omitempty"`
	DispatcherUserID   int64       `json:"dispatcher_user_id" bson:"dispatcher_user_id,omitempty"`
	DispatcherUsername string      `json:"dispatcher_username" bson:"dispatcher_username,omitempty"`
	DriverUserID       int64       `json:"driver_user_id" bson:"driver_user_id,omitempty"`
	DriverUsername     string      `json:"driver_username" bson:"driver_username,omitempty"`
	OrderTime          time.Time   `json:"order_time" bson:"order_time"`
	CompletedTime      *time.Time  `json:"completed_time" bson:"completed_time,omitempty"`
}

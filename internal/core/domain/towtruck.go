package domain

// TowTruckStatus is the availability state of a truck.
type TowTruckStatus string

const (
	TruckAvailable TowTruckStatus = "available"
	TruckBusy      TowTruckStatus = "busy"
)

// TowTruck is a dispatchable vehicle positioned at a map node.
type TowTruck struct {
	ID           int64          `json:"id" bson:"_id"`
	Status       TowTruckStatus `json:"status" bson:"status"`
	NodeID       int64          `json:"node_id" bson:"node_id"`
	AreaID       int64          `json:"area_id" bson:"area_id"`
	DriverUserID int64          `json:"driver_user_id" bson:"driver_user_id"`
}

package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

const collectionTowTrucks = "tow_trucks"

// TowTruckRepository persists tow trucks.
type TowTruckRepository struct {
	col *mongo.Collection
}

func NewTowTruckRepository(db *mongo.Database) *TowTruckRepository {
	return &TowTruckRepository{col: db.Collection(collectionTowTrucks)}
}

func (r *TowTruckRepository) FindByID(ctx context.Context, id int64) (*domain.TowTruck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var t domain.TowTruck
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrTowTruckNotFound
		}
		return nil, fmt.Errorf("find tow truck: %w", err)
	}
	return &t, nil
}

func (r *TowTruckRepository) ListAvailableByArea(ctx context.Context, areaID int64) ([]*domain.TowTruck, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{"area_id": areaID, "status": domain.TruckAvailable})
	if err != nil {
		return nil, fmt.Errorf("list tow trucks: %w", err)
	}
	defer cur.Close(ctx)

	var trucks []*domain.TowTruck
	if err := cur.All(ctx, &trucks); err != nil {
		return nil, fmt.Errorf("decode tow trucks: %w", err)
	}
	return trucks, nil
}

func (r *TowTruckRepository) UpdateStatus(ctx context.Context, id int64, status domain.TowTruckStatus) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return fmt.Errorf("update tow truck status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrTowTruckNotFound
	}
	return nil
}

package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

const (
	collectionOrders = "orders"
	collectionNodes  = "nodes"
)

// OrderRepository persists orders and the node-to-area mapping.
type OrderRepository struct {
	db *mongo.Database
}

func NewOrderRepository(db *mongo.Database) *OrderRepository {
	return &OrderRepository{db: db}
}

func (r *OrderRepository) Create(ctx context.Context, order *domain.Order) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionOrders)
	if err != nil {
		return nil, err
	}
	created := *order
	created.ID = id

	if _, err := r.db.Collection(collectionOrders).InsertOne(ctx, created); err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}
	return &created, nil
}

func (r *OrderRepository) FindByID(ctx context.Context, id int64) (*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var o domain.Order
	err := r.db.Collection(collectionOrders).FindOne(ctx, bson.M{"_id": id}).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, fmt.Errorf("find order: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) List(ctx context.Context, filter ports.ListOrdersFilter) ([]*domain.Order, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.Status != "" {
		query["status"] = filter.Status
	}
	if filter.AreaID != nil {
		query["area_id"] = *filter.AreaID
	}

	direction := 1
	if filter.SortOrder == "desc" {
		direction = -1
	}
	opts := options.Find().
		SetSort(bson.D{{Key: filter.SortBy, Value: direction}}).
		SetSkip(int64(filter.Page * filter.PageSize)).
		SetLimit(int64(filter.PageSize))

	cur, err := r.db.Collection(collectionOrders).Find(ctx, query, opts)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer cur.Close(ctx)

	var orders []*domain.Order
	if err := cur.All(ctx, &orders); err != nil {
		return nil, fmt.Errorf("decode orders: %w", err)
	}
	return orders, nil
}

func (r *OrderRepository) ApplyDispatch(ctx context.Context, orderID int64, upd ports.DispatchUpdate) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.db.Collection(collectionOrders).UpdateOne(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": bson.M{
			"status":              domain.OrderDispatched,
			"dispatcher_id":       upd.DispatcherID,
			"dispatcher_user_id":  upd.DispatcherUserID,
			"dispatcher_username": upd.DispatcherUsername,
			"tow_truck_id":        upd.TowTruckID,
			"driver_user_id":      upd.DriverUserID,
			"driver_username":     upd.DriverUsername,
			"order_time":          upd.OrderTime,
		}},
	)
	if err != nil {
		return fmt.Errorf("apply dispatch: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID int64, status domain.OrderStatus, completedAt *time.Time) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	set := bson.M{"status": status}
	if completedAt != nil {
		set["completed_time"] = *completedAt
	}
	res, err := r.db.Collection(collectionOrders).UpdateOne(
		ctx,
		bson.M{"_id": orderID},
		bson.M{"$set": set},
	)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *OrderRepository) AreaIDForNode(ctx context.Context, nodeID int64) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var node struct {
		AreaID int64 `bson:"area_id"`
	}
	err := r.db.Collection(collectionNodes).FindOne(ctx, bson.M{"_id": nodeID}).Decode(&node)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, fmt.Errorf("node %d: %w", nodeID, domain.ErrOrderNotFound)
		}
		return 0, fmt.Errorf("find node: %w", err)
	}
	return node.AreaID, nil
}

// EnsureIndexes creates the indexes the order listing relies on.
func (r *OrderRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "order_time", Value: 1}}},
		{Keys: bson.D{{Key: "area_id", Value: 1}}},
	}
	_, err := r.db.Collection(collectionOrders).Indexes().CreateMany(ctx, indexes)
	return err
}

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
)

const (
	collectionUsers       = "users"
	collectionDispatchers = "dispatchers"
	collectionDrivers     = "drivers"
	collectionSessions    = "sessions"
)

// AuthRepository persists users, dispatcher/driver records, and sessions.
type AuthRepository struct {
	db *mongo.Database
}

func NewAuthRepository(db *mongo.Database) *AuthRepository {
	return &AuthRepository{db: db}
}

func (r *AuthRepository) FindUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.db.Collection(collectionUsers).FindOne(ctx, bson.M{"username": username}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *AuthRepository) FindUserByID(ctx context.Context, id int64) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var u domain.User
	err := r.db.Collection(collectionUsers).FindOne(ctx, bson.M{"_id": id}).Decode(&u)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return &u, nil
}

func (r *AuthRepository) CreateUser(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionUsers)
	if err != nil {
		return nil, err
	}
	created := *user
	created.ID = id

	if _, err := r.db.Collection(collectionUsers).InsertOne(ctx, created); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, domain.ErrUserExists
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return &created, nil
}

func (r *AuthRepository) CreateDispatcher(ctx context.Context, userID, areaID int64) (*domain.Dispatcher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionDispatchers)
	if err != nil {
		return nil, err
	}
	d := &domain.Dispatcher{ID: id, UserID: userID, AreaID: areaID}
	if _, err := r.db.Collection(collectionDispatchers).InsertOne(ctx, d); err != nil {
		return nil, fmt.Errorf("insert dispatcher: %w", err)
	}
	return d, nil
}

func (r *AuthRepository) CreateDriver(ctx context.Context, userID int64) (*domain.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	id, err := nextSequence(ctx, r.db, collectionDrivers)
	if err != nil {
		return nil, err
	}
	d := &domain.Driver{ID: id, UserID: userID}
	if _, err := r.db.Collection(collectionDrivers).InsertOne(ctx, d); err != nil {
		return nil, fmt.Errorf("insert driver: %w", err)
	}
	return d, nil
}

func (r *AuthRepository) FindDispatcherByID(ctx context.Context, id int64) (*domain.Dispatcher, error) {
	return r.findDispatcher(ctx, bson.M{"_id": id})
}

func (r *AuthRepository) FindDispatcherByUserID(ctx context.Context, userID int64) (*domain.Dispatcher, error) {
	return r.findDispatcher(ctx, bson.M{"user_id": userID})
}

func (r *AuthRepository) findDispatcher(ctx context.Context, filter bson.M) (*domain.Dispatcher, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Dispatcher
	err := r.db.Collection(collectionDispatchers).FindOne(ctx, filter).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find dispatcher: %w", err)
	}
	return &d, nil
}

func (r *AuthRepository) FindDriverByUserID(ctx context.Context, userID int64) (*domain.Driver, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var d domain.Driver
	err := r.db.Collection(collectionDrivers).FindOne(ctx, bson.M{"user_id": userID}).Decode(&d)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("find driver: %w", err)
	}
	return &d, nil
}

func (r *AuthRepository) CreateSession(ctx context.Context, session *domain.Session) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	if _, err := r.db.Collection(collectionSessions).InsertOne(ctx, session); err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *AuthRepository) FindSession(ctx context.Context, token string) (*domain.Session, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var s domain.Session
	err := r.db.Collection(collectionSessions).FindOne(ctx, bson.M{"token": token}).Decode(&s)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSessionInvalid
		}
		return nil, fmt.Errorf("find session: %w", err)
	}
	return &s, nil
}

func (r *AuthRepository) InvalidateSession(ctx context.Context, token string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.db.Collection(collectionSessions).UpdateOne(
		ctx,
		bson.M{"token": token},
		bson.M{"$set": bson.M{"is_valid": false}},
	)
	if err != nil {
		return fmt.Errorf("invalidate session: %w", err)
	}
	return nil
}

// EnsureIndexes creates the indexes the auth collections rely on.
func (r *AuthRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := r.db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return err
	}
	_, err = r.db.Collection(collectionSessions).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "token", Value: 1}},
	})
	return err
}

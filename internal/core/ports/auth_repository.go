package ports

import (
	"context"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// AuthRepository defines persistence for users, role records, and sessions.
type AuthRepository interface {
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	FindUserByID(ctx context.Context, id int64) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (*domain.User, error)

	CreateDispatcher(ctx context.Context, userID, areaID int64) (*domain.Dispatcher, error)
	CreateDriver(ctx context.Context, userID int64) (*domain.Driver, error)
	FindDispatcherByID(ctx context.Context, id int64) (*domain.Dispatcher, error)
	FindDispatcherByUserID(ctx context.Context, userID int64) (*domain.Dispatcher, error)
	FindDriverByUserID(ctx context.Context, userID int64) (*domain.Driver, error)

	CreateSession(ctx context.Context, session *domain.Session) error
	// FindSession returns the session row for token regardless of validity;
	// callers decide what an invalidated row means.
	FindSession(ctx context.Context, token string) (*domain.Session, error)
	InvalidateSession(ctx context.Context, token string) error
}

package ports

import (
	"context"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// RegisterInput carries the data needed to create an account. AreaID is
// required for the dispatcher role and ignored otherwise.
type RegisterInput struct {
	Username string
	Password string
	Role     domain.Role
	AreaID   *int64
}

// AuthService implements account registration and session lifecycle.
type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login exchanges credentials for a SessionUser whose role-specific
	// claims are populated from the dispatcher/driver records.
	Login(ctx context.Context, username, password string) (*domain.SessionUser, error)
	Logout(ctx context.Context, token string) error
	// ValidateSession checks token signature and server-side validity.
	ValidateSession(ctx context.Context, token string) (*domain.Session, error)
	ProfileImage(ctx context.Context, userID int64) ([]byte, error)
}

package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

// SessionCache abstracts the fast validity store (Redis) consulted before
// hitting the repository on every authenticated request.
type SessionCache interface {
	IsValid(ctx context.Context, token string) (bool, error)
	MarkValid(ctx context.Context, token string) error
	Invalidate(ctx context.Context, token string) error
}

// AuthService implements registration, login, logout, and session validation.
type AuthService struct {
	repo      ports.AuthRepository
	cache     SessionCache
	jwtSecret string
	tokenTTL  time.Duration
	log       zerolog.Logger
}

func NewAuthService(repo ports.AuthRepository, cache SessionCache, jwtSecret string, tokenTTL time.Duration, log zerolog.Logger) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = time.Hour
	}
	return &AuthService{repo: repo, cache: cache, jwtSecret: jwtSecret, tokenTTL: tokenTTL, log: log}
}

func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Password == "" || !in.Role.Valid() {
		return nil, domain.ErrInvalidCredentials
	}
	if in.Role == domain.RoleDispatcher && in.AreaID == nil {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	user := &domain.User{
		Username:     in.Username,
		PasswordHash: string(hash),
		Role:         in.Role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.repo.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}

	switch in.Role {
	case domain.RoleDispatcher:
		if _, err := s.repo.CreateDispatcher(ctx, created.ID, *in.AreaID); err != nil {
			return nil, err
		}
	case domain.RoleDriver:
		if _, err := s.repo.CreateDriver(ctx, created.ID); err != nil {
			return nil, err
		}
	}

	s.log.Info().Int64("user_id", created.ID).Str("role", string(created.Role)).Msg("user registered")
	return created, nil
}

// Login verifies credentials, mints a session token, persists the session
// row, and returns the SessionUser with role-specific claims attached.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.SessionUser, error) {
	if username == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.generateToken(user)
	if err != nil {
		return nil, err
	}

	session := &domain.Session{
		Token:     token,
		UserID:    user.ID,
		Role:      user.Role,
		IsValid:   true,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.CreateSession(ctx, session); err != nil {
		return nil, err
	}
	if err := s.cache.MarkValid(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session cache write failed")
	}

	su := &domain.SessionUser{
		UserID:       user.ID,
		UserName:     user.Username,
		SessionToken: token,
		Role:         user.Role,
	}
	switch user.Role {
	case domain.RoleDispatcher:
		d, err := s.repo.FindDispatcherByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		su.Dispatcher = &domain.DispatcherClaims{DispatcherID: d.ID, AreaID: d.AreaID}
	case domain.RoleDriver:
		d, err := s.repo.FindDriverByUserID(ctx, user.ID)
		if err != nil {
			return nil, err
		}
		su.Driver = &domain.DriverClaims{DriverID: d.ID}
	}

	s.log.Info().Int64("user_id", user.ID).Str("role", string(user.Role)).Msg("login")
	return su, nil
}

// Logout invalidates the server-side session. Cache invalidation happens
// first so stale cache entries cannot outlive the repository row.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if err := s.cache.Invalidate(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session cache invalidate failed")
	}
	return s.repo.InvalidateSession(ctx, token)
}

// ValidateSession checks the token signature and expiry, then consults the
// cache and falls back to the repository.
func (s *AuthService) ValidateSession(ctx context.Context, token string) (*domain.Session, error) {
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil || !parsed.Valid {
		return nil, domain.ErrSessionInvalid
	}

	if ok, err := s.cache.IsValid(ctx, token); err == nil && ok {
		return sessionFromClaims(token, claims), nil
	} else if err != nil {
		s.log.Warn().Err(err).Msg("session cache read failed, falling back to store")
	}

	session, err := s.repo.FindSession(ctx, token)
	if err != nil || !session.IsValid {
		return nil, domain.ErrSessionInvalid
	}
	if err := s.cache.MarkValid(ctx, token); err != nil {
		s.log.Warn().Err(err).Msg("session cache write failed")
	}
	return session, nil
}

func (s *AuthService) ProfileImage(ctx context.Context, userID int64) ([]byte, error) {
	user, err := s.repo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(user.ProfileImage) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return user.ProfileImage, nil
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"jti":     uuid.NewString(),
		"user_id": user.ID,
		"role":    string(user.Role),
		"exp":     time.Now().Add(s.tokenTTL).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

// sessionFromClaims rebuilds a Session from verified JWT claims on a cache
// hit, avoiding a repository round trip.
func sessionFromClaims(token string, claims jwt.MapClaims) *domain.Session {
	session := &domain.Session{Token: token, IsValid: true}
	if v, ok := claims["user_id"].(float64); ok {
		session.UserID = int64(v)
	}
	if v, ok := claims["role"].(string); ok {
		session.Role = domain.Role(v)
	}
	return session
}

var _ ports.AuthService = (*AuthService)(nil)

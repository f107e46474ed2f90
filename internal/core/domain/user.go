package domain

import (
	"encoding/json"
	"fmt"
	"time"
)

// Role identifies what kind of actor a user is. The set is closed: adding a
// role means touching every switch that branches on it.
type Role string

const (
	RoleClient     Role = "client"
	RoleDispatcher Role = "dispatcher"
	RoleDriver     Role = "driver"
	RoleAdmin      Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleClient, RoleDispatcher, RoleDriver, RoleAdmin:
		return true
	}
	return false
}

// User models a stored account on the dispatch API side.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         Role      `json:"role" bson:"role"`
	ProfileImage []byte    `json:"-" bson:"profile_image,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// Session is a server-side session row. A token stays in the store after
// logout with IsValid false, so reuse is detectable.
type Session struct {
	Token     string    `bson:"token"`
	UserID    int64     `bson:"user_id"`
	Role      Role      `bson:"role"`
	IsValid   bool      `bson:"is_valid"`
	CreatedAt time.Time `bson:"created_at"`
}

// DispatcherClaims are the fields only a dispatcher session carries.
type DispatcherClaims struct {
	DispatcherID int64
	AreaID       int64
}

// DriverClaims are the fields only a driver session carries.
type DriverClaims struct {
	DriverID int64
}

// SessionUser is the authenticated-user record exchanged between the dispatch
// API, the session cookie, and the portal. It is a tagged union keyed by
// Role: Dispatcher is non-nil iff Role is dispatcher, Driver non-nil iff Role
// is driver. The JSON form is flat (dispatcher_id, area_id, driver_id at the
// top level) to match the API wire format.
type SessionUser struct {
	UserID       int64
	UserName     string
	SessionToken string
	Role         Role
	Dispatcher   *DispatcherClaims
	Driver       *DriverClaims
}

// Validate enforces the role/claims invariant.
func (u *SessionUser) Validate() error {
	if !u.Role.Valid() {
		return fmt.Errorf("%w: unknown role %q", ErrMalformedSession, u.Role)
	}
	switch u.Role {
	case RoleDispatcher:
		if u.Dispatcher == nil {
			return fmt.Errorf("%w: dispatcher session without dispatcher claims", ErrMalformedSession)
		}
		if u.Driver != nil {
			return fmt.Errorf("%w: dispatcher session with driver claims", ErrMalformedSession)
		}
	case RoleDriver:
		if u.Driver == nil {
			return fmt.Errorf("%w: driver session without driver claims", ErrMalformedSession)
		}
		if u.Dispatcher != nil {
			return fmt.Errorf("%w: driver session with dispatcher claims", ErrMalformedSession)
		}
	default:
		if u.Dispatcher != nil || u.Driver != nil {
			return fmt.Errorf("%w: role %s carries no extra claims", ErrMalformedSession, u.Role)
		}
	}
	return nil
}

// sessionUserWire is the flat JSON shape. Role-specific keys are pointers so
// they are omitted entirely for roles that do not declare them.
type sessionUserWire struct {
	UserID       int64  `json:"user_id"`
	UserName     string `json:"user_name"`
	SessionToken string `json:"session_token"`
	Role         Role   `json:"role"`
	DispatcherID *int64 `json:"dispatcher_id,omitempty"`
	AreaID       *int64 `json:"area_id,omitempty"`
	DriverID     *int64 `json:"driver_id,omitempty"`
}

func (u SessionUser) MarshalJSON() ([]byte, error) {
	w := sessionUserWire{
		UserID:       u.UserID,
		UserName:     u.UserName,
		SessionToken: u.SessionToken,
		Role:         u.Role,
	}
	if u.Role == RoleDispatcher && u.Dispatcher != nil {
		w.DispatcherID = &u.Dispatcher.DispatcherID
		w.AreaID = &u.Dispatcher.AreaID
	}
	if u.Role == RoleDriver && u.Driver != nil {
		w.DriverID = &u.Driver.DriverID
	}
	return json.Marshal(w)
}

func (u *SessionUser) UnmarshalJSON(data []byte) error {
	var w sessionUserWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	*u = SessionUser{
		UserID:       w.UserID,
		UserName:     w.UserName,
		SessionToken: w.SessionToken,
		Role:         w.Role,
	}
	switch w.Role {
	case RoleDispatcher:
		if w.DispatcherID != nil && w.AreaID != nil {
			u.Dispatcher = &DispatcherClaims{DispatcherID: *w.DispatcherID, AreaID: *w.AreaID}
		}
	case RoleDriver:
		if w.DriverID != nil {
			u.Driver = &DriverClaims{DriverID: *w.DriverID}
		}
	}
	return nil
}

// Dispatcher links a user account to the geographic area it manages.
type Dispatcher struct {
	ID     int64 `bson:"_id"`
	UserID int64 `bson:"user_id"`
	AreaID int64 `bson:"area_id"`
}

// Driver links a user account to its driver record.
type Driver struct {
	ID     int64 `bson:"_id"`
	UserID int64 `bson:"user_id"`
}

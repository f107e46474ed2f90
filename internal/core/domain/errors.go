package domain

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserExists         = errors.New("user already exists")
	ErrUserNotFound       = errors.New("user not found")
	ErrSessionInvalid     = errors.New("invalid or expired session")
	ErrMalformedSession   = errors.New("malformed session record")
	ErrOrderNotFound      = errors.New("order not found")
	ErrTowTruckNotFound   = errors.New("tow truck not found")
	ErrNoAvailableTruck   = errors.New("no available tow truck")
	ErrInvalidTransition  = errors.New("invalid status transition")
	ErrForbidden          = errors.New("access forbidden")
)

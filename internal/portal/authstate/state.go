// Package authstate tracks who is signed in for the duration of one portal
// request. A State starts unknown, resolves against the session cookie once,
// and then answers identity questions without re-reading the cookie.
// Handlers receive the State they need instead of reaching into globals.
package authstate

import (
	"net/http"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

// Phase is the resolution state of a request's identity.
type Phase int

const (
	// PhaseUnknown means the session cookie has not been consulted yet.
	PhaseUnknown Phase = iota
	// PhaseUnauthenticated means resolution ran and found no valid session.
	PhaseUnauthenticated
	// PhaseAuthenticated means a valid session payload was loaded.
	PhaseAuthenticated
)

// SessionReader decodes a session from an incoming request.
type SessionReader interface {
	Read(r *http.Request) (*domain.SessionUser, bool)
}

// ReaderFunc adapts a function to SessionReader.
type ReaderFunc func(r *http.Request) (*domain.SessionUser, bool)

// Read implements SessionReader.
func (f ReaderFunc) Read(r *http.Request) (*domain.SessionUser, bool) {
	return f(r)
}

// State holds the resolved identity for one request. The zero value is
// usable and starts in PhaseUnknown.
type State struct {
	phase Phase
	user  *domain.SessionUser
}

// Resolve consults reader once and moves the state out of PhaseUnknown.
// The login page renders identically for everyone, so it settles as
// signed-out without consulting the cookie.
func (s *State) Resolve(r *http.Request, reader SessionReader) {
	if s.phase != PhaseUnknown {
		return
	}
	if r.URL.Path == "/login" {
		s.phase = PhaseUnauthenticated
		return
	}

	user, ok := reader.Read(r)
	if !ok {
		s.phase = PhaseUnauthenticated
		return
	}
	s.SetUserInfo(user)
}

// SetUserInfo installs a session payload, e.g. right after login.
func (s *State) SetUserInfo(user *domain.SessionUser) {
	s.user = user
	s.phase = PhaseAuthenticated
}

// RemoveUserInfo drops the identity, e.g. on logout.
func (s *State) RemoveUserInfo() {
	s.user = nil
	s.phase = PhaseUnauthenticated
}

// Phase reports the current resolution phase.
func (s *State) Phase() Phase {
	return s.phase
}

// User returns the session payload, or nil unless authenticated.
func (s *State) User() *domain.SessionUser {
	if s.phase != PhaseAuthenticated {
		return nil
	}
	return s.user
}

// Token returns the session token, or "" unless authenticated.
func (s *State) Token() string {
	if u := s.User(); u != nil {
		return u.SessionToken
	}
	return ""
}

// DispatcherArea returns the signed-in dispatcher's area id, or nil when the
// user is not a dispatcher.
func (s *State) DispatcherArea() *int64 {
	u := s.User()
	if u == nil || u.Role != domain.RoleDispatcher || u.Dispatcher == nil {
		return nil
	}
	area := u.Dispatcher.AreaID
	return &area
}

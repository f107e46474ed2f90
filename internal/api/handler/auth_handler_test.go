package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
	"github.com/roadrescue/dispatch-system/internal/core/ports"
)

type stubAuthService struct {
	user        *domain.User
	sessionUser *domain.SessionUser
	loginErr    error
	logoutCalls []string
	image       []byte
}

func (s *stubAuthService) Register(_ context.Context, in ports.RegisterInput) (*domain.User, error) {
	if s.user == nil {
		return nil, domain.ErrUserExists
	}
	return s.user, nil
}

func (s *stubAuthService) Login(_ context.Context, username, password string) (*domain.SessionUser, error) {
	if s.loginErr != nil {
		return nil, s.loginErr
	}
	return s.sessionUser, nil
}

func (s *stubAuthService) Logout(_ context.Context, token string) error {
	s.logoutCalls = append(s.logoutCalls, token)
	return nil
}

func (s *stubAuthService) ValidateSession(_ context.Context, token string) (*domain.Session, error) {
	return nil, domain.ErrSessionInvalid
}

func (s *stubAuthService) ProfileImage(_ context.Context, userID int64) ([]byte, error) {
	if s.image == nil {
		return nil, domain.ErrUserNotFound
	}
	return s.image, nil
}

func newJSONContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestRegisterCreatesUser(t *testing.T) {
	svc := &stubAuthService{user: &domain.User{ID: 7, Username: "ana", Role: domain.RoleClient}}
	h := NewAuthHandler(svc, zerolog.Nop())

	c, rec := newJSONContext(t, http.MethodPost, "/api/register",
		`{"username":"ana","password":"secret1","role":"client"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", rec.Code)
	}

	var resp registerResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.UserID != 7 || resp.Username != "ana" || resp.Role != "client" {
		t.Errorf("unexpected response: %+v", resp)
	}
}

func TestRegisterRejectsBadRole(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, zerolog.Nop())

	c, _ := newJSONContext(t, http.MethodPost, "/api/register",
		`{"username":"ana","password":"secret1","role":"superuser"}`)

	err := h.Register(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 HTTPError, got %v", err)
	}
}

func TestLoginReturnsFlatSessionPayload(t *testing.T) {
	areaID := int64(3)
	svc := &stubAuthService{sessionUser: &domain.SessionUser{
		UserID:       9,
		UserName:     "disp",
		SessionToken: "tok-9",
		Role:         domain.RoleDispatcher,
		Dispatcher:   &domain.DispatcherClaims{DispatcherID: 5, AreaID: areaID},
	}}
	h := NewAuthHandler(svc, zerolog.Nop())

	c, rec := newJSONContext(t, http.MethodPost, "/api/login",
		`{"username":"disp","password":"secret1"}`)

	if err := h.Login(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var payload map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if payload["session_token"] != "tok-9" {
		t.Errorf("session_token = %v, want tok-9", payload["session_token"])
	}
	if payload["dispatcher_id"] != float64(5) || payload["area_id"] != float64(3) {
		t.Errorf("dispatcher claims not flattened: %v", payload)
	}
	if _, ok := payload["driver_id"]; ok {
		t.Error("driver_id must be absent for dispatcher sessions")
	}
}

func TestLoginPropagatesCredentialError(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{loginErr: domain.ErrInvalidCredentials}, zerolog.Nop())

	c, _ := newJSONContext(t, http.MethodPost, "/api/login",
		`{"username":"ana","password":"wrong1"}`)

	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogoutAlwaysSucceeds(t *testing.T) {
	svc := &stubAuthService{}
	h := NewAuthHandler(svc, zerolog.Nop())

	c, rec := newJSONContext(t, http.MethodPost, "/api/logout", "")
	c.Set("session_token", "tok-1")

	if err := h.Logout(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if len(svc.logoutCalls) != 1 || svc.logoutCalls[0] != "tok-1" {
		t.Errorf("logout calls = %v, want [tok-1]", svc.logoutCalls)
	}
}

func TestUserImageStreamsBlob(t *testing.T) {
	img := []byte{0x89, 'P', 'N', 'G'}
	h := NewAuthHandler(&stubAuthService{image: img}, zerolog.Nop())

	c, rec := newJSONContext(t, http.MethodGet, "/api/user_image/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := h.UserImage(c); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct := rec.Header().Get(echo.HeaderContentType); ct != "image/png" {
		t.Errorf("content type = %q, want image/png", ct)
	}
	if rec.Body.String() != string(img) {
		t.Error("image bytes were not streamed verbatim")
	}
}

package session

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

func dispatcherSession() *domain.SessionUser {
	return &domain.SessionUser{
		UserID:       9,
		UserName:     "disp",
		SessionToken: "tok-9",
		Role:         domain.RoleDispatcher,
		Dispatcher:   &domain.DispatcherClaims{DispatcherID: 5, AreaID: 3},
	}
}

func postSession(t *testing.T, store *Store, user *domain.SessionUser) *http.Cookie {
	t.Helper()
	body, err := json.Marshal(user)
	if err != nil {
		t.Fatalf("marshal session: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(string(body)))
	rec := httptest.NewRecorder()
	if err := store.Set(e.NewContext(req, rec)); err != nil {
		t.Fatalf("set session: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("set status = %d, want 200", rec.Code)
	}

	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == CookieName {
			return cookie
		}
	}
	t.Fatal("session cookie was not set")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	store := NewStore()
	want := dispatcherSession()

	cookie := postSession(t, store, want)
	if cookie.MaxAge != 3600 {
		t.Errorf("cookie MaxAge = %d, want 3600", cookie.MaxAge)
	}
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	if err := store.Get(e.NewContext(req, rec)); err != nil {
		t.Fatalf("get session: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", rec.Code)
	}

	var got domain.SessionUser
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode session: %v", err)
	}
	if !reflect.DeepEqual(&got, want) {
		t.Errorf("round trip mismatch:\n got  %+v\n want %+v", &got, want)
	}
}

func TestGetWithoutCookie(t *testing.T) {
	store := NewStore()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	rec := httptest.NewRecorder()
	if err := store.Get(e.NewContext(req, rec)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetWithCorruptedCookie(t *testing.T) {
	store := NewStore()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%7Bnot-json"})
	rec := httptest.NewRecorder()
	if err := store.Get(e.NewContext(req, rec)); err != nil {
		t.Fatalf("corrupted cookie must not error: %v", err)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestSetStoresArbitraryBodyVerbatim(t *testing.T) {
	store := NewStore()
	body := `{"whatever":42,"role":"dispatcher"}`

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/session", strings.NewReader(body))
	rec := httptest.NewRecorder()
	if err := store.Set(e.NewContext(req, rec)); err != nil {
		t.Fatalf("set must not inspect the payload: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("set status = %d, want unconditional 200", rec.Code)
	}

	var cookie *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == CookieName {
			cookie = c
		}
	}
	if cookie == nil {
		t.Fatal("session cookie was not set")
	}
	raw, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		t.Fatalf("unescape cookie: %v", err)
	}
	if raw != body {
		t.Errorf("stored payload = %q, want it byte-for-byte verbatim", raw)
	}

	// The stored JSON comes back as-is through GET, unknown keys included.
	getReq := httptest.NewRequest(http.MethodGet, "/session", nil)
	getReq.AddCookie(cookie)
	getRec := httptest.NewRecorder()
	if err := store.Get(e.NewContext(getReq, getRec)); err != nil {
		t.Fatalf("get session: %v", err)
	}
	if getRec.Code != http.StatusOK {
		t.Fatalf("get status = %d, want 200", getRec.Code)
	}
	if strings.TrimSpace(getRec.Body.String()) != body {
		t.Errorf("get body = %q, want the stored payload", getRec.Body.String())
	}

	// The typed read path is where the shape check lives.
	typedReq := httptest.NewRequest(http.MethodGet, "/", nil)
	typedReq.AddCookie(cookie)
	if _, ok := ReadRequest(typedReq); ok {
		t.Error("a payload without a valid session shape must not decode")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	store := NewStore()
	e := echo.New()

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodDelete, "/session", nil)
		rec := httptest.NewRecorder()
		if err := store.Delete(e.NewContext(req, rec)); err != nil {
			t.Fatalf("delete #%d: %v", i+1, err)
		}
		if rec.Code != http.StatusOK {
			t.Fatalf("delete #%d status = %d, want 200", i+1, rec.Code)
		}

		var cleared bool
		for _, cookie := range rec.Result().Cookies() {
			if cookie.Name == CookieName && cookie.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Errorf("delete #%d did not expire the cookie", i+1)
		}
	}
}

func TestReadRequestRejectsBadEscape(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: CookieName, Value: "%zz"})

	if _, ok := ReadRequest(req); ok {
		t.Error("unescapable cookie must not produce a session")
	}
}

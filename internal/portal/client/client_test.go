package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/roadrescue/dispatch-system/internal/core/domain"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, Logger: zerolog.Nop()}), srv
}

func TestListOrdersForcesPendingQueue(t *testing.T) {
	var gotQuery map[string][]string
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotAuth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":1,"status":"pending","node_id":3}]`))
	})

	orders, err := c.ListOrders(context.Background(), "tok-1", nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(orders) != 1 || orders[0].ID != 1 {
		t.Fatalf("unexpected orders: %+v", orders)
	}

	for key, want := range map[string]string{
		"status":     "pending",
		"sort_by":    "order_time",
		"sort_order": "asc",
	} {
		if got := gotQuery[key]; len(got) != 1 || got[0] != want {
			t.Errorf("query %s = %v, want %q", key, got, want)
		}
	}
	if _, ok := gotQuery["area"]; ok {
		t.Error("area param must be absent when no area is given")
	}
	if gotAuth != "tok-1" {
		t.Errorf("Authorization = %q, want raw token tok-1", gotAuth)
	}
}

func TestListOrdersScopesToArea(t *testing.T) {
	var gotArea string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotArea = r.URL.Query().Get("area")
		_, _ = w.Write([]byte(`[]`))
	})

	area := int64(7)
	if _, err := c.ListOrders(context.Background(), "tok", &area); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotArea != "7" {
		t.Errorf("area = %q, want 7", gotArea)
	}
}

func TestGetOrderMapsNotFound(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"order not found"}`))
	})

	_, err := c.GetOrder(context.Background(), "tok", 99)
	if !errors.Is(err, domain.ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
}

func TestArrangeTowTruckTimesOutWithoutRetry(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"message":"tow truck assigned"}`))
	}))
	defer srv.Close()

	c := New(Config{
		BaseURL:        srv.URL,
		Logger:         zerolog.Nop(),
		ArrangeTimeout: 20 * time.Millisecond,
	})

	err := c.ArrangeTowTruck(context.Background(), "tok", ArrangeInput{
		OrderID: 30, DispatcherID: 10, TowTruckID: 20, OrderTime: time.Now(),
	})
	if err == nil {
		t.Fatal("expected a deadline error")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected context.DeadlineExceeded, got %v", err)
	}
	if calls != 1 {
		t.Errorf("server saw %d calls, want exactly 1 (no retries)", calls)
	}
}

func TestLogoutSkipsBackendWithoutToken(t *testing.T) {
	var calls int
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
	})

	if err := c.Logout(context.Background(), ""); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 0 {
		t.Errorf("server saw %d calls, want 0 for empty token", calls)
	}
}

func TestLogoutSendsTokenWhenPresent(t *testing.T) {
	var gotAuth string
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_, _ = w.Write([]byte(`{"message":"logged out"}`))
	})

	if err := c.Logout(context.Background(), "tok-9"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotAuth != "tok-9" {
		t.Errorf("Authorization = %q, want tok-9", gotAuth)
	}
}

func TestLoginRejectsMalformedSessionPayload(t *testing.T) {
	// A dispatcher payload without dispatcher claims must not be accepted.
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user_id":1,"user_name":"d","session_token":"t","role":"dispatcher"}`))
	})

	_, err := c.Login(context.Background(), "d", "pw")
	if !errors.Is(err, domain.ErrMalformedSession) {
		t.Fatalf("expected ErrMalformedSession, got %v", err)
	}
}

func TestRequestErrorCarriesAPIMessage(t *testing.T) {
	c, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
	})

	_, err := c.Login(context.Background(), "ana", "wrong")
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		t.Fatalf("expected RequestError, got %v", err)
	}
	if reqErr.StatusCode != http.StatusUnauthorized || reqErr.Message != "invalid credentials" {
		t.Errorf("unexpected RequestError: %+v", reqErr)
	}
}

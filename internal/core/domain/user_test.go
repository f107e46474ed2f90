package domain

import (
	"encoding/json"
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestSessionUser_RoundTrip_Dispatcher(t *testing.T) {
	orig := SessionUser{
		UserID:       42,
		UserName:     "maria",
		SessionToken: "tok-abc",
		Role:         RoleDispatcher,
		Dispatcher:   &DispatcherClaims{DispatcherID: 3, AreaID: 7},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var got SessionUser
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(orig, got) {
		t.Fatalf("round trip mismatch: %+v != %+v", orig, got)
	}
}

func TestSessionUser_RoundTrip_Driver(t *testing.T) {
	orig := SessionUser{
		UserID:       9,
		UserName:     "jack",
		SessionToken: "tok-x",
		Role:         RoleDriver,
		Driver:       &DriverClaims{DriverID: 5},
	}

	data, err := json.Marshal(orig)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got SessionUser
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if !reflect.DeepEqual(orig, got) {
		t.Fatalf("round trip mismatch: %+v != %+v", orig, got)
	}
}

func TestSessionUser_Marshal_ClientOmitsRoleFields(t *testing.T) {
	u := SessionUser{UserID: 1, UserName: "bob", SessionToken: "t", Role: RoleClient}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	for _, key := range []string{"dispatcher_id", "area_id", "driver_id"} {
		if strings.Contains(s, key) {
			t.Fatalf("client payload must not contain %q: %s", key, s)
		}
	}
}

func TestSessionUser_Marshal_DispatcherHasRoleFields(t *testing.T) {
	u := SessionUser{
		UserID: 2, UserName: "d", SessionToken: "t",
		Role:       RoleDispatcher,
		Dispatcher: &DispatcherClaims{DispatcherID: 11, AreaID: 4},
	}

	data, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("unmarshal map: %v", err)
	}
	if m["dispatcher_id"] != float64(11) || m["area_id"] != float64(4) {
		t.Fatalf("unexpected payload: %s", data)
	}
	if _, ok := m["driver_id"]; ok {
		t.Fatalf("dispatcher payload must not contain driver_id: %s", data)
	}
}

func TestSessionUser_Validate(t *testing.T) {
	cases := []struct {
		name    string
		user    SessionUser
		wantErr bool
	}{
		{"client ok", SessionUser{UserID: 1, Role: RoleClient}, false},
		{"admin ok", SessionUser{UserID: 1, Role: RoleAdmin}, false},
		{"dispatcher ok", SessionUser{UserID: 1, Role: RoleDispatcher, Dispatcher: &DispatcherClaims{DispatcherID: 1, AreaID: 2}}, false},
		{"driver ok", SessionUser{UserID: 1, Role: RoleDriver, Driver: &DriverClaims{DriverID: 1}}, false},
		{"unknown role", SessionUser{UserID: 1, Role: "manager"}, true},
		{"dispatcher missing claims", SessionUser{UserID: 1, Role: RoleDispatcher}, true},
		{"driver missing claims", SessionUser{UserID: 1, Role: RoleDriver}, true},
		{"client with driver claims", SessionUser{UserID: 1, Role: RoleClient, Driver: &DriverClaims{DriverID: 1}}, true},
		{"driver with dispatcher claims", SessionUser{UserID: 1, Role: RoleDriver, Driver: &DriverClaims{DriverID: 1}, Dispatcher: &DispatcherClaims{}}, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.user.Validate()
			if tc.wantErr && err == nil {
				t.Fatalf("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tc.wantErr && !errors.Is(err, ErrMalformedSession) {
				t.Fatalf("expected ErrMalformedSession, got %v", err)
			}
		})
	}
}

func TestSessionUser_Unmarshal_WireFormat(t *testing.T) {
	raw := `{"user_id":7,"user_name":"ana","session_token":"s1","role":"dispatcher","dispatcher_id":2,"area_id":9}`

	var u SessionUser
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if err := u.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if u.Dispatcher == nil || u.Dispatcher.AreaID != 9 || u.Dispatcher.DispatcherID != 2 {
		t.Fatalf("dispatcher claims not populated: %+v", u)
	}
}

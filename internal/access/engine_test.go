package access

import (
	"context"
	"errors"
	"testing"

	"github.com/savoria-erp/savoria/internal/shared"
)

type stubGrants struct {
	ok  bool
	err error
}

func (s stubGrants) ValidateCode(ctx context.Context, code string) (bool, error) {
	return s.ok, s.err
}

func newTestEngine(grants GrantValidator) *Engine {
	return NewEngine(EngineConfig{
		Grants:        grants,
		SuperEmail:    "supremeleader@savoria.com",
		SuperPassword: "keepitsecret",
	})
}

func TestHasPermissionDeniesUnknownRoutesForEveryRole(t *testing.T) {
	e := newTestEngine(nil)
	roles := []Role{RoleGuest, RoleCustomer, RoleEmployee, RoleEmployer, RoleAdmin, RoleSuperAdmin}
	for _, role := range roles {
		if e.HasPermission("/not-a-route", role) {
			t.Fatalf("expected %s to be denied on an unknown route", role)
		}
	}
}

func TestHasPermissionTable(t *testing.T) {
	e := newTestEngine(nil)
	cases := []struct {
		path string
		role Role
		want bool
	}{
		{"/", RoleGuest, true},
		{"/menu", RoleGuest, true},
		{"/orders", RoleGuest, false},
		{"/orders/42", RoleCustomer, true},
		{"/customers", RoleCustomer, false},
		{"/customers", RoleEmployee, true},
		{"/employees", RoleEmployee, false},
		{"/employees", RoleEmployer, true},
		{"/admin/manage-employer-ids", RoleEmployer, false},
		{"/admin/manage-employer-ids", RoleAdmin, true},
		{"/super-admin", RoleAdmin, false},
		{"/super-admin", RoleSuperAdmin, true},
		{"/login", RoleCustomer, false},
	}
	for _, tc := range cases {
		if got := e.HasPermission(tc.path, tc.role); got != tc.want {
			t.Fatalf("HasPermission(%q, %s) = %v, want %v", tc.path, tc.role, got, tc.want)
		}
	}
}

func TestLoginResolvesSuperAdminBeforeElevation(t *testing.T) {
	e := newTestEngine(stubGrants{ok: true})
	store := NewStore(&shared.Session{})

	id, err := e.Login(context.Background(), store, "supremeleader@savoria.com", "keepitsecret", "ABCD1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id.Role != RoleSuperAdmin {
		t.Fatalf("expected super_admin, got %s", id.Role)
	}
	if got := store.Identity(); got.Role != RoleSuperAdmin {
		t.Fatalf("expected store to hold super_admin, got %s", got.Role)
	}
}

func TestLoginElevatesWithValidCode(t *testing.T) {
	e := newTestEngine(stubGrants{ok: true})
	store := NewStore(&shared.Session{})

	id, err := e.Login(context.Background(), store, "owner@bistro.com", "pw", "ABCD1234")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id.Role != RoleEmployer {
		t.Fatalf("expected employer, got %s", id.Role)
	}
}

func TestLoginFallsBackToCustomer(t *testing.T) {
	cases := map[string]GrantValidator{
		"invalid code":  stubGrants{ok: false},
		"lookup error":  stubGrants{err: errors.New("redis down")},
		"no code given": stubGrants{ok: true},
	}
	for name, grants := range cases {
		e := newTestEngine(grants)
		store := NewStore(&shared.Session{})
		code := "ABCD1234"
		if name == "no code given" {
			code = ""
		}
		id, err := e.Login(context.Background(), store, "guest@example.com", "pw", code)
		if err != nil {
			t.Fatalf("%s: login: %v", name, err)
		}
		if id.Role != RoleCustomer {
			t.Fatalf("%s: expected customer, got %s", name, id.Role)
		}
	}
}

func TestLoginStaffPrefixSelectsRole(t *testing.T) {
	e := newTestEngine(nil)
	cases := []struct {
		staffID string
		want    Role
	}{
		{"A1023", RoleAdmin},
		{"a1023", RoleAdmin},
		{"E2204", RoleEmployee},
		{"e2204", RoleEmployee},
	}
	for _, tc := range cases {
		store := NewStore(&shared.Session{})
		id, err := e.LoginStaff(context.Background(), store, tc.staffID, "pw")
		if err != nil {
			t.Fatalf("LoginStaff(%q): %v", tc.staffID, err)
		}
		if id.Role != tc.want {
			t.Fatalf("LoginStaff(%q) role = %s, want %s", tc.staffID, id.Role, tc.want)
		}
	}
}

func TestLoginStaffRejectsBadPrefixAndLeavesSessionUntouched(t *testing.T) {
	e := newTestEngine(nil)
	for _, staffID := range []string{"X9999", "1234", "", "  "} {
		store := NewStore(&shared.Session{})
		_, err := e.LoginStaff(context.Background(), store, staffID, "pw")
		if !errors.Is(err, shared.ErrInvalidCredentialFormat) {
			t.Fatalf("LoginStaff(%q): expected ErrInvalidCredentialFormat, got %v", staffID, err)
		}
		if got := store.Identity(); got.Role != RoleGuest {
			t.Fatalf("LoginStaff(%q): session mutated to %s", staffID, got.Role)
		}
	}
}

func TestLogoutIsIdempotent(t *testing.T) {
	e := newTestEngine(nil)
	store := NewStore(&shared.Session{})
	if _, err := e.Login(context.Background(), store, "guest@example.com", "pw", ""); err != nil {
		t.Fatalf("login: %v", err)
	}

	e.Logout(store)
	if got := store.Identity(); got.Role != RoleGuest {
		t.Fatalf("expected guest after logout, got %s", got.Role)
	}
	e.Logout(store)
	if got := store.Identity(); got.Role != RoleGuest {
		t.Fatalf("expected guest after second logout, got %s", got.Role)
	}
}

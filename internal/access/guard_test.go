package access_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/shared"
)

func guardedRequest(t *testing.T, sess *shared.Session, path string) *httptest.ResponseRecorder {
	t.Helper()
	engine := access.NewEngine(access.EngineConfig{})
	guard := access.NewGuard(engine, nil, "/static", "/healthz")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	guard.Middleware(next).ServeHTTP(rec, req)
	return rec
}

func signedIn(role access.Role) *shared.Session {
	sess := &shared.Session{}
	access.NewStore(sess).SetIdentity(access.Identity{Email: "someone@savoria.com", Role: role})
	return sess
}

func TestGuardLetsPublicRoutesThrough(t *testing.T) {
	for _, path := range []string{"/", "/menu", "/contact", "/feedback", "/unauthorized"} {
		if rec := guardedRequest(t, &shared.Session{}, path); rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for guest on %q, got %d", path, rec.Code)
		}
	}
}

func TestGuardRedirectsGuestToLoginAndStashesPath(t *testing.T) {
	sess := &shared.Session{}
	rec := guardedRequest(t, sess, "/reservations")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
	if got := access.NewStore(sess).ConsumeRedirect(); got != "/reservations" {
		t.Fatalf("expected stashed path /reservations, got %q", got)
	}
}

func TestGuardSendsDeniedUserHome(t *testing.T) {
	rec := guardedRequest(t, signedIn(access.RoleCustomer), "/employees")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/" {
		t.Fatalf("expected redirect home, got %q", loc)
	}
}

func TestGuardSendsUnknownRouteToTerminalPage(t *testing.T) {
	rec := guardedRequest(t, signedIn(access.RoleCustomer), "/wine-cellar")

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/unauthorized" {
		t.Fatalf("expected redirect to /unauthorized, got %q", loc)
	}
}

func TestGuardBouncesAuthenticatedOffLoginAndSignup(t *testing.T) {
	for _, path := range []string{"/login", "/signup"} {
		rec := guardedRequest(t, signedIn(access.RoleCustomer), path)
		if rec.Code != http.StatusSeeOther {
			t.Fatalf("expected 303 for %q, got %d", path, rec.Code)
		}
		if loc := rec.Header().Get("Location"); loc != "/" {
			t.Fatalf("expected redirect home from %q, got %q", path, loc)
		}
	}
}

func TestGuardExemptPrefixBypassesTable(t *testing.T) {
	if rec := guardedRequest(t, &shared.Session{}, "/healthz"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on exempt path, got %d", rec.Code)
	}
	if rec := guardedRequest(t, &shared.Session{}, "/static/css/app.css"); rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on exempt static asset, got %d", rec.Code)
	}
}

func TestGuardAllowsNestedPathsUnderPermittedKey(t *testing.T) {
	rec := guardedRequest(t, signedIn(access.RoleAdmin), "/admin/manage-employer-ids")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for admin on nested admin path, got %d", rec.Code)
	}
}

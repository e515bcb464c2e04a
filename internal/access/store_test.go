package access_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/shared"
	_ "github.com/savoria-erp/savoria/internal/testing/guard"
)

func newSessionManager(t *testing.T) *shared.SessionManager {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return shared.NewSessionManager(client, "test_session", "secret", time.Hour, false)
}

func roundTrip(t *testing.T, sm *shared.SessionManager, sess *shared.Session) *shared.Session {
	t.Helper()
	ctx := context.Background()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if err := sm.Commit(ctx, rec, req, sess); err != nil {
		t.Fatalf("commit: %v", err)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("expected a session cookie")
	}
	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	reloaded, err := sm.Load(ctx, next)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	return reloaded
}

func TestIdentitySurvivesReload(t *testing.T) {
	sm := newSessionManager(t)
	sess, err := sm.Load(context.Background(), httptest.NewRequest(http.MethodGet, "/", nil))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	store := access.NewStore(sess)
	store.SetIdentity(access.Identity{Email: "amelia@savoria.com", Role: access.RoleEmployee})

	reloaded := roundTrip(t, sm, sess)
	got := access.NewStore(reloaded).Identity()
	if got.Email != "amelia@savoria.com" || got.Role != access.RoleEmployee {
		t.Fatalf("identity did not survive reload: %+v", got)
	}
}

func TestCorruptRoleDegradesToGuest(t *testing.T) {
	sess := &shared.Session{}
	sess.Set(access.KeyAuthenticated, "true")
	sess.Set(access.KeyEmail, "amelia@savoria.com")
	sess.Set(access.KeyRole, "warlord")

	if got := access.NewStore(sess).Identity(); got.Role != access.RoleGuest {
		t.Fatalf("expected guest for unknown role, got %s", got.Role)
	}
}

func TestMissingMarkerDegradesToGuest(t *testing.T) {
	sess := &shared.Session{}
	sess.Set(access.KeyEmail, "amelia@savoria.com")
	sess.Set(access.KeyRole, "employee")

	if got := access.NewStore(sess).Identity(); got.Role != access.RoleGuest {
		t.Fatalf("expected guest without the authenticated marker, got %s", got.Role)
	}
}

func TestSetGuestIdentityClears(t *testing.T) {
	sess := &shared.Session{}
	store := access.NewStore(sess)
	store.SetIdentity(access.Identity{Email: "amelia@savoria.com", Role: access.RoleAdmin})
	store.SetIdentity(access.Guest())

	if sess.Has(access.KeyAuthenticated) || sess.Has(access.KeyEmail) || sess.Has(access.KeyRole) {
		t.Fatalf("expected identity keys removed")
	}
}

func TestConsumeRedirectReturnsAtMostOnce(t *testing.T) {
	store := access.NewStore(&shared.Session{})
	store.StashRedirect("/orders/7")

	if got := store.ConsumeRedirect(); got != "/orders/7" {
		t.Fatalf("expected stashed path, got %q", got)
	}
	if got := store.ConsumeRedirect(); got != "" {
		t.Fatalf("expected empty on second consume, got %q", got)
	}
}

func TestNilSessionStoreReadsGuest(t *testing.T) {
	store := access.NewStore(nil)
	if got := store.Identity(); got.Role != access.RoleGuest {
		t.Fatalf("expected guest, got %s", got.Role)
	}
	store.SetIdentity(access.Identity{Email: "x@y.z", Role: access.RoleAdmin})
	store.Clear()
	if got := store.ConsumeRedirect(); got != "" {
		t.Fatalf("expected empty redirect, got %q", got)
	}
}

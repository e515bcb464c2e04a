package pages_test

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/savoria-erp/savoria/internal/pages"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

func newRouter(t *testing.T) chi.Router {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	handler := pages.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), templates, nil)
	r := chi.NewRouter()
	handler.MountRoutes(r)
	return r
}

func get(t *testing.T, router chi.Router, sess *shared.Session, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestStaticPagesRender(t *testing.T) {
	router := newRouter(t)
	for _, path := range []string{"/", "/contact", "/unauthorized", "/profile", "/shipping-address"} {
		rec := get(t, router, &shared.Session{}, path)
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestShippingAddressRoundTrip(t *testing.T) {
	router := newRouter(t)
	sess := &shared.Session{}

	form := url.Values{"address": {"12 Via Roma, Milan"}}
	req := httptest.NewRequest(http.MethodPost, "/shipping-address", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req = req.WithContext(shared.ContextWithSession(req.Context(), sess))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("save: expected 200, got %d", rec.Code)
	}
	if got := sess.Get("shippingAddress"); got != "12 Via Roma, Milan" {
		t.Fatalf("expected the address stored in the session, got %q", got)
	}

	rec = get(t, router, sess, "/shipping-address")
	if rec.Code != http.StatusOK {
		t.Fatalf("reload: expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "12 Via Roma, Milan") {
		t.Fatalf("expected the stored address rendered, got:\n%s", rec.Body.String())
	}
}

func TestShippingAddressWithoutSession(t *testing.T) {
	router := newRouter(t)
	rec := get(t, router, nil, "/shipping-address")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with no session, got %d", rec.Code)
	}
}

package feedback_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/savoria-erp/savoria/internal/feedback"
	"github.com/savoria-erp/savoria/internal/view"
)

type memStore struct {
	nextID  int64
	entries []feedback.Entry
}

func (m *memStore) Create(ctx context.Context, e feedback.Entry) (feedback.Entry, error) {
	m.nextID++
	e.ID = m.nextID
	m.entries = append(m.entries, e)
	return e, nil
}

func (m *memStore) ListRecent(ctx context.Context, limit int) ([]feedback.Entry, error) {
	if len(m.entries) > limit {
		return m.entries[len(m.entries)-limit:], nil
	}
	return m.entries, nil
}

func newRouter(t *testing.T, store *memStore) chi.Router {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	handler := feedback.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), store, templates, nil)
	r := chi.NewRouter()
	r.Route("/feedback", handler.MountRoutes)
	return r
}

func postForm(t *testing.T, router chi.Router, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/feedback", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestFeedbackPageShowsRecentEntries(t *testing.T) {
	store := &memStore{entries: []feedback.Entry{
		{ID: 1, Name: "Ana", Rating: 5, Message: "The branzino was perfect."},
	}}
	router := newRouter(t, store)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/feedback", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "The branzino was perfect.") {
		t.Fatalf("expected the entry rendered, got:\n%s", rec.Body.String())
	}
}

func TestSubmitFeedback(t *testing.T) {
	store := &memStore{}
	router := newRouter(t, store)

	rec := postForm(t, router, url.Values{
		"name":    {"Ben"},
		"rating":  {"4"},
		"message": {"Great service."},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Thank you for telling us.") {
		t.Fatalf("expected the confirmation rendered, got:\n%s", rec.Body.String())
	}
	if len(store.entries) != 1 || store.entries[0].Rating != 4 {
		t.Fatalf("expected the entry stored, got %+v", store.entries)
	}
}

func TestSubmitFeedbackValidation(t *testing.T) {
	store := &memStore{}
	router := newRouter(t, store)

	rec := postForm(t, router, url.Values{
		"name":    {"Ben"},
		"rating":  {"9"},
		"message": {"Too enthusiastic."},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Pick a rating from 1 to 5.") {
		t.Fatalf("expected the rating error rendered, got:\n%s", rec.Body.String())
	}
	if len(store.entries) != 0 {
		t.Fatalf("expected nothing stored, got %+v", store.entries)
	}

	rec = postForm(t, router, url.Values{
		"name":    {""},
		"rating":  {"3"},
		"message": {"No name."},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a missing name, got %d", rec.Code)
	}
}

func TestSubmitFeedbackOptionalEmail(t *testing.T) {
	store := &memStore{}
	router := newRouter(t, store)

	rec := postForm(t, router, url.Values{
		"name":    {"Ben"},
		"email":   {"not-an-email"},
		"rating":  {"3"},
		"message": {"Fine."},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a malformed email, got %d", rec.Code)
	}

	rec = postForm(t, router, url.Values{
		"name":    {"Ben"},
		"email":   {""},
		"rating":  {"3"},
		"message": {"Fine."},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected an empty email accepted, got %d", rec.Code)
	}
}

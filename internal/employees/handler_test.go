package employees_test

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

	"github.com/savoria-erp/savoria/internal/employees"
	"github.com/savoria-erp/savoria/internal/view"
)

type memRoster struct {
	nextID int64
	list   []employees.Employee
}

func (m *memRoster) List(ctx context.Context) ([]employees.Employee, error) {
	return m.list, nil
}

func (m *memRoster) Create(ctx context.Context, e employees.Employee) (employees.Employee, error) {
	for _, existing := range m.list {
		if existing.StaffID == e.StaffID {
			return employees.Employee{}, employees.ErrDuplicateStaffID
		}
	}
	m.nextID++
	e.ID = m.nextID
	m.list = append(m.list, e)
	return e, nil
}

func (m *memRoster) SetActive(ctx context.Context, id int64, active bool) error {
	for i := range m.list {
		if m.list[i].ID == id {
			m.list[i].Active = active
		}
	}
	return nil
}

func newRouter(t *testing.T, roster *memRoster) chi.Router {
	t.Helper()
	templates, err := view.NewEngine()
	if err != nil {
		t.Fatalf("parse templates: %v", err)
	}
	handler := employees.NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), roster, templates, nil)
	r := chi.NewRouter()
	r.Route("/employees", handler.MountRoutes)
	return r
}

func postForm(t *testing.T, router chi.Router, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRosterListsEmployees(t *testing.T) {
	roster := &memRoster{list: []employees.Employee{
		{ID: 1, StaffID: "E-1042", Name: "Lena Fischer", Position: "Head Chef", Active: true},
	}}
	router := newRouter(t, roster)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/employees", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Lena Fischer") {
		t.Fatalf("expected the employee listed, got:\n%s", rec.Body.String())
	}
}

func TestCreateEmployeeUppercasesStaffID(t *testing.T) {
	roster := &memRoster{}
	router := newRouter(t, roster)

	rec := postForm(t, router, "/employees", url.Values{
		"staff_id": {" e-1043 "},
		"name":     {"Tomás Rivera"},
		"email":    {"tomas@savoria.com"},
		"position": {"Server"},
	})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if len(roster.list) != 1 || roster.list[0].StaffID != "E-1043" {
		t.Fatalf("expected the staff ID trimmed and uppercased, got %+v", roster.list)
	}
	if !roster.list[0].Active {
		t.Fatalf("expected a new hire to start active")
	}
}

func TestCreateEmployeeRejectsBadPrefix(t *testing.T) {
	roster := &memRoster{}
	router := newRouter(t, roster)

	rec := postForm(t, router, "/employees", url.Values{
		"staff_id": {"X-9999"},
		"name":     {"Nobody"},
		"email":    {"nobody@savoria.com"},
		"position": {"Server"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "must start with A (admin) or E (employee)") {
		t.Fatalf("expected the prefix error rendered, got:\n%s", rec.Body.String())
	}
	if len(roster.list) != 0 {
		t.Fatalf("expected nothing stored, got %+v", roster.list)
	}
}

func TestCreateEmployeeDuplicateStaffID(t *testing.T) {
	roster := &memRoster{list: []employees.Employee{{ID: 1, StaffID: "E-1042", Name: "Lena"}}}
	router := newRouter(t, roster)

	rec := postForm(t, router, "/employees", url.Values{
		"staff_id": {"E-1042"},
		"name":     {"Another Lena"},
		"email":    {"lena2@savoria.com"},
		"position": {"Chef"},
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "already in use") {
		t.Fatalf("expected the duplicate error rendered, got:\n%s", rec.Body.String())
	}
}

func TestToggleEmployee(t *testing.T) {
	roster := &memRoster{nextID: 1, list: []employees.Employee{{ID: 1, StaffID: "E-1042", Active: true}}}
	router := newRouter(t, roster)

	rec := postForm(t, router, "/employees/1/toggle", url.Values{"active": {"false"}})
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", rec.Code)
	}
	if roster.list[0].Active {
		t.Fatalf("expected the employee deactivated")
	}
}

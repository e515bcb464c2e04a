package employees

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Roster defines the persistence the handler needs.
type Roster interface {
	List(ctx context.Context) ([]Employee, error)
	Create(ctx context.Context, e Employee) (Employee, error)
	SetActive(ctx context.Context, id int64, active bool) error
}

// Handler wires the staff roster screen.
type Handler struct {
	logger    *slog.Logger
	repo      Roster
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Roster, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, repo: repo, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers roster routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showRoster)
	r.Post("/", h.handleCreate)
	r.Post("/{id}/toggle", h.handleToggle)
}

type employeeForm struct {
	StaffID  string `validate:"required"`
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Position string `validate:"required"`
}

type rosterPageData struct {
	Employees []Employee
	Form      employeeForm
	Errors    map[string]string
}

func (h *Handler) showRoster(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, rosterPageData{}, http.StatusOK)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := employeeForm{
		StaffID:  strings.ToUpper(strings.TrimSpace(r.PostFormValue("staff_id"))),
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Position: r.PostFormValue("position"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				formErrors[fieldErr.Field()] = "This field is required."
			}
		}
	}
	if formErrors["StaffID"] == "" && form.StaffID != "" && form.StaffID[0] != 'A' && form.StaffID[0] != 'E' {
		formErrors["StaffID"] = "Staff IDs must start with A (admin) or E (employee)."
	}
	if len(formErrors) == 0 {
		_, err := h.repo.Create(r.Context(), Employee{
			StaffID:  form.StaffID,
			Name:     form.Name,
			Email:    form.Email,
			Position: form.Position,
			Active:   true,
		})
		switch {
		case errors.Is(err, ErrDuplicateStaffID):
			formErrors["StaffID"] = "This staff ID is already in use."
		case err != nil:
			h.logger.Error("create employee", slog.Any("error", err))
			formErrors["general"] = "Could not save the employee."
		default:
			http.Redirect(w, r, "/employees", http.StatusSeeOther)
			return
		}
	}
	h.render(w, r, rosterPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
}

func (h *Handler) handleToggle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	active := r.PostFormValue("active") == "true"
	if err := h.repo.SetActive(r.Context(), id, active); err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("toggle employee", slog.Int64("id", id), slog.Any("error", err))
	}
	http.Redirect(w, r, "/employees", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data rosterPageData, status int) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list employees", slog.Any("error", err))
	}
	data.Employees = list
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Employees")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/employees.html", viewData); err != nil {
		h.logger.Error("render employees", slog.Any("error", err))
	}
}

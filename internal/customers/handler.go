package customers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Directory defines the persistence the handler needs.
type Directory interface {
	List(ctx context.Context) ([]Customer, error)
	Create(ctx context.Context, c Customer) (Customer, error)
	Delete(ctx context.Context, id int64) error
}

// Handler wires the staff customer directory.
type Handler struct {
	logger    *slog.Logger
	repo      Directory
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Directory, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, repo: repo, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers customer directory routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showDirectory)
	r.Post("/", h.handleCreate)
	r.Post("/{id}/delete", h.handleDelete)
}

type customerForm struct {
	Name  string `validate:"required"`
	Email string `validate:"required,email"`
	Phone string
	Notes string
}

type directoryPageData struct {
	Customers []Customer
	Form      customerForm
	Errors    map[string]string
}

func (h *Handler) showDirectory(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, directoryPageData{}, http.StatusOK)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := customerForm{
		Name:  r.PostFormValue("name"),
		Email: r.PostFormValue("email"),
		Phone: r.PostFormValue("phone"),
		Notes: r.PostFormValue("notes"),
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
	if len(formErrors) == 0 {
		_, err := h.repo.Create(r.Context(), Customer{Name: form.Name, Email: form.Email, Phone: form.Phone, Notes: form.Notes})
		switch {
		case errors.Is(err, ErrDuplicateEmail):
			formErrors["Email"] = "This email is already in the directory."
		case err != nil:
			h.logger.Error("create customer", slog.Any("error", err))
			formErrors["general"] = "Could not save the customer."
		default:
			http.Redirect(w, r, "/customers", http.StatusSeeOther)
			return
		}
	}
	h.render(w, r, directoryPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.repo.Delete(r.Context(), id); err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("delete customer", slog.Int64("id", id), slog.Any("error", err))
	}
	http.Redirect(w, r, "/customers", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data directoryPageData, status int) {
	list, err := h.repo.List(r.Context())
	if err != nil {
		h.logger.Error("list customers", slog.Any("error", err))
	}
	data.Customers = list
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Customers")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/customers.html", viewData); err != nil {
		h.logger.Error("render customers", slog.Any("error", err))
	}
}

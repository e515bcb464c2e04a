package grants

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler exposes the admin screen for managing employer IDs.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		service:   service,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
	}
}

// MountRoutes registers grant management routes. Role enforcement happens
// in the access guard; these handlers assume an admin is signed in.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/manage-employer-ids", h.showEmployerIDs)
	r.Post("/manage-employer-ids", h.handleIssue)
	r.Post("/manage-employer-ids/{id}/deactivate", h.handleDeactivate)
	r.Post("/manage-employer-ids/{id}/delete", h.handleDelete)
}

type issueForm struct {
	OwnerEmail     string `validate:"required,email"`
	EmployerName   string `validate:"required"`
	RestaurantName string `validate:"required"`
	ValidUntil     string `validate:"required"`
}

type employerIDsPageData struct {
	Grants []Grant
	Form   issueForm
	Errors map[string]string
	Issued *Grant
}

func (h *Handler) showEmployerIDs(w http.ResponseWriter, r *http.Request) {
	h.renderList(w, r, employerIDsPageData{}, http.StatusOK)
}

func (h *Handler) handleIssue(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := issueForm{
		OwnerEmail:     r.PostFormValue("owner_email"),
		EmployerName:   r.PostFormValue("employer_name"),
		RestaurantName: r.PostFormValue("restaurant_name"),
		ValidUntil:     r.PostFormValue("valid_until"),
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
	validUntil, err := time.Parse("2006-01-02", form.ValidUntil)
	if err != nil && formErrors["ValidUntil"] == "" {
		formErrors["ValidUntil"] = "Enter a date as YYYY-MM-DD."
	}

	if len(formErrors) > 0 {
		h.renderList(w, r, employerIDsPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}

	grant, err := h.service.Issue(r.Context(), KindEmployer, IssueInput{
		OwnerEmail:     form.OwnerEmail,
		EmployerName:   form.EmployerName,
		RestaurantName: form.RestaurantName,
		ValidUntil:     validUntil.Add(24*time.Hour - time.Second),
	})
	if err != nil {
		h.logger.Error("issue grant", slog.Any("error", err))
		formErrors["general"] = "Could not issue the employer ID."
		h.renderList(w, r, employerIDsPageData{Form: form, Errors: formErrors}, http.StatusInternalServerError)
		return
	}

	h.renderList(w, r, employerIDsPageData{Issued: &grant}, http.StatusOK)
}

func (h *Handler) handleDeactivate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Deactivate(r.Context(), KindEmployer, id); err != nil && !errors.Is(err, ErrGrantNotFound) {
		h.logger.Error("deactivate grant", slog.String("id", id), slog.Any("error", err))
	}
	http.Redirect(w, r, "/admin/manage-employer-ids", http.StatusSeeOther)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Delete(r.Context(), KindEmployer, id); err != nil && !errors.Is(err, ErrGrantNotFound) {
		h.logger.Error("delete grant", slog.String("id", id), slog.Any("error", err))
	}
	http.Redirect(w, r, "/admin/manage-employer-ids", http.StatusSeeOther)
}

func (h *Handler) renderList(w http.ResponseWriter, r *http.Request, data employerIDsPageData, status int) {
	pool, err := h.service.List(r.Context(), KindEmployer)
	if err != nil {
		h.logger.Error("list grants", slog.Any("error", err))
	}
	data.Grants = pool

	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Manage Employer IDs")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/manage_employer_ids.html", viewData); err != nil {
		h.logger.Error("render employer ids", slog.Any("error", err))
	}
}

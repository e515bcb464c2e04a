package feedback

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

const recentLimit = 20

// Store defines the persistence the handler needs.
type Store interface {
	Create(ctx context.Context, e Entry) (Entry, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

// Handler serves the public feedback page.
type Handler struct {
	logger    *slog.Logger
	repo      Store
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, repo Store, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, repo: repo, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers feedback routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showForm)
	r.Post("/", h.handleSubmit)
}

type feedbackForm struct {
	Name    string `validate:"required"`
	Email   string `validate:"omitempty,email"`
	Rating  int    `validate:"min=1,max=5"`
	Message string `validate:"required"`
}

type feedbackPageData struct {
	Recent    []Entry
	Form      feedbackForm
	Errors    map[string]string
	Submitted bool
}

func (h *Handler) showForm(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, feedbackPageData{Form: feedbackForm{Rating: 5}}, http.StatusOK)
}

func (h *Handler) handleSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	rating, _ := strconv.Atoi(r.PostFormValue("rating"))
	form := feedbackForm{
		Name:    r.PostFormValue("name"),
		Email:   r.PostFormValue("email"),
		Rating:  rating,
		Message: r.PostFormValue("message"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				switch fieldErr.Field() {
				case "Rating":
					formErrors["Rating"] = "Pick a rating from 1 to 5."
				case "Email":
					formErrors["Email"] = "Enter a valid email address."
				default:
					formErrors[fieldErr.Field()] = "This field is required."
				}
			}
		}
	}
	if len(formErrors) > 0 {
		h.render(w, r, feedbackPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}
	if _, err := h.repo.Create(r.Context(), Entry{Name: form.Name, Email: form.Email, Rating: form.Rating, Message: form.Message}); err != nil {
		h.logger.Error("create feedback", slog.Any("error", err))
		h.render(w, r, feedbackPageData{Form: form, Errors: map[string]string{"general": "Could not save your feedback."}}, http.StatusInternalServerError)
		return
	}
	h.render(w, r, feedbackPageData{Submitted: true, Form: feedbackForm{Rating: 5}}, http.StatusOK)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data feedbackPageData, status int) {
	recent, err := h.repo.ListRecent(r.Context(), recentLimit)
	if err != nil {
		h.logger.Error("list feedback", slog.Any("error", err))
	}
	data.Recent = recent
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Feedback")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/feedback.html", viewData); err != nil {
		h.logger.Error("render feedback", slog.Any("error", err))
	}
}

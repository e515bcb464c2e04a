package reservations

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler wires the reservations screen.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf, validator: validator.New()}
}

// MountRoutes registers reservation routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showReservations)
	r.Post("/", h.handleRequest)
	r.Post("/{id}/status", h.handleStatus)
}

type requestForm struct {
	GuestName string `validate:"required"`
	Date      string `validate:"required"`
	Time      string `validate:"required"`
	PartySize string `validate:"required"`
	Notes     string
}

type reservationsPageData struct {
	Reservations []Reservation
	Staff        bool
	Form         requestForm
	Errors       map[string]string
}

func staffRole(id access.Identity) bool {
	switch id.Role {
	case access.RoleEmployee, access.RoleEmployer, access.RoleAdmin, access.RoleSuperAdmin:
		return true
	}
	return false
}

func (h *Handler) showReservations(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, reservationsPageData{}, http.StatusOK)
}

func (h *Handler) handleRequest(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := requestForm{
		GuestName: r.PostFormValue("guest_name"),
		Date:      r.PostFormValue("date"),
		Time:      r.PostFormValue("time"),
		PartySize: r.PostFormValue("party_size"),
		Notes:     r.PostFormValue("notes"),
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
	at, err := time.ParseInLocation("2006-01-02 15:04", form.Date+" "+form.Time, time.Local)
	if err != nil && len(formErrors) == 0 {
		formErrors["Date"] = "Enter a valid date and time."
	}
	size, err := strconv.Atoi(form.PartySize)
	if err != nil && formErrors["PartySize"] == "" {
		formErrors["PartySize"] = "Enter a number of guests."
	}
	if len(formErrors) > 0 {
		h.render(w, r, reservationsPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	identity := access.NewStore(sess).Identity()
	if _, err := h.service.Request(r.Context(), identity.Email, RequestInput{
		GuestName: form.GuestName,
		At:        at,
		PartySize: size,
		Notes:     form.Notes,
	}); err != nil {
		formErrors["general"] = err.Error()
		h.render(w, r, reservationsPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}

	if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Reservation requested. We will confirm it shortly."})
	}
	http.Redirect(w, r, "/reservations", http.StatusSeeOther)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	if !staffRole(access.NewStore(sess).Identity()) {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	status, ok := ParseStatus(r.PostFormValue("status"))
	if !ok {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if err := h.service.SetStatus(r.Context(), id, status); err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("reservation status", slog.Int64("id", id), slog.Any("error", err))
	}
	http.Redirect(w, r, "/reservations", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data reservationsPageData, status int) {
	viewData := view.BaseData(r, h.csrf, "Reservations")
	data.Staff = staffRole(viewData.Identity)
	list, err := h.service.Visible(r.Context(), viewData.Identity.Email, data.Staff)
	if err != nil {
		h.logger.Error("list reservations", slog.Any("error", err))
	}
	data.Reservations = list
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData.Data = data
	if err := h.templates.Render(w, "pages/reservations.html", viewData); err != nil {
		h.logger.Error("render reservations", slog.Any("error", err))
	}
}

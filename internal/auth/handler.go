package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler wires HTTP endpoints for sign-in, signup and sign-out.
type Handler struct {
	logger    *slog.Logger
	engine    *access.Engine
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
	validator *validator.Validate
	logins    LoginRecorder
}

// LoginRecorder counts successful logins per resolved role.
type LoginRecorder interface {
	RecordLogin(role string)
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, engine *access.Engine, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{
		logger:    logger,
		engine:    engine,
		service:   service,
		templates: templates,
		csrf:      csrf,
		validator: validator.New(),
	}
}

// RecordLoginsTo routes successful logins to a metrics collector.
func (h *Handler) RecordLoginsTo(rec LoginRecorder) {
	h.logins = rec
}

// MountRoutes registers auth routes at the router root so the paths line
// up with the permission table.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/login", h.showLogin)
	r.Post("/login", h.handleLogin)
	r.Post("/login/staff", h.handleStaffLogin)
	r.Get("/signup", h.showSignup)
	r.Post("/signup", h.handleSignup)
	r.Post("/logout", h.handleLogout)
}

type loginForm struct {
	Email      string `validate:"required,email"`
	Password   string `validate:"required"`
	EmployerID string
}

type staffLoginForm struct {
	StaffID  string `validate:"required"`
	Password string `validate:"required"`
}

type loginPageData struct {
	Form      loginForm
	StaffForm staffLoginForm
	Errors    map[string]string
	Tab       string
}

func (h *Handler) showLogin(w http.ResponseWriter, r *http.Request) {
	h.renderLogin(w, r, loginPageData{Tab: "customer"}, http.StatusOK)
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := loginForm{
		Email:      r.PostFormValue("email"),
		Password:   r.PostFormValue("password"),
		EmployerID: r.PostFormValue("employer_id"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				formErrors[fieldErr.Field()] = "Please enter both email and password."
			}
		}
	}
	if len(formErrors) > 0 {
		h.renderLogin(w, r, loginPageData{Form: form, Errors: formErrors, Tab: "customer"}, http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	store := access.NewStore(sess)
	id, err := h.engine.Login(r.Context(), store, form.Email, form.Password, form.EmployerID)
	if err != nil {
		formErrors["general"] = "Login failed. Please check your credentials."
		h.renderLogin(w, r, loginPageData{Form: form, Errors: formErrors, Tab: "customer"}, http.StatusBadRequest)
		return
	}

	h.logger.Info("login", slog.String("email", id.Email), slog.String("role", id.Role.String()))
	if h.logins != nil {
		h.logins.RecordLogin(id.Role.String())
	}
	h.finishLogin(w, r, sess, store)
}

func (h *Handler) handleStaffLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := staffLoginForm{
		StaffID:  r.PostFormValue("staff_id"),
		Password: r.PostFormValue("password"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				formErrors[fieldErr.Field()] = "Please enter both staff ID and password."
			}
		}
	}
	if len(formErrors) > 0 {
		h.renderLogin(w, r, loginPageData{StaffForm: form, Errors: formErrors, Tab: "staff"}, http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	store := access.NewStore(sess)
	id, err := h.engine.LoginStaff(r.Context(), store, form.StaffID, form.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentialFormat) {
			formErrors["StaffID"] = "Staff IDs start with A (admin) or E (employee)."
		} else {
			formErrors["general"] = "Login failed. Please check your credentials."
		}
		h.renderLogin(w, r, loginPageData{StaffForm: form, Errors: formErrors, Tab: "staff"}, http.StatusBadRequest)
		return
	}

	h.logger.Info("staff login", slog.String("staff_id", id.Email), slog.String("role", id.Role.String()))
	if h.logins != nil {
		h.logins.RecordLogin(id.Role.String())
	}
	h.finishLogin(w, r, sess, store)
}

type signupForm struct {
	Name     string `validate:"required"`
	Email    string `validate:"required,email"`
	Password string `validate:"required,min=6"`
}

type signupPageData struct {
	Form   signupForm
	Errors map[string]string
}

func (h *Handler) showSignup(w http.ResponseWriter, r *http.Request) {
	h.renderSignup(w, r, signupPageData{}, http.StatusOK)
}

func (h *Handler) handleSignup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	form := signupForm{
		Name:     r.PostFormValue("name"),
		Email:    r.PostFormValue("email"),
		Password: r.PostFormValue("password"),
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				switch fieldErr.Field() {
				case "Password":
					formErrors["Password"] = "Password must be at least 6 characters."
				case "Email":
					formErrors["Email"] = "Enter a valid email address."
				default:
					formErrors[fieldErr.Field()] = "This field is required."
				}
			}
		}
	}
	if r.PostFormValue("confirm_password") != form.Password {
		formErrors["ConfirmPassword"] = "Passwords do not match."
	}
	if len(formErrors) > 0 {
		h.renderSignup(w, r, signupPageData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}

	if h.service != nil {
		if _, err := h.service.Register(r.Context(), form.Email, form.Name, form.Password); err != nil {
			if errors.Is(err, ErrEmailTaken) {
				formErrors["Email"] = "An account with this email already exists."
				h.renderSignup(w, r, signupPageData{Form: form, Errors: formErrors}, http.StatusConflict)
				return
			}
			h.logger.Error("register account", slog.Any("error", err))
			formErrors["general"] = "Signup failed. Please try again."
			h.renderSignup(w, r, signupPageData{Form: form, Errors: formErrors}, http.StatusInternalServerError)
			return
		}
	}

	sess := shared.SessionFromContext(r.Context())
	store := access.NewStore(sess)
	if _, err := h.engine.Login(r.Context(), store, form.Email, form.Password, ""); err != nil {
		http.Redirect(w, r, access.PathLogin, http.StatusSeeOther)
		return
	}
	h.finishLogin(w, r, sess, store)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	h.engine.Logout(access.NewStore(sess))
	if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "You have been signed out."})
	}
	http.Redirect(w, r, access.PathHome, http.StatusSeeOther)
}

// finishLogin replays a stashed redirect target exactly once, falling back
// to home.
func (h *Handler) finishLogin(w http.ResponseWriter, r *http.Request, sess *shared.Session, store *access.Store) {
	if sess != nil {
		sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "Welcome back."})
	}
	target := store.ConsumeRedirect()
	if target == "" {
		target = access.PathHome
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
}

func (h *Handler) renderLogin(w http.ResponseWriter, r *http.Request, data loginPageData, status int) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Sign In")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/login.html", viewData); err != nil {
		h.logger.Error("render login", slog.Any("error", err))
	}
}

func (h *Handler) renderSignup(w http.ResponseWriter, r *http.Request, data signupPageData, status int) {
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Create Account")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/signup.html", viewData); err != nil {
		h.logger.Error("render signup", slog.Any("error", err))
	}
}

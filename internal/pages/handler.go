// Package pages serves the screens that have no module of their own: the
// landing page, static content pages and the role dashboards.
package pages

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler renders the standalone pages.
type Handler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, templates: templates, csrf: csrf}
}

// MountRoutes registers the standalone pages at the router root.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showHome)
	r.Get("/contact", h.showContact)
	r.Get("/unauthorized", h.showUnauthorized)
	r.Get("/profile", h.showProfile)
	r.Get("/shipping-address", h.showShippingAddress)
	r.Post("/shipping-address", h.saveShippingAddress)
}

func (h *Handler) showHome(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/home.html", "Savoria", nil)
}

func (h *Handler) showContact(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/contact.html", "Contact", nil)
}

func (h *Handler) showUnauthorized(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/unauthorized.html", "Unauthorized", nil)
}

func (h *Handler) showProfile(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	id := access.NewStore(sess).Identity()
	data := struct {
		Email string
		Role  string
	}{Email: id.Email, Role: id.Role.String()}
	h.render(w, r, "pages/profile.html", "My Profile", data)
}

func (h *Handler) showShippingAddress(w http.ResponseWriter, r *http.Request) {
	sess := shared.SessionFromContext(r.Context())
	data := shippingAddressData{}
	if sess != nil {
		data.Address = sess.Get("shippingAddress")
	}
	h.render(w, r, "pages/shipping_address.html", "Shipping Address", data)
}

type shippingAddressData struct {
	Address string
	Saved   bool
}

func (h *Handler) saveShippingAddress(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	address := r.PostFormValue("address")
	sess := shared.SessionFromContext(r.Context())
	if sess != nil && address != "" {
		sess.Set("shippingAddress", address)
	}
	h.render(w, r, "pages/shipping_address.html", "Shipping Address", shippingAddressData{Address: address, Saved: true})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	viewData := view.BaseData(r, h.csrf, title)
	viewData.Data = data
	if err := h.templates.Render(w, page, viewData); err != nil {
		h.logger.Error("render page", slog.String("page", page), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

// Package dashboard serves the employer and super admin screens: the
// business overview, reports, restaurant settings and the platform-wide
// grant console.
package dashboard

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/savoria-erp/savoria/internal/grants"
	"github.com/savoria-erp/savoria/internal/inventory"
	"github.com/savoria-erp/savoria/internal/menu"
	"github.com/savoria-erp/savoria/internal/orders"
	"github.com/savoria-erp/savoria/internal/platform/httpx"
	"github.com/savoria-erp/savoria/internal/reservations"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler renders the employer-and-above screens.
type Handler struct {
	logger       *slog.Logger
	orders       *orders.Service
	reservations *reservations.Service
	inventory    *inventory.Service
	menu         *menu.Service
	grants       *grants.Service
	templates    *view.Engine
	csrf         *shared.CSRFManager
	validator    *validator.Validate
}

// Config groups the Handler's collaborators.
type Config struct {
	Logger       *slog.Logger
	Orders       *orders.Service
	Reservations *reservations.Service
	Inventory    *inventory.Service
	Menu         *menu.Service
	Grants       *grants.Service
	Templates    *view.Engine
	CSRF         *shared.CSRFManager
}

// NewHandler constructs a Handler.
func NewHandler(cfg Config) *Handler {
	return &Handler{
		logger:       cfg.Logger,
		orders:       cfg.Orders,
		reservations: cfg.Reservations,
		inventory:    cfg.Inventory,
		menu:         cfg.Menu,
		grants:       cfg.Grants,
		templates:    cfg.Templates,
		csrf:         cfg.CSRF,
		validator:    validator.New(),
	}
}

// MountRoutes registers the dashboard routes at the router root so the
// paths line up with the permission table.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/employer-dashboard", h.showOverview)
	r.Get("/reports", h.showReports)
	r.Get("/reports/export", h.exportReports)
	r.Get("/settings", h.showSettings)
	r.Post("/settings/menu", h.addMenuItem)
	r.Post("/settings/menu/{id}/availability", h.toggleMenuItem)
	r.Get("/super-admin", h.showSuperAdmin)
}

type overviewData struct {
	OrderCounts  map[orders.Status]int
	Reservations int
	LowStock     []inventory.StockItem
}

func (h *Handler) showOverview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := overviewData{}
	var err error
	if data.OrderCounts, err = h.orders.Counts(ctx); err != nil {
		h.logger.Error("order counts", slog.Any("error", err))
	}
	if data.Reservations, err = h.reservations.Count(ctx); err != nil {
		h.logger.Error("reservation count", slog.Any("error", err))
	}
	if data.LowStock, err = h.inventory.LowStock(ctx); err != nil {
		h.logger.Error("low stock", slog.Any("error", err))
	}
	h.render(w, r, "pages/employer_dashboard.html", "Dashboard", data)
}

type reportData struct {
	OrderCounts  map[orders.Status]int
	Reservations int
	MenuItems    int
}

func (h *Handler) buildReport(r *http.Request) reportData {
	ctx := r.Context()
	data := reportData{}
	var err error
	if data.OrderCounts, err = h.orders.Counts(ctx); err != nil {
		h.logger.Error("order counts", slog.Any("error", err))
	}
	if data.Reservations, err = h.reservations.Count(ctx); err != nil {
		h.logger.Error("reservation count", slog.Any("error", err))
	}
	items, err := h.menu.All(ctx)
	if err != nil {
		h.logger.Error("menu items", slog.Any("error", err))
	}
	data.MenuItems = len(items)
	return data
}

func (h *Handler) showReports(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "pages/reports.html", "Reports", h.buildReport(r))
}

func (h *Handler) exportReports(w http.ResponseWriter, r *http.Request) {
	data := h.buildReport(r)
	counts := make(map[string]int, len(data.OrderCounts))
	for status, n := range data.OrderCounts {
		counts[string(status)] = n
	}
	httpx.JSON(w, http.StatusOK, map[string]any{
		"orders":       counts,
		"reservations": data.Reservations,
		"menuItems":    data.MenuItems,
	})
}

type menuItemForm struct {
	Name       string `validate:"required"`
	Category   string `validate:"required"`
	PriceCents int64  `validate:"gt=0"`
}

type settingsData struct {
	Items  []menu.Item
	Form   menuItemForm
	Errors map[string]string
}

func (h *Handler) showSettings(w http.ResponseWriter, r *http.Request) {
	h.renderSettings(w, r, settingsData{}, http.StatusOK)
}

func (h *Handler) addMenuItem(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	price, _ := strconv.ParseInt(r.PostFormValue("price_cents"), 10, 64)
	form := menuItemForm{
		Name:       r.PostFormValue("name"),
		Category:   r.PostFormValue("category"),
		PriceCents: price,
	}
	formErrors := make(map[string]string)
	if err := h.validator.Struct(form); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fieldErr := range verrs {
				if fieldErr.Field() == "PriceCents" {
					formErrors["PriceCents"] = "Price must be greater than zero."
					continue
				}
				formErrors[fieldErr.Field()] = "This field is required."
			}
		}
	}
	if len(formErrors) > 0 {
		h.renderSettings(w, r, settingsData{Form: form, Errors: formErrors}, http.StatusBadRequest)
		return
	}
	if _, err := h.menu.Add(r.Context(), menu.Item{Name: form.Name, Category: form.Category, PriceCents: form.PriceCents, Available: true}); err != nil {
		h.logger.Error("add menu item", slog.Any("error", err))
		h.renderSettings(w, r, settingsData{Form: form, Errors: map[string]string{"general": "Could not save the menu item."}}, http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

func (h *Handler) toggleMenuItem(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	available := r.PostFormValue("available") == "1"
	if err := h.menu.SetAvailability(r.Context(), id, available); err != nil && !errors.Is(err, shared.ErrNotFound) {
		h.logger.Error("set availability", slog.Int64("id", id), slog.Any("error", err))
	}
	http.Redirect(w, r, "/settings", http.StatusSeeOther)
}

type superAdminData struct {
	EmployerGrants []grants.Grant
	AdminGrants    []grants.Grant
}

func (h *Handler) showSuperAdmin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	data := superAdminData{}
	var err error
	if data.EmployerGrants, err = h.grants.List(ctx, grants.KindEmployer); err != nil {
		h.logger.Error("list employer grants", slog.Any("error", err))
	}
	if data.AdminGrants, err = h.grants.List(ctx, grants.KindAdmin); err != nil {
		h.logger.Error("list admin grants", slog.Any("error", err))
	}
	h.render(w, r, "pages/super_admin.html", "Platform Console", data)
}

func (h *Handler) renderSettings(w http.ResponseWriter, r *http.Request, data settingsData, status int) {
	items, err := h.menu.All(r.Context())
	if err != nil {
		h.logger.Error("menu items", slog.Any("error", err))
	}
	data.Items = items
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	h.render(w, r, "pages/settings.html", "Settings", data)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, page, title string, data any) {
	viewData := view.BaseData(r, h.csrf, title)
	viewData.Data = data
	if err := h.templates.Render(w, page, viewData); err != nil {
		h.logger.Error("render dashboard", slog.String("page", page), slog.Any("error", err))
	}
}

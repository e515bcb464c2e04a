package orders

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/menu"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler wires order placement and history screens.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	menu      *menu.Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, menuSvc *menu.Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, menu: menuSvc, templates: templates, csrf: csrf}
}

// MountRoutes registers order routes at the router root so paths line up
// with the permission table.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/orders", h.showHistory)
	r.Post("/orders/{id}/status", h.handleStatus)
	r.Get("/order-placement", h.showPlacement)
	r.Post("/order-placement", h.handlePlacement)
	r.Get("/order-placed", h.showPlaced)
}

// staffRoles can see and drive every order.
func isStaff(id access.Identity) bool {
	switch id.Role {
	case access.RoleEmployee, access.RoleEmployer, access.RoleAdmin, access.RoleSuperAdmin:
		return true
	}
	return false
}

type historyPageData struct {
	Orders []Order
	Staff  bool
}

func (h *Handler) showHistory(w http.ResponseWriter, r *http.Request) {
	viewData := view.BaseData(r, h.csrf, "Orders")
	staff := isStaff(viewData.Identity)
	list, err := h.service.History(r.Context(), viewData.Identity.Email, staff)
	if err != nil {
		h.logger.Error("list orders", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	viewData.Data = historyPageData{Orders: list, Staff: staff}
	if err := h.templates.Render(w, "pages/orders.html", viewData); err != nil {
		h.logger.Error("render orders", slog.Any("error", err))
	}
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	to, err := ParseStatus(r.PostFormValue("status"))
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	sess := shared.SessionFromContext(r.Context())
	identity := access.NewStore(sess).Identity()
	actor := ActorCustomer
	if isStaff(identity) {
		actor = ActorStaff
	}

	if _, err := h.service.Advance(r.Context(), id, to, actor, identity.Email); err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		}
		if sess != nil {
			sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "That status change is not allowed."})
		}
	}
	http.Redirect(w, r, "/orders", http.StatusSeeOther)
}

func (h *Handler) showPlacement(w http.ResponseWriter, r *http.Request) {
	sections, err := h.menu.Sections(r.Context())
	if err != nil {
		h.logger.Error("load menu for placement", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	viewData := view.BaseData(r, h.csrf, "Place Order")
	viewData.Data = sections
	if err := h.templates.Render(w, "pages/order_placement.html", viewData); err != nil {
		h.logger.Error("render order placement", slog.Any("error", err))
	}
}

func (h *Handler) handlePlacement(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	// Quantities arrive as qty_<itemID> form fields.
	var inputs []PlacementInput
	for field, values := range r.PostForm {
		if !strings.HasPrefix(field, "qty_") || len(values) == 0 {
			continue
		}
		itemID, err := strconv.ParseInt(strings.TrimPrefix(field, "qty_"), 10, 64)
		if err != nil {
			continue
		}
		qty, err := strconv.Atoi(values[0])
		if err != nil || qty <= 0 {
			continue
		}
		inputs = append(inputs, PlacementInput{ItemID: itemID, Qty: qty})
	}

	sess := shared.SessionFromContext(r.Context())
	identity := access.NewStore(sess).Identity()
	order, err := h.service.Place(r.Context(), identity.Email, inputs)
	if err != nil {
		if errors.Is(err, ErrEmptyOrder) {
			if sess != nil {
				sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "Pick at least one item before placing an order."})
			}
			http.Redirect(w, r, "/order-placement", http.StatusSeeOther)
			return
		}
		h.logger.Error("place order", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, "/order-placed?id="+strconv.FormatInt(order.ID, 10), http.StatusSeeOther)
}

func (h *Handler) showPlaced(w http.ResponseWriter, r *http.Request) {
	viewData := view.BaseData(r, h.csrf, "Order Placed")
	if raw := r.URL.Query().Get("id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			if order, err := h.service.store.GetOrder(r.Context(), id); err == nil && order.CustomerEmail == viewData.Identity.Email {
				viewData.Data = order
			}
		}
	}
	if err := h.templates.Render(w, "pages/order_placed.html", viewData); err != nil {
		h.logger.Error("render order placed", slog.Any("error", err))
	}
}

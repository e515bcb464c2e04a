package inventory

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler wires the stock screen.
type Handler struct {
	logger    *slog.Logger
	service   *Service
	templates *view.Engine
	csrf      *shared.CSRFManager
}

// NewHandler constructs a Handler.
func NewHandler(logger *slog.Logger, service *Service, templates *view.Engine, csrf *shared.CSRFManager) *Handler {
	return &Handler{logger: logger, service: service, templates: templates, csrf: csrf}
}

// MountRoutes registers stock routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showStock)
	r.Post("/", h.handleAdd)
	r.Post("/{id}/adjust", h.handleAdjust)
}

type stockPageData struct {
	Items  []StockItem
	Errors map[string]string
}

func (h *Handler) showStock(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, stockPageData{}, http.StatusOK)
}

func (h *Handler) handleAdd(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	quantity, _ := strconv.ParseFloat(r.PostFormValue("quantity"), 64)
	reorder, _ := strconv.ParseFloat(r.PostFormValue("reorder_level"), 64)
	_, err := h.service.Add(r.Context(), StockItem{
		Name:         r.PostFormValue("name"),
		Unit:         r.PostFormValue("unit"),
		Quantity:     quantity,
		ReorderLevel: reorder,
	})
	if err != nil {
		h.render(w, r, stockPageData{Errors: map[string]string{"general": err.Error()}}, http.StatusBadRequest)
		return
	}
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}

func (h *Handler) handleAdjust(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	delta, err := strconv.ParseFloat(r.PostFormValue("delta"), 64)
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	sess := shared.SessionFromContext(r.Context())
	if _, err := h.service.Adjust(r.Context(), id, delta, r.PostFormValue("note")); err != nil {
		switch {
		case errors.Is(err, ErrInsufficientStock):
			if sess != nil {
				sess.AddFlash(shared.FlashMessage{Kind: "error", Message: "Stock cannot go below zero."})
			}
		case errors.Is(err, shared.ErrNotFound):
			http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
			return
		default:
			h.logger.Error("adjust stock", slog.Int64("id", id), slog.Any("error", err))
		}
	}
	http.Redirect(w, r, "/inventory", http.StatusSeeOther)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data stockPageData, status int) {
	items, err := h.service.List(r.Context())
	if err != nil {
		h.logger.Error("list stock", slog.Any("error", err))
	}
	data.Items = items
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	viewData := view.BaseData(r, h.csrf, "Inventory")
	viewData.Data = data
	if err := h.templates.Render(w, "pages/inventory.html", viewData); err != nil {
		h.logger.Error("render inventory", slog.Any("error", err))
	}
}

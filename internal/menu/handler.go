package menu

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
)

// Handler renders the public menu.
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

// MountRoutes registers the menu routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/", h.showMenu)
}

func (h *Handler) showMenu(w http.ResponseWriter, r *http.Request) {
	sections, err := h.service.Sections(r.Context())
	if err != nil {
		h.logger.Error("load menu", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	viewData := view.BaseData(r, h.csrf, "Menu")
	viewData.Data = sections
	if err := h.templates.Render(w, "pages/menu.html", viewData); err != nil {
		h.logger.Error("render menu", slog.Any("error", err))
	}
}

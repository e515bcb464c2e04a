package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/auth"
	"github.com/savoria-erp/savoria/internal/customers"
	"github.com/savoria-erp/savoria/internal/dashboard"
	"github.com/savoria-erp/savoria/internal/employees"
	"github.com/savoria-erp/savoria/internal/feedback"
	"github.com/savoria-erp/savoria/internal/grants"
	"github.com/savoria-erp/savoria/internal/inventory"
	"github.com/savoria-erp/savoria/internal/menu"
	"github.com/savoria-erp/savoria/internal/observability"
	"github.com/savoria-erp/savoria/internal/orders"
	"github.com/savoria-erp/savoria/internal/pages"
	"github.com/savoria-erp/savoria/internal/reservations"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/jobs"
	"github.com/savoria-erp/savoria/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger         *slog.Logger
	Config         *Config
	SessionManager *shared.SessionManager
	CSRFManager    *shared.CSRFManager
	Guard          *access.Guard

	PagesHandler        *pages.Handler
	AuthHandler         *auth.Handler
	MenuHandler         *menu.Handler
	OrdersHandler       *orders.Handler
	ReservationsHandler *reservations.Handler
	CustomersHandler    *customers.Handler
	EmployeesHandler    *employees.Handler
	InventoryHandler    *inventory.Handler
	FeedbackHandler     *feedback.Handler
	GrantsHandler       *grants.Handler
	DashboardHandler    *dashboard.Handler
	JobHandler          *jobs.Handler

	Metrics *observability.Metrics
}

// NewRouter constructs the chi.Router with Savoria defaults. Every route
// sits behind the access guard; the guard's exempt prefixes carry the
// operational endpoints.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
		CSRFManager:    params.CSRFManager,
		Metrics:        params.Metrics,
	}) {
		r.Use(mw)
	}

	r.Use(chimw.Logger)
	r.Use(params.Guard.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	params.PagesHandler.MountRoutes(r)
	params.AuthHandler.MountRoutes(r)
	params.OrdersHandler.MountRoutes(r)
	params.DashboardHandler.MountRoutes(r)
	r.Route("/menu", params.MenuHandler.MountRoutes)
	r.Route("/reservations", params.ReservationsHandler.MountRoutes)
	r.Route("/customers", params.CustomersHandler.MountRoutes)
	r.Route("/employees", params.EmployeesHandler.MountRoutes)
	r.Route("/inventory", params.InventoryHandler.MountRoutes)
	r.Route("/feedback", params.FeedbackHandler.MountRoutes)
	r.Route("/admin", params.GrantsHandler.MountRoutes)

	if params.JobHandler != nil {
		r.Route("/jobs", params.JobHandler.MountRoutes)
	}
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	return r
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

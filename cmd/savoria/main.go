package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"golang.org/x/sync/errgroup"

	"github.com/savoria-erp/savoria/internal/access"
	"github.com/savoria-erp/savoria/internal/app"
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
	"github.com/savoria-erp/savoria/internal/platform/cache"
	"github.com/savoria-erp/savoria/internal/platform/db"
	"github.com/savoria-erp/savoria/internal/reservations"
	"github.com/savoria-erp/savoria/internal/shared"
	"github.com/savoria-erp/savoria/internal/view"
	"github.com/savoria-erp/savoria/jobs"
)

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	dbpool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer dbpool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	sessionManager := shared.NewSessionManager(redisClient, "savoria_session", cfg.SessionSecret, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	metrics := observability.NewMetrics()

	grantRepo := grants.NewRepository(redisClient)
	grantService := grants.NewService(grantRepo)
	grantHandler := grants.NewHandler(logger, grantService, templates, csrfManager)

	engine := access.NewEngine(access.EngineConfig{
		Grants:        grantService,
		Logger:        logger,
		SuperEmail:    cfg.SuperAdminEmail,
		SuperPassword: cfg.SuperAdminPassword,
	})
	guard := access.NewGuard(engine, logger, "/static", "/healthz", "/metrics", "/jobs", "/logout")
	guard.RecordDenialsTo(metrics)

	authRepo := auth.NewRepository(dbpool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, engine, authService, templates, csrfManager)
	authHandler.RecordLoginsTo(metrics)

	menuRepo := menu.NewRepository(dbpool)
	menuService := menu.NewService(menuRepo)
	menuHandler := menu.NewHandler(logger, menuService, templates, csrfManager)

	orderRepo := orders.NewRepository(dbpool)
	orderService := orders.NewService(orderRepo, menuService)
	orderHandler := orders.NewHandler(logger, orderService, menuService, templates, csrfManager)

	reservationRepo := reservations.NewRepository(dbpool)
	reservationService := reservations.NewService(reservationRepo)
	reservationHandler := reservations.NewHandler(logger, reservationService, templates, csrfManager)

	customerRepo := customers.NewRepository(dbpool)
	customerHandler := customers.NewHandler(logger, customerRepo, templates, csrfManager)

	employeeRepo := employees.NewRepository(dbpool)
	employeeHandler := employees.NewHandler(logger, employeeRepo, templates, csrfManager)

	inventoryRepo := inventory.NewRepository(dbpool)
	inventoryService := inventory.NewService(inventoryRepo)
	inventoryHandler := inventory.NewHandler(logger, inventoryService, templates, csrfManager)

	feedbackRepo := feedback.NewRepository(dbpool)
	feedbackHandler := feedback.NewHandler(logger, feedbackRepo, templates, csrfManager)

	pagesHandler := pages.NewHandler(logger, templates, csrfManager)

	dashboardHandler := dashboard.NewHandler(dashboard.Config{
		Logger:       logger,
		Orders:       orderService,
		Reservations: reservationService,
		Inventory:    inventoryService,
		Menu:         menuService,
		Grants:       grantService,
		Templates:    templates,
		CSRF:         csrfManager,
	})

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := inspector.Close(); err != nil {
			logger.Warn("inspector close", slog.Any("error", err))
		}
	}()
	jobHandler := jobs.NewHandler(inspector, logger)

	router := app.NewRouter(app.RouterParams{
		Logger:              logger,
		Config:              cfg,
		SessionManager:      sessionManager,
		CSRFManager:         csrfManager,
		Guard:               guard,
		PagesHandler:        pagesHandler,
		AuthHandler:         authHandler,
		MenuHandler:         menuHandler,
		OrdersHandler:       orderHandler,
		ReservationsHandler: reservationHandler,
		CustomersHandler:    customerHandler,
		EmployeesHandler:    employeeHandler,
		InventoryHandler:    inventoryHandler,
		FeedbackHandler:     feedbackHandler,
		GrantsHandler:       grantHandler,
		DashboardHandler:    dashboardHandler,
		JobHandler:          jobHandler,
		Metrics:             metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})
	group.Go(func() error {
		<-groupCtx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := group.Wait(); err != nil {
		logger.Error("server exit", slog.Any("error", err))
		os.Exit(1)
	}
}

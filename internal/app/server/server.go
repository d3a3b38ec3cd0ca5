package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"hrsys/internal/domain/attendance"
	"hrsys/internal/domain/audit"
	"hrsys/internal/domain/auth"
	"hrsys/internal/domain/core"
	"hrsys/internal/domain/leave"
	"hrsys/internal/domain/reports"
	"hrsys/internal/platform/config"
	"hrsys/internal/platform/db"
	"hrsys/internal/platform/metrics"
	"hrsys/internal/transport/http/api"
	attendancehandler "hrsys/internal/transport/http/handlers/attendance"
	audithandler "hrsys/internal/transport/http/handlers/audit"
	authhandler "hrsys/internal/transport/http/handlers/auth"
	corehandler "hrsys/internal/transport/http/handlers/core"
	leavehandler "hrsys/internal/transport/http/handlers/leave"
	reportshandler "hrsys/internal/transport/http/handlers/reports"
	"hrsys/internal/transport/http/middleware"
)

type App struct {
	Config  config.Config
	Pool    *pgxpool.Pool
	Router  http.Handler
	Metrics *metrics.Collector
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	pool, err := db.Connect(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("db connect: %w", err)
	}

	if cfg.RunMigrations {
		if err := db.Migrate(ctx, pool, cfg.MigrationsDir); err != nil {
			pool.Close()
			return nil, fmt.Errorf("migrations: %w", err)
		}
	}
	if cfg.RunSeed {
		if err := db.Seed(ctx, pool, cfg); err != nil {
			pool.Close()
			return nil, fmt.Errorf("seed: %w", err)
		}
	}

	app := &App{Config: cfg, Pool: pool, Metrics: metrics.New()}
	app.Router = app.buildRouter()
	return app, nil
}

func (a *App) buildRouter() http.Handler {
	auditSvc := audit.New(a.Pool)
	authSvc := auth.NewService(auth.NewStore(a.Pool), a.Config.JWTSecret, a.Config.TokenTTL)
	coreSvc := core.NewService(core.NewStore(a.Pool))
	leaveSvc := leave.NewService(leave.NewStore(a.Pool))
	attendanceSvc := attendance.NewService(attendance.NewStore(a.Pool))
	reportsSvc := reports.NewService(reports.NewStore(a.Pool))

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	if a.Config.MetricsEnabled {
		router.Use(middleware.Metrics(a.Metrics))
	}
	router.Use(middleware.BodyLimit(a.Config.MaxBodyBytes))
	router.Use(middleware.Auth(a.Config.JWTSecret))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	router.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := a.Pool.Ping(ctx); err != nil {
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})

	if a.Config.MetricsEnabled {
		router.With(middleware.RequireRole(auth.RoleAdmin)).Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
			api.Success(w, a.Metrics.Snapshot(), middleware.GetRequestID(r.Context()))
		})
	}

	router.Route("/api/v1", func(r chi.Router) {
		authhandler.NewHandler(authSvc).RegisterRoutes(r)
		corehandler.NewHandler(coreSvc, auditSvc).RegisterRoutes(r)
		leavehandler.NewHandler(leaveSvc, auditSvc).RegisterRoutes(r)
		attendancehandler.NewHandler(attendanceSvc).RegisterRoutes(r)
		reportshandler.NewHandler(reportsSvc).RegisterRoutes(r)
		audithandler.NewHandler(auditSvc).RegisterRoutes(r)
	})

	return router
}

func (a *App) Run() error {
	log.Printf("hrsys server listening on %s", a.Config.Addr)
	return http.ListenAndServe(a.Config.Addr, a.Router)
}

func (a *App) Close() {
	a.Pool.Close()
}

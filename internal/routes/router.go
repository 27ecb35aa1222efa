package routes

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"flightbay/techlog/internal/api"
	"flightbay/techlog/internal/db"
	"flightbay/techlog/internal/jobs"
	"flightbay/techlog/internal/logging"
	"flightbay/techlog/internal/metrics"
	"flightbay/techlog/internal/middleware"
	"flightbay/techlog/internal/workers"
)

func RegisterRoutes(upSince time.Time) http.Handler {

	// initialize Chi router
	r := chi.NewRouter()

	// Initialize metrics registry
	metricsReg := metrics.NewMetricsRegistry()

	// global middleware
	r.Use(middleware.RequestIDMiddleware)
	r.Use(middleware.MetricsMiddleware(metricsReg))
	r.Use(middleware.RateLimitMiddleware)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"https://*", "http://localhost:8081"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token", "X-API-Key", "X-Org-Id", "X-User-Id"},
		ExposedHeaders:   []string{"Link", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))

	logging.Info("Router initialized with metrics and logging middleware")

	// Initialize dependencies using DI pattern
	deps, err := api.InitDependencies(metricsReg)
	if err != nil {
		panic("Failed to initialize dependencies: " + err.Error())
	}

	// health check
	r.Get("/healthCheck", api.HealthCheckHandler(db.DB, deps.Redis, upSince))

	// Initialize handlers with dependencies
	handlers := api.NewHandlers(deps)

	// Background reconcile workers drain the per-organization dirty-range
	// streams; the scheduled job keeps inspection status caches warm.
	workers.InitWorkers(context.Background(), deps.Repo.Org, deps.Services.Queue, deps.Services.Ledger, metricsReg)
	jobs.InitializeJobs(context.Background(), deps.Repo.Org, deps.Repo.Aircraft, deps.Services.Inspection, deps.Services.Cache)

	RegisterAPIRoutes(r, deps, handlers)

	return r
}

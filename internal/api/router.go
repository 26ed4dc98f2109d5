package api

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/api/handlers"
	mw "github.com/gduffy1993-png/casebrain-hub-sub007/internal/api/middleware"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/config"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/domain"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/service"
	"github.com/gduffy1993-png/casebrain-hub-sub007/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// App holds the router and request counters for lifecycle management.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires stores, the reasoning pipeline and handlers. Lens registry
// construction is the one call allowed to fail here: a practice area
// without a lens is a programming error and must stop the process.
func NewApp(db *pgxpool.Pool, logger *zap.Logger) (*App, error) {
	// Stores
	tenantStore := store.NewTenantStore(db)
	caseStore := store.NewCaseStore(db)
	documentStore := store.NewDocumentStore(db)
	graphStore := store.NewGraphStore(db)
	strategyStore := store.NewStrategyStore(db)

	// Engine stages (pure)
	registry, err := service.NewLensRegistry()
	if err != nil {
		return nil, err
	}
	graphBuilder := service.NewGraphBuilderService()
	lensSvc := service.NewLensService(registry)
	strategySvc := service.NewStrategyService()
	fightSvc := service.NewFightService()
	normalizer := service.NewNormalizerService()

	// Calling layer
	caseSvc := service.NewCaseService(
		caseStore, documentStore, graphStore, strategyStore,
		graphBuilder, lensSvc, strategySvc, fightSvc, normalizer,
		logger,
	)

	// Handlers
	tenantHandler := handlers.NewTenantHandler(tenantStore)
	caseHandler := handlers.NewCaseHandler(caseSvc)
	reasoningHandler := handlers.NewReasoningHandler(caseSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)
	r.Use(middleware.RealIP)
	r.Use(metricsCollector.Middleware)
	r.Use(mw.Logging(logger))
	r.Use(middleware.Recoverer)
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst()))

	// Health and metrics (no auth)
	r.Get("/health", healthHandler(db))
	r.Get("/metrics", app.metricsHandler())

	// Firm creation (no auth, bootstrap endpoint)
	r.Post("/v1/tenants", tenantHandler.Create)

	// Authenticated routes
	r.Route("/v1", func(r chi.Router) {
		r.Use(mw.APIKeyAuth(tenantStore))

		r.Route("/cases", func(r chi.Router) {
			r.Post("/", caseHandler.Create)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", caseHandler.GetByID)
				r.Post("/phase", caseHandler.AdvancePhase)
				r.Post("/documents", caseHandler.AddDocument)
				r.Get("/documents", caseHandler.ListDocuments)

				// Reasoning pipeline
				r.Get("/graph", reasoningHandler.GetGraph)
				r.Get("/graph/snapshot", reasoningHandler.GetGraphSnapshot)
				r.Get("/disclosure", reasoningHandler.GetDisclosure)
				r.Get("/pillars", reasoningHandler.GetPillars)
				r.Get("/strategies", reasoningHandler.GetStrategies)
				r.Get("/strategies/snapshot", reasoningHandler.GetStrategySnapshot)
				r.Get("/routes", reasoningHandler.GetRoutes)
			})
		})
	})

	return app, nil
}

func healthHandler(db *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if err := db.Ping(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			_ = json.NewEncoder(w).Encode(map[string]string{"status": "error", "error": err.Error()})
			return
		}
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}

func (app *App) metricsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var memStats runtime.MemStats
		runtime.ReadMemStats(&memStats)

		uptime := time.Since(app.startTime)

		response := map[string]any{
			"uptime_seconds": uptime.Seconds(),
			"uptime_human":   uptime.Round(time.Second).String(),
			"request_count":  app.requestCount.Load(),
			"error_count":    app.errorCount.Load(),
			"goroutines":     runtime.NumGoroutine(),
			"memory": map[string]any{
				"alloc_mb":       float64(memStats.Alloc) / 1024 / 1024,
				"total_alloc_mb": float64(memStats.TotalAlloc) / 1024 / 1024,
				"sys_mb":         float64(memStats.Sys) / 1024 / 1024,
				"num_gc":         memStats.NumGC,
			},
			"go_version": runtime.Version(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores satisfy their interfaces at compile time.
var (
	_ domain.TenantStore   = (*store.TenantStore)(nil)
	_ domain.CaseStore     = (*store.CaseStore)(nil)
	_ domain.DocumentStore = (*store.DocumentStore)(nil)
	_ domain.GraphStore    = (*store.GraphStore)(nil)
	_ domain.StrategyStore = (*store.StrategyStore)(nil)
)

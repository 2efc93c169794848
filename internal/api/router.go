package api

import (
	"encoding/json"
	"math/rand"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/kindred-ai/kindred/internal/api/handlers"
	mw "github.com/kindred-ai/kindred/internal/api/middleware"
	"github.com/kindred-ai/kindred/internal/buildconfig"
	"github.com/kindred-ai/kindred/internal/config"
	"github.com/kindred-ai/kindred/internal/domain"
	"github.com/kindred-ai/kindred/internal/eval"
	"github.com/kindred-ai/kindred/internal/llm"
	"github.com/kindred-ai/kindred/internal/responder"
	"github.com/kindred-ai/kindred/internal/service"
	"github.com/kindred-ai/kindred/internal/store"
)

// App holds the router plus process-level request metrics.
type App struct {
	Router       *chi.Mux
	startTime    time.Time
	requestCount atomic.Int64
	errorCount   atomic.Int64
}

// NewApp wires stores, clients, services, and handlers into the HTTP router.
// The LLM client may be nil; the persona simulator then handles every turn.
func NewApp(profileStore domain.ProfileStore, llmClient domain.ChatClient, cfg *domain.PersonaConfig, wisdom *domain.Wisdom, logger *zap.Logger) *App {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Services
	sim := responder.New(cfg, wisdom, rng)
	engine := eval.NewEngine(cfg)
	chatSvc := service.NewChatService(profileStore, llmClient, sim, cfg, wisdom, logger)
	evalSvc := service.NewEvaluationService(profileStore, engine, logger)
	adminSvc := service.NewAdminService(profileStore)

	// Handlers
	chatHandler := handlers.NewChatHandler(chatSvc)
	adminHandler := handlers.NewAdminHandler(adminSvc, evalSvc)

	r := chi.NewRouter()

	app := &App{
		Router:    r,
		startTime: time.Now(),
	}

	// Metrics collector for middleware
	metricsCollector := mw.NewMetricsCollector(&app.requestCount, &app.errorCount)

	// Global middleware (order matters)
	r.Use(mw.RequestID)                                                 // Generate/extract request ID first
	r.Use(middleware.RealIP)                                            // Extract real IP
	r.Use(metricsCollector.Middleware)                                  // Collect metrics
	r.Use(mw.Logging(logger))                                           // Log all requests
	r.Use(middleware.Recoverer)                                         // Recover from panics
	r.Use(mw.RateLimit(config.RateLimitRPS(), config.RateLimitBurst())) // Rate limiting

	// Health (no auth)
	r.Get("/health", healthHandler())

	// Metrics (no auth)
	r.Get("/metrics", app.metricsHandler())

	r.Route("/v1", func(r chi.Router) {
		// Public chat surface
		r.Post("/chat", chatHandler.Turn)
		r.Get("/chat/session", chatHandler.Session)
		r.Delete("/chat/session", chatHandler.ClearSession)

		// Admin surface behind bearer token
		r.Route("/admin", func(r chi.Router) {
			r.Use(mw.AdminAuth(config.AdminToken()))

			r.Get("/analytics", adminHandler.Analytics)
			r.Route("/profiles", func(r chi.Router) {
				r.Get("/", adminHandler.ListProfiles)
				r.Route("/{sessionID}", func(r chi.Router) {
					r.Get("/", adminHandler.GetProfile)
					r.Post("/evaluate", adminHandler.Reevaluate)
					r.Get("/similar", adminHandler.Similar)
					r.Post("/block", adminHandler.Block)
				})
			})
		})
	})

	return app
}

func healthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
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
			"build":      buildconfig.VersionInfo(),
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_ = json.NewEncoder(w).Encode(response)
	}
}

// Ensure stores and clients satisfy interfaces at compile time.
var (
	_ domain.ProfileStore = (*store.ProfileStore)(nil)
	_ domain.ProfileStore = (*store.SQLiteStore)(nil)
	_ domain.ChatClient   = (*llm.OllamaClient)(nil)
	_ domain.ChatClient   = (*llm.OpenAIClient)(nil)
	_ domain.ChatClient   = (*llm.MockClient)(nil)
)

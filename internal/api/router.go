package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/MikeSquared-Agency/Toxscan/internal/catalog"
	"github.com/MikeSquared-Agency/Toxscan/internal/config"
	"github.com/MikeSquared-Agency/Toxscan/internal/labs"
	"github.com/MikeSquared-Agency/Toxscan/internal/metrics"
	"github.com/MikeSquared-Agency/Toxscan/internal/scoring"
	"github.com/MikeSquared-Agency/Toxscan/internal/store"
)

func NewRouter(c *catalog.Service, e *scoring.Engine, lp *labs.Processor, s store.Store, m *metrics.Metrics, cfg config.ServerConfig, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger, m))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", ClientIDHeader},
		MaxAge:         300,
	}))
	r.Use(RateLimitMiddleware(cfg.RateLimitPerSecond, cfg.RateLimitBurst))

	products := NewProductsHandler(c)
	scores := NewScoringHandler(e, m)
	labReports := NewLabsHandler(lp)
	vocabulary := NewVocabularyHandler(e)
	admin := NewAdminHandler(c, s)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/products/{upc}", products.Lookup)
		r.Get("/products/{id}/substitutions", products.Substitutions)

		r.Post("/ingredients/score", scores.ScoreIngredients)
		r.Post("/markers/normalize", scores.NormalizeMarkers)
		r.Post("/labs/reports", labReports.Create)
		r.Get("/vocabulary", vocabulary.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.AdminToken))
			r.Post("/products", products.Create)
			r.Get("/misses", admin.ListMisses)
			r.Patch("/misses/{barcode}", admin.UpdateMiss)
			r.Get("/curation/unmapped", admin.Unmapped)
		})
	})

	return r
}

func NewMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.Handler())
	return r
}

package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GridPoint-Energy/Sitewise/internal/config"
	"github.com/GridPoint-Energy/Sitewise/internal/engine"
	"github.com/GridPoint-Energy/Sitewise/internal/events"
	"github.com/GridPoint-Energy/Sitewise/internal/store"
)

func NewRouter(eng *engine.Engine, s store.Store, ev events.Client, cfg *config.Config, logger *slog.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(RequestLogger(logger))
	r.Use(RateLimitMiddleware(120))

	analyze := NewAnalyzeHandler(eng, s, ev, logger)
	analyses := NewAnalysesHandler(s)
	criteria := NewCriteriaHandler(eng, cfg)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/analyze", analyze.Analyze)
		r.Post("/analyze/batch", analyze.Batch)

		r.Get("/analyses", analyses.List)
		r.Get("/analyses/{id}", analyses.Get)

		r.Get("/criteria", criteria.Get)

		r.Group(func(r chi.Router) {
			r.Use(AdminAuthMiddleware(cfg.Server.AdminToken))
			r.Get("/stats", analyses.Stats)
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

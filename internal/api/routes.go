package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(metricsMiddleware)
	r.Use(securityHeadersMiddleware)

	r.Get("/healthz", s.handleHealth)
	r.Get("/readyz", s.handleReady)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		if s.RequestTimeout > 0 {
			r.Use(timeoutMiddleware(s.RequestTimeout))
		}

		r.Get("/puzzles", s.handleListPuzzles)
		r.Get("/puzzles/{id}", s.handleGetPuzzle)
		r.Post("/puzzles/{id}/preview", s.handlePreview)
		r.Post("/puzzles/{id}/submit", s.handleSubmit)
		r.Get("/puzzles/{id}/solution", s.handleSolution)

		r.Get("/progress/{sessionId}", s.handleListProgress)
		r.Post("/progress", s.handleRecordProgress)

		r.Post("/sessions", s.handleCreateSession)
	})
	return r
}

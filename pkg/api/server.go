// Package api exposes the roster operations over HTTP for station
// dashboards. Rendering and authentication live with the callers.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a router with all routes configured
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		r.Get("/personnel", h.ListPersonnel)
		r.Get("/absences", h.ListAbsences)
		r.Get("/day-type/{date}", h.ClassifyDay)
		r.Get("/rotation-hours", h.RotationHours)

		r.Route("/rosters/{date}", func(r chi.Router) {
			r.Get("/", h.GetRoster)
			r.Post("/generate", h.GenerateRoster)
			r.Post("/candidates", h.ListReplacementCandidates)
			r.Post("/replace", h.ApplyReplacement)
			r.Put("/status", h.SetRosterStatus)
		})
	})

	return r
}

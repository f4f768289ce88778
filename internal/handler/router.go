package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Javier1520/eld/internal/auth"
	"github.com/Javier1520/eld/internal/middleware"
	"github.com/Javier1520/eld/spec"
)

// NewRouter mounts all API routes on a fresh chi router.
//
// /healthz and /openapi.yaml are public; everything under /api requires a
// bearer token verified by the given verifier. Cross-cutting middleware
// (request ID, logging, CORS, body limits) is the caller's concern so tests
// can mount this router bare.
func NewRouter(s *Server, verifier auth.TokenVerifier) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", s.handleHealth)
	r.Get("/openapi.yaml", handleOpenAPI)

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.RequireAuth(verifier))

		r.Route("/trips", func(r chi.Router) {
			r.Get("/", s.handleListTrips)
			r.Post("/", s.handleCreateTrip)
			r.Get("/{id}", s.handleGetTrip)
			r.Put("/{id}", s.handleUpdateTrip)
			r.Delete("/{id}", s.handleDeleteTrip)
		})

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", s.handleListLogs)
			r.Post("/", s.handleCreateLog)
			r.Get("/{id}", s.handleGetLog)
			r.Put("/{id}", s.handleUpdateLog)
			r.Delete("/{id}", s.handleDeleteLog)
		})
	})

	return r
}

// handleOpenAPI serves the embedded OpenAPI document, so the spec and the
// running code are always in sync.
func handleOpenAPI(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/yaml")
	_, _ = w.Write(spec.OpenAPI)
}

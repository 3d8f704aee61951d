package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/cors"

	"github.com/vytor/wordflash/internal/deck"
	"github.com/vytor/wordflash/internal/session"
	"github.com/vytor/wordflash/internal/worker"
)

// Server holds the dependencies of the HTTP surface.
type Server struct {
	Session        *session.Session
	Importer       *deck.Importer
	ImportPool     *worker.Pool
	AllowedOrigins []string
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(recoveryMiddleware)
	r.Use(loggingMiddleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins: s.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
	}).Handler)

	r.Get("/health", s.handleHealth)
	r.Get("/review", s.handleReview)
	r.Post("/review/reveal", s.handleReveal)
	r.Post("/review/hide", s.handleHide)
	r.Post("/review/{id}/rate", s.handleRate)
	r.Post("/import", s.handleImport)
	r.Get("/cards", s.handleCards)
	r.Get("/export.json", s.handleExportJSON)
	r.Get("/export.csv", s.handleExportCSV)
	r.Get("/stats", s.handleStats)

	return r
}

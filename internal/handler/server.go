// Package handler implements the HTTP handlers for the travel search API.
// All handlers are methods on Server. Methods are split into domain-specific
// files (health.go, search.go, ledger.go, ...) but all share the same Server
// struct so they can access its dependencies.
package handler

import (
	"context"

	"github.com/go-chi/chi/v5"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/service"
)

// Searcher defines the search operation the handler depends on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the upstream APIs.
type Searcher interface {
	Search(ctx context.Context, q service.SearchQuery) ([]domain.DerivedRoute, error)
}

// Geocoder defines the location-autocomplete operation the handler depends on.
type Geocoder interface {
	Search(ctx context.Context, q string) ([]domain.Suggestion, error)
}

// Ledger defines the itinerary ledger operations the handler depends on.
type Ledger interface {
	Add(ctx context.Context, route domain.DerivedRoute) (domain.LedgerEntry, error)
	List(ctx context.Context) ([]domain.LedgerEntry, error)
	Remove(ctx context.Context, position int) error
	Clear(ctx context.Context) error
	TotalCost(ctx context.Context) (float64, error)
}

// Exporter defines the CSV export operation the handler depends on.
type Exporter interface {
	Export(ctx context.Context) ([]domain.ExportRow, float64, error)
}

// Server holds the handler dependencies for all API endpoints.
type Server struct {
	search   Searcher
	geocoder Geocoder
	ledger   Ledger
	export   Exporter
}

// NewServer constructs the Server with all its dependencies.
func NewServer(search Searcher, geocoder Geocoder, ledger Ledger, export Exporter) *Server {
	return &Server{search: search, geocoder: geocoder, ledger: ledger, export: export}
}

// Routes returns the API route tree. Mount it on the application router
// after the ambient middleware stack.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.GetHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/locations", s.GetLocations)
		r.Get("/search", s.GetSearch)
		r.Route("/itinerary", func(r chi.Router) {
			r.Get("/", s.GetItinerary)
			r.Post("/", s.AddToItinerary)
			r.Delete("/", s.ClearItinerary)
			r.Get("/export", s.ExportItinerary)
			r.Delete("/{position}", s.RemoveFromItinerary)
		})
	})
	return r
}

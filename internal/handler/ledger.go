package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// itineraryResponse is the body of GET /api/itinerary: the full ledger plus
// its recomputed total cost.
type itineraryResponse struct {
	Entries   []domain.LedgerEntry `json:"entries"`
	TotalCost float64              `json:"total_cost"`
}

// GetItinerary handles GET /api/itinerary.
func (s *Server) GetItinerary(w http.ResponseWriter, r *http.Request) {
	entries, err := s.ledger.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load itinerary")
		return
	}
	total, err := s.ledger.TotalCost(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to load itinerary")
		return
	}
	writeJSON(w, http.StatusOK, itineraryResponse{Entries: entries, TotalCost: total})
}

// AddToItinerary handles POST /api/itinerary.
// The request body is the derived route to append. Adding never deduplicates:
// posting the same route twice yields two entries.
func (s *Server) AddToItinerary(w http.ResponseWriter, r *http.Request) {
	var route domain.DerivedRoute
	if err := json.NewDecoder(r.Body).Decode(&route); err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "request body must be a route")
		return
	}

	entry, err := s.ledger.Add(r.Context(), route)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to add route")
		return
	}

	writeJSON(w, http.StatusCreated, entry)
}

// RemoveFromItinerary handles DELETE /api/itinerary/{position}.
// Position is the zero-based ledger index. Removal is by position, never by
// the route's response ordinal — ordinals repeat across searches. An
// out-of-range position still returns 204: the entry the caller wanted gone
// is gone.
func (s *Server) RemoveFromItinerary(w http.ResponseWriter, r *http.Request) {
	position, err := strconv.Atoi(chi.URLParam(r, "position"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "position must be an integer")
		return
	}

	if err := s.ledger.Remove(r.Context(), position); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to remove route")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearItinerary handles DELETE /api/itinerary.
func (s *Server) ClearItinerary(w http.ResponseWriter, r *http.Request) {
	if err := s.ledger.Clear(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to clear itinerary")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

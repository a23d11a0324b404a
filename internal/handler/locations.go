package handler

import (
	"errors"
	"net/http"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// GetLocations handles GET /api/locations?q=.
// It returns geocoder autocomplete suggestions for the free-text query.
// Queries shorter than three characters return an empty list, matching the
// client-side guard of the search form.
func (s *Server) GetLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")

	suggestions, err := s.geocoder.Search(r.Context(), q)
	if err != nil {
		var upstream *domain.UpstreamError
		if errors.As(err, &upstream) {
			writeError(w, http.StatusBadGateway, "upstream_error", "location lookup failed")
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", "location lookup failed")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

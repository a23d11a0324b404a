package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/service"
)

// searchResponse is the body of a successful (or empty) search.
// Message is set only for the neutral "no routes found" state.
type searchResponse struct {
	Routes  []domain.DerivedRoute `json:"routes"`
	Message string                `json:"message,omitempty"`
}

// GetSearch handles GET /api/search.
//
// Query parameters mirror the search-form contract: fromName, fromLat,
// fromLon, toName, toLat, toLon, date (YYYY-MM-DD), time (HH:MM), plus an
// optional sort criterion (duration|price|co2|departure; default duration)
// and an optional session id for stale-response detection.
//
// An empty upstream result is HTTP 200 with an empty route list and a
// message, not an error. A result superseded by a newer query for the same
// session is HTTP 409.
func (s *Server) GetSearch(w http.ResponseWriter, r *http.Request) {
	params := r.URL.Query()

	from, err := parsePoint(params.Get("fromName"), params.Get("fromLat"), params.Get("fromLon"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid origin coordinates")
		return
	}
	to, err := parsePoint(params.Get("toName"), params.Get("toLat"), params.Get("toLon"))
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, "validation_error", "invalid destination coordinates")
		return
	}

	sortBy := domain.SortCriterion(params.Get("sort"))
	if sortBy == "" {
		sortBy = domain.SortDuration
	}

	session := params.Get("session")
	if session == "" {
		session = r.RemoteAddr
	}

	query := service.SearchQuery{
		From:    from,
		To:      to,
		Date:    params.Get("date"),
		Time:    params.Get("time"),
		Sort:    sortBy,
		Session: session,
	}

	routes, err := s.search.Search(r.Context(), query)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrValidation):
			writeError(w, http.StatusUnprocessableEntity, "validation_error", unwrapMessage(err))
		case errors.Is(err, domain.ErrNoRoutes):
			writeJSON(w, http.StatusOK, searchResponse{
				Routes:  []domain.DerivedRoute{},
				Message: "No routes found for your search criteria.",
			})
		case errors.Is(err, domain.ErrStaleQuery):
			writeError(w, http.StatusConflict, "stale_query", "a newer search superseded this one")
		case errors.Is(err, domain.ErrMissingAPIKey):
			writeError(w, http.StatusServiceUnavailable, "config_error", "trip planning is not configured")
		default:
			var upstream *domain.UpstreamError
			if errors.As(err, &upstream) {
				writeError(w, http.StatusBadGateway, "upstream_error", "trip planning request failed")
				return
			}
			writeError(w, http.StatusInternalServerError, "internal_error", "search failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, searchResponse{Routes: routes})
}

// parsePoint builds a GeoPoint from the raw query-string fields.
func parsePoint(name, lat, lon string) (domain.GeoPoint, error) {
	latF, err := strconv.ParseFloat(lat, 64)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	lonF, err := strconv.ParseFloat(lon, 64)
	if err != nil {
		return domain.GeoPoint{}, err
	}
	return domain.GeoPoint{Name: name, Latitude: latF, Longitude: lonF}, nil
}

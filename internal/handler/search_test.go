package handler_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/handler"
	"github.com/avickers/travel-search/backend/internal/service"
)

// ---- mocks -----------------------------------------------------------------

// mockSearcher is a hand-written test double for handler.Searcher.
type mockSearcher struct {
	search func(ctx context.Context, q service.SearchQuery) ([]domain.DerivedRoute, error)
}

func (m *mockSearcher) Search(ctx context.Context, q service.SearchQuery) ([]domain.DerivedRoute, error) {
	return m.search(ctx, q)
}

var _ handler.Searcher = (*mockSearcher)(nil)

// mockGeocoder is a hand-written test double for handler.Geocoder.
type mockGeocoder struct {
	search func(ctx context.Context, q string) ([]domain.Suggestion, error)
}

func (m *mockGeocoder) Search(ctx context.Context, q string) ([]domain.Suggestion, error) {
	return m.search(ctx, q)
}

var _ handler.Geocoder = (*mockGeocoder)(nil)

// ---- helpers ---------------------------------------------------------------

// searchURL builds a well-formed search request URL.
const searchURL = "/api/search?fromName=Boston&fromLat=42.36&fromLon=-71.06" +
	"&toName=New%20York&toLat=40.71&toLon=-74.01&date=2025-06-01&time=09%3A00"

func doSearch(t *testing.T, s handler.Searcher, url string) *httptest.ResponseRecorder {
	t.Helper()
	srv := handler.NewServer(s, nil, nil, nil)
	req := httptest.NewRequest(http.MethodGet, url, nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

// ---- tests -----------------------------------------------------------------

func TestGetSearch_OK(t *testing.T) {
	var gotQuery service.SearchQuery
	s := &mockSearcher{
		search: func(_ context.Context, q service.SearchQuery) ([]domain.DerivedRoute, error) {
			gotQuery = q
			return []domain.DerivedRoute{{From: "Boston", To: "New York", Mode: domain.ModeBus, PriceEstimate: 5.75}}, nil
		},
	}

	rec := doSearch(t, s, searchURL+"&sort=price&session=abc")

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Routes  []domain.DerivedRoute `json:"routes"`
		Message string                `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Routes, 1)
	assert.Equal(t, 5.75, body.Routes[0].PriceEstimate)
	assert.Empty(t, body.Message)

	assert.Equal(t, "Boston", gotQuery.From.Name)
	assert.Equal(t, 42.36, gotQuery.From.Latitude)
	assert.Equal(t, -74.01, gotQuery.To.Longitude)
	assert.Equal(t, "2025-06-01", gotQuery.Date)
	assert.Equal(t, "09:00", gotQuery.Time)
	assert.Equal(t, domain.SortPrice, gotQuery.Sort)
	assert.Equal(t, "abc", gotQuery.Session)
}

func TestGetSearch_DefaultsToDurationSort(t *testing.T) {
	s := &mockSearcher{
		search: func(_ context.Context, q service.SearchQuery) ([]domain.DerivedRoute, error) {
			assert.Equal(t, domain.SortDuration, q.Sort)
			return []domain.DerivedRoute{}, nil
		},
	}

	rec := doSearch(t, s, searchURL)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestGetSearch_MissingCoordinates(t *testing.T) {
	s := &mockSearcher{
		search: func(_ context.Context, _ service.SearchQuery) ([]domain.DerivedRoute, error) {
			t.Fatal("searcher must not be called for malformed coordinates")
			return nil, nil
		},
	}

	rec := doSearch(t, s, "/api/search?fromName=Boston&toName=NY&date=2025-06-01&time=09:00")

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetSearch_NoRoutesIsNeutral(t *testing.T) {
	s := &mockSearcher{
		search: func(_ context.Context, _ service.SearchQuery) ([]domain.DerivedRoute, error) {
			return nil, fmt.Errorf("service.SearchService.Search: %w", domain.ErrNoRoutes)
		},
	}

	rec := doSearch(t, s, searchURL)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Routes  []domain.DerivedRoute `json:"routes"`
		Message string                `json:"message"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.NotNil(t, body.Routes)
	assert.Empty(t, body.Routes)
	assert.Contains(t, body.Message, "No routes found")
}

func TestGetSearch_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation), http.StatusUnprocessableEntity, "validation_error"},
		{"stale query", domain.ErrStaleQuery, http.StatusConflict, "stale_query"},
		{"missing api key", domain.ErrMissingAPIKey, http.StatusServiceUnavailable, "config_error"},
		{"upstream", &domain.UpstreamError{Service: "planner", Status: 500, Body: "boom"}, http.StatusBadGateway, "upstream_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &mockSearcher{
				search: func(_ context.Context, _ service.SearchQuery) ([]domain.DerivedRoute, error) {
					return nil, tt.err
				},
			}

			rec := doSearch(t, s, searchURL)

			require.Equal(t, tt.wantStatus, rec.Code)

			var body handler.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, tt.wantCode, body.Error.Code)
		})
	}
}

// ---- locations -------------------------------------------------------------

func TestGetLocations_OK(t *testing.T) {
	g := &mockGeocoder{
		search: func(_ context.Context, q string) ([]domain.Suggestion, error) {
			assert.Equal(t, "Boston", q)
			return []domain.Suggestion{{DisplayName: "Boston, United States", Lat: "42.36", Lon: "-71.06"}}, nil
		},
	}
	srv := handler.NewServer(nil, g, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?q=Boston", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Suggestions []domain.Suggestion `json:"suggestions"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	require.Len(t, body.Suggestions, 1)
	assert.Equal(t, "Boston, United States", body.Suggestions[0].DisplayName)
}

func TestGetLocations_UpstreamFailure(t *testing.T) {
	g := &mockGeocoder{
		search: func(_ context.Context, _ string) ([]domain.Suggestion, error) {
			return nil, &domain.UpstreamError{Service: "geocoder", Status: 403, Body: "blocked"}
		},
	}
	srv := handler.NewServer(nil, g, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/locations?q=Boston", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadGateway, rec.Code)
}

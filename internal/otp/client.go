// Package otp implements the itinerary query executor: a client for an
// OTP-style trip-planning API. Route planning itself is delegated entirely
// to the upstream service — this package only issues the query and maps the
// failure modes onto the domain error taxonomy.
package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/metrics"
)

// planResponse is the upstream payload shape. Only plan.itineraries is
// consumed; everything else the service returns is ignored.
type planResponse struct {
	Plan struct {
		Itineraries []domain.Itinerary `json:"itineraries"`
	} `json:"plan"`
}

// Client queries the trip-planning API for candidate itineraries.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	metrics    *metrics.Collector
}

// NewClient constructs a planner client. baseURL is the API root without the
// trailing /plan segment. m may be nil to disable instrumentation.
func NewClient(baseURL, apiKey string, m *metrics.Collector) *Client {
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		metrics:    m,
	}
}

// Plan requests itineraries from origin to destination departing on the
// given date ("2006-01-02") and time ("15:04").
//
// Error taxonomy:
//   - domain.ErrMissingAPIKey when no credential is configured
//   - *domain.UpstreamError on a non-2xx status or an undecodable payload
//   - domain.ErrNoRoutes when the response parses but holds zero itineraries
func (c *Client) Plan(ctx context.Context, origin, destination domain.GeoPoint, date, depart string) ([]domain.Itinerary, error) {
	if c.apiKey == "" {
		return nil, domain.ErrMissingAPIKey
	}

	params := url.Values{}
	params.Set("fromPlace", coord(origin))
	params.Set("toPlace", coord(destination))
	params.Set("date", date)
	params.Set("time", depart)
	params.Set("api_key", c.apiKey)
	params.Set("includeWalkingItinerary", "true")
	params.Set("useFallbackDates", "true")
	params.Set("includeEarliestArrivals", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/plan?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("otp.Client.Plan: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.Upstream("planner", metrics.OutcomeError)
		return nil, &domain.UpstreamError{Service: "planner", Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.Upstream("planner", metrics.OutcomeError)
		return nil, &domain.UpstreamError{Service: "planner", Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.Upstream("planner", metrics.OutcomeError)
		return nil, &domain.UpstreamError{Service: "planner", Status: resp.StatusCode, Body: string(body)}
	}

	var decoded planResponse
	if err := json.Unmarshal(body, &decoded); err != nil {
		c.metrics.Upstream("planner", metrics.OutcomeError)
		return nil, &domain.UpstreamError{Service: "planner", Status: resp.StatusCode, Body: "undecodable response: " + err.Error()}
	}

	if len(decoded.Plan.Itineraries) == 0 {
		c.metrics.Upstream("planner", metrics.OutcomeEmpty)
		return nil, domain.ErrNoRoutes
	}

	c.metrics.Upstream("planner", metrics.OutcomeOK)
	return decoded.Plan.Itineraries, nil
}

// coord renders a point as the "lat,lon" pair the planning API expects.
func coord(p domain.GeoPoint) string {
	return strconv.FormatFloat(p.Latitude, 'f', -1, 64) + "," + strconv.FormatFloat(p.Longitude, 'f', -1, 64)
}

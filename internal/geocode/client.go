// Package geocode implements the location resolver: a client for a
// Nominatim-style geocoding API that turns free-text input into candidate
// locations. Lookups are read-through cached in Redis when a cache client
// is provided; cache failures are logged and otherwise ignored.
package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// MinQueryLength is the shortest free-text input worth geocoding.
// Shorter queries resolve to an empty suggestion list without an API call.
const MinQueryLength = 3

// suggestionLimit caps how many candidates one lookup returns.
const suggestionLimit = 5

// cacheTTL bounds how long a geocode response is reused. Place data moves
// slowly; a day keeps the upstream rate limiter happy without staleness risk.
const cacheTTL = 24 * time.Hour

// Client resolves free-text location queries against a geocoding API.
type Client struct {
	baseURL      string
	countryCodes string
	httpClient   *http.Client
	cache        *redis.Client // nil disables caching
}

// NewClient constructs a geocoding client for the given base URL and
// country allow-list. cache may be nil to disable caching.
func NewClient(baseURL, countryCodes string, cache *redis.Client) *Client {
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		countryCodes: countryCodes,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		cache:        cache,
	}
}

// Search returns up to five location candidates for q.
// Queries shorter than MinQueryLength return an empty slice, not an error.
// Upstream failures are reported as *domain.UpstreamError.
func (c *Client) Search(ctx context.Context, q string) ([]domain.Suggestion, error) {
	q = strings.TrimSpace(q)
	if len(q) < MinQueryLength {
		return []domain.Suggestion{}, nil
	}

	key := "geocode:" + strings.ToLower(q)
	if cached, ok := c.cacheGet(ctx, key); ok {
		return cached, nil
	}

	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", q)
	params.Set("limit", fmt.Sprint(suggestionLimit))
	params.Set("addressdetails", "1")
	params.Set("countrycodes", c.countryCodes)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("geocode.Client.Search: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "geocoder", Body: err.Error()}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.UpstreamError{Service: "geocoder", Status: resp.StatusCode, Body: err.Error()}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &domain.UpstreamError{Service: "geocoder", Status: resp.StatusCode, Body: string(body)}
	}

	var suggestions []domain.Suggestion
	if err := json.Unmarshal(body, &suggestions); err != nil {
		return nil, &domain.UpstreamError{Service: "geocoder", Status: resp.StatusCode, Body: "undecodable response: " + err.Error()}
	}
	if suggestions == nil {
		suggestions = []domain.Suggestion{}
	}

	c.cacheSet(ctx, key, suggestions)
	return suggestions, nil
}

// cacheGet looks up a cached suggestion list. A miss, a disabled cache, and
// a cache error all report !ok; errors other than a plain miss are logged.
func (c *Client) cacheGet(ctx context.Context, key string) ([]domain.Suggestion, bool) {
	if c.cache == nil {
		return nil, false
	}
	raw, err := c.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			slog.Warn("geocode cache read failed", "key", key, "error", err)
		}
		return nil, false
	}
	var suggestions []domain.Suggestion
	if err := json.Unmarshal(raw, &suggestions); err != nil {
		slog.Warn("geocode cache entry corrupt", "key", key, "error", err)
		return nil, false
	}
	return suggestions, true
}

// cacheSet stores a suggestion list best-effort.
func (c *Client) cacheSet(ctx context.Context, key string, suggestions []domain.Suggestion) {
	if c.cache == nil {
		return
	}
	raw, err := json.Marshal(suggestions)
	if err != nil {
		return
	}
	if err := c.cache.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		slog.Warn("geocode cache write failed", "key", key, "error", err)
	}
}

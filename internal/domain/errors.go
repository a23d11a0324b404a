package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by repo and service functions when the requested
// resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned by service functions when input fails business
// rule validation (e.g. missing coordinates, malformed date).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrMissingAPIKey is returned by the planner client when the trip-planning
// API credential is not configured. The query cannot proceed and no retry
// will help; handlers should map this to HTTP 503 with a configuration message.
var ErrMissingAPIKey = errors.New("trip planning api key is not configured")

// ErrNoRoutes is returned by the planner client when the upstream response
// parses correctly but contains zero itineraries. This is a neutral
// "no routes found" condition, not an upstream failure — handlers surface it
// as an empty result, never as an error banner.
var ErrNoRoutes = errors.New("no routes found")

// ErrStaleQuery is returned by the search service when a planning response
// arrives after a newer query was issued for the same search session.
// The stale result must be discarded, never displayed.
var ErrStaleQuery = errors.New("stale query result")

// UpstreamError reports a non-success response (or an undecodable payload)
// from an external service. Status is the HTTP status code, or 0 when the
// failure happened before a status was received. Body carries the upstream
// response body for diagnostics; it is safe to log but should not be echoed
// verbatim to API clients.
type UpstreamError struct {
	Service string // "geocoder" or "planner"
	Status  int
	Body    string
}

func (e *UpstreamError) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("%s request failed: %s", e.Service, e.Body)
	}
	return fmt.Sprintf("%s returned status %d: %s", e.Service, e.Status, e.Body)
}

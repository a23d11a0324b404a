// Package domain contains the core data types for the travel search backend.
// This package has no dependencies beyond the uuid type and is imported by
// every other internal package (geocode, otp, route, repo, service, handler).
package domain

// GeoPoint is a geocoded location selected by the user.
// Immutable once selected; identity is positional — no stable external id is
// retained beyond the display name.
type GeoPoint struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Suggestion is a single geocoder autocomplete candidate.
// Lat/Lon arrive as strings from the geocoding service and are passed through
// untouched — the caller converts only when a suggestion is actually selected.
type Suggestion struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	PlaceID     int64  `json:"place_id"`
}

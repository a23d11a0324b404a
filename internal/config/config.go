// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is loaded
// first when present, mirroring local development setups.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCountryCodes is the geocoder country allow-list used when
// GEOCODER_COUNTRIES is not set. It mirrors the regions the planning
// service has coverage for.
const DefaultCountryCodes = "us,ca,gb,fr,de,it,es,nl,be,ch,at,pt,ie,dk,se,no,fi,pl,cz,hu,sk,si,hr,bg,ro,gr,cy,mt,lu,lv,lt,ee"

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// RedisURL is the Redis connection string used for the geocode cache.
	// Empty disables caching entirely.
	RedisURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"].
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// PlannerURL is the base URL of the OTP-style trip-planning API.
	PlannerURL string

	// PlannerAPIKey is the trip-planning API credential. Its absence is not
	// a boot failure — the planner client reports it per query, so the rest
	// of the API stays usable.
	PlannerAPIKey string

	// GeocoderURL is the base URL of the Nominatim-style geocoding API.
	GeocoderURL string

	// CountryCodes is the comma-separated geocoder country allow-list.
	CountryCodes string

	// Location is the timezone used for departure/arrival display labels.
	// Defaults to the process-local zone; set TZ to override.
	Location *time.Location
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// Load .env into the environment; a missing file is fine.
	_ = godotenv.Load()

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		CORSOrigins:   splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		PlannerURL:    getEnv("OTP_URL", "https://transit.land/api/v2/routing/otp"),
		PlannerAPIKey: os.Getenv("TRANSITLAND_API_KEY"),
		GeocoderURL:   getEnv("GEOCODER_URL", "https://nominatim.openstreetmap.org"),
		CountryCodes:  getEnv("GEOCODER_COUNTRIES", DefaultCountryCodes),
		RedisURL:      os.Getenv("REDIS_URL"),
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	if tz := os.Getenv("TZ"); tz != "" {
		loc, err := time.LoadLocation(tz)
		if err != nil {
			return Config{}, fmt.Errorf("invalid TZ %q: %w", tz, err)
		}
		cfg.Location = loc
	} else {
		cfg.Location = time.Local
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}

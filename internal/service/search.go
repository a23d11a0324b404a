package service

import (
	"context"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/metrics"
	"github.com/avickers/travel-search/backend/internal/route"
)

// Planner is the trip-planning client the search service depends on.
// Defined here, in the consumer package, so tests can inject a mock.
type Planner interface {
	Plan(ctx context.Context, origin, destination domain.GeoPoint, date, depart string) ([]domain.Itinerary, error)
}

// SearchQuery carries one itinerary search. Session identifies the search
// session for stale-response detection; independent sessions never interfere.
type SearchQuery struct {
	From    domain.GeoPoint
	To      domain.GeoPoint
	Date    string // "2006-01-02"
	Time    string // "15:04"
	Sort    domain.SortCriterion
	Session string
}

// SearchService executes itinerary searches: it queries the planner, derives
// display-ready route summaries, and ranks them.
//
// Each query is tagged with a per-session sequence number taken before the
// upstream call. A response that returns after a newer query was issued for
// the same session is discarded with domain.ErrStaleQuery, so a slow first
// query can never overwrite a fast second one.
type SearchService struct {
	planner Planner
	loc     *time.Location
	metrics *metrics.Collector

	mu   sync.Mutex
	seqs map[string]uint64
}

// NewSearchService constructs a SearchService. loc is the timezone for
// departure/arrival labels (nil falls back to UTC); m may be nil.
func NewSearchService(p Planner, loc *time.Location, m *metrics.Collector) *SearchService {
	if loc == nil {
		loc = time.UTC
	}
	return &SearchService{
		planner: p,
		loc:     loc,
		metrics: m,
		seqs:    make(map[string]uint64),
	}
}

// Search runs one query end to end and returns the ranked derived routes.
//
// Errors: domain.ErrValidation for malformed input, domain.ErrStaleQuery when
// a newer query superseded this one, and the planner's own taxonomy
// (ErrMissingAPIKey, ErrNoRoutes, *UpstreamError) otherwise.
func (s *SearchService) Search(ctx context.Context, q SearchQuery) ([]domain.DerivedRoute, error) {
	if err := validateQuery(q); err != nil {
		return nil, err
	}

	start := time.Now()
	seq := s.nextSeq(q.Session)

	itineraries, err := s.planner.Plan(ctx, q.From, q.To, q.Date, q.Time)

	// Staleness wins over whatever the upstream said: a superseded result —
	// success or failure — must never reach the display.
	if !s.isLatest(q.Session, seq) {
		return nil, domain.ErrStaleQuery
	}
	if err != nil {
		return nil, fmt.Errorf("service.SearchService.Search: %w", err)
	}

	routes := make([]domain.DerivedRoute, len(itineraries))
	for i, it := range itineraries {
		routes[i] = route.Derive(it, i, q.From.Name, q.To.Name, s.loc)
	}
	ranked := route.Rank(routes, q.Sort)

	s.metrics.ObserveSearch(time.Since(start).Seconds())
	return ranked, nil
}

// nextSeq advances and returns the sequence counter for a session.
func (s *SearchService) nextSeq(session string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seqs[session]++
	return s.seqs[session]
}

// isLatest reports whether seq is still the newest query for a session.
func (s *SearchService) isLatest(session string, seq uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.seqs[session] == seq
}

// validateQuery enforces the query-string contract between the search form
// and the results view: both endpoints must carry usable coordinates, and
// date and time must be in their wire formats.
func validateQuery(q SearchQuery) error {
	if badCoord(q.From.Latitude, -90, 90) || badCoord(q.From.Longitude, -180, 180) {
		return fmt.Errorf("%w: origin coordinates out of range", domain.ErrValidation)
	}
	if badCoord(q.To.Latitude, -90, 90) || badCoord(q.To.Longitude, -180, 180) {
		return fmt.Errorf("%w: destination coordinates out of range", domain.ErrValidation)
	}
	if _, err := time.Parse("2006-01-02", q.Date); err != nil {
		return fmt.Errorf("%w: date must be YYYY-MM-DD", domain.ErrValidation)
	}
	if _, err := time.Parse("15:04", q.Time); err != nil {
		return fmt.Errorf("%w: time must be HH:MM", domain.ErrValidation)
	}
	return nil
}

func badCoord(v, min, max float64) bool {
	return math.IsNaN(v) || v < min || v > max
}

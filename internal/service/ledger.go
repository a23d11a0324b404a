// Package service contains the business logic for the travel search API.
// Services validate inputs, enforce business rules, and orchestrate repo and
// upstream-client calls. No SQL and no HTTP lives here.
package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/metrics"
	"github.com/avickers/travel-search/backend/internal/repo"
)

// LedgerService implements the itinerary ledger: the user's ordered list of
// accepted routes. Every mutation is written through to storage immediately;
// the total cost is recomputed from the current entries on every read and is
// never cached.
type LedgerService struct {
	repo    repo.LedgerRepo
	metrics *metrics.Collector
}

// NewLedgerService constructs a LedgerService backed by the provided repo.
// m may be nil to disable instrumentation.
func NewLedgerService(r repo.LedgerRepo, m *metrics.Collector) *LedgerService {
	return &LedgerService{repo: r, metrics: m}
}

// Add appends a route to the end of the ledger. There is no deduplication:
// adding the same route twice yields two entries, distinguished by their
// generated IDs and positions.
func (s *LedgerService) Add(ctx context.Context, route domain.DerivedRoute) (domain.LedgerEntry, error) {
	entry, err := s.repo.Insert(ctx, route)
	if err != nil {
		return domain.LedgerEntry{}, fmt.Errorf("service.LedgerService.Add: %w", err)
	}
	s.refreshGauge(ctx)
	return entry, nil
}

// List returns all entries in insertion order.
// Always returns a non-nil slice so callers can safely range over it.
func (s *LedgerService) List(ctx context.Context) ([]domain.LedgerEntry, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.LedgerService.List: %w", err)
	}
	s.metrics.SetLedgerSize(len(entries))
	if entries == nil {
		return []domain.LedgerEntry{}, nil
	}
	return entries, nil
}

// Remove deletes the entry at the given zero-based position.
// An out-of-range position is a silent no-op, not an error. Removal resolves
// the position to the entry's UUID before deleting, so two entries that came
// from the same response ordinal can never be confused.
func (s *LedgerService) Remove(ctx context.Context, position int) error {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return fmt.Errorf("service.LedgerService.Remove: %w", err)
	}
	if position < 0 || position >= len(entries) {
		return nil
	}
	if err := s.repo.DeleteByID(ctx, entries[position].ID); err != nil {
		// The entry vanished between List and Delete; the outcome the caller
		// asked for (entry gone) holds, so treat it like the out-of-range case.
		if errors.Is(err, domain.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("service.LedgerService.Remove: %w", err)
	}
	s.refreshGauge(ctx)
	return nil
}

// Clear empties the ledger unconditionally.
func (s *LedgerService) Clear(ctx context.Context) error {
	if err := s.repo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("service.LedgerService.Clear: %w", err)
	}
	s.metrics.SetLedgerSize(0)
	return nil
}

// TotalCost returns the sum of all entries' price estimates,
// recomputed from the current ledger contents on every call.
func (s *LedgerService) TotalCost(ctx context.Context) (float64, error) {
	entries, err := s.repo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("service.LedgerService.TotalCost: %w", err)
	}
	var total float64
	for _, e := range entries {
		total += e.Route.PriceEstimate
	}
	return total, nil
}

// refreshGauge re-reads the ledger size for the metrics gauge, best-effort.
func (s *LedgerService) refreshGauge(ctx context.Context) {
	if s.metrics == nil {
		return
	}
	if entries, err := s.repo.List(ctx); err == nil {
		s.metrics.SetLedgerSize(len(entries))
	}
}

package route

import (
	"sort"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// Rank returns a newly ordered copy of routes sorted by the given criterion.
// The input slice is never mutated. Sorting is stable, so applying the same
// criterion twice is idempotent and equal elements keep their response order.
//
// Orderings are defined on the numeric source fields carried by
// DerivedRoute, never on the formatted labels:
//   - duration:  ascending DurationSeconds, ties broken by ascending price
//   - price:     ascending PriceEstimate
//   - co2:       ascending CO2Kg
//   - departure: ascending StartTimeMs
//
// An unknown criterion is the identity ranking: the copy keeps the input
// order. Rank never fails.
func Rank(routes []domain.DerivedRoute, criterion domain.SortCriterion) []domain.DerivedRoute {
	out := make([]domain.DerivedRoute, len(routes))
	copy(out, routes)

	switch criterion {
	case domain.SortDuration:
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].DurationSeconds == out[j].DurationSeconds {
				return out[i].PriceEstimate < out[j].PriceEstimate
			}
			return out[i].DurationSeconds < out[j].DurationSeconds
		})
	case domain.SortPrice:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].PriceEstimate < out[j].PriceEstimate
		})
	case domain.SortCO2:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CO2Kg < out[j].CO2Kg
		})
	case domain.SortDeparture:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].StartTimeMs < out[j].StartTimeMs
		})
	}
	return out
}

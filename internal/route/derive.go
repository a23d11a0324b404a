// Package route implements the derivation pipeline and the ranking engine:
// it turns raw planning-API itineraries into display-ready route summaries
// and orders them by a user-selected criterion. Everything here is pure —
// no I/O, no clock reads, no mutation of inputs.
package route

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// Fare model constants. The price is an estimate, not a quote: a flat base
// fare when any transit is used, plus per-transit-minute and per-transfer
// surcharges.
const (
	baseFare        = 2.75
	costPerMinute   = 0.05
	costPerTransfer = 1.50
)

// CO2 emission factors in kg per km, by transit mode.
// Walking and all unlisted modes count as zero.
const (
	co2PerKmBus  = 0.10
	co2PerKmRail = 0.03
)

// Derive maps one raw itinerary to its DerivedRoute. ordinal is the
// itinerary's position within its query response. loc is the timezone used
// for both the departure and arrival labels; passing nil falls back to UTC.
//
// Derive is total: malformed numeric fields (NaN, negatives) degrade to
// zero-valued labels rather than failing.
func Derive(it domain.Itinerary, ordinal int, fromName, toName string, loc *time.Location) domain.DerivedRoute {
	if loc == nil {
		loc = time.UTC
	}
	return domain.DerivedRoute{
		Ordinal:   ordinal,
		From:      fromName,
		To:        toName,
		Mode:      primaryMode(it.Legs),
		Provider:  provider(it.Legs),
		Transfers: it.Transfers,

		PriceEstimate:   EstimatePrice(it),
		CO2Kg:           EstimateCO2(it.Legs),
		DurationSeconds: flooredSeconds(it.Duration),
		StartTimeMs:     it.StartTime,

		Duration:    FormatDuration(it.Duration),
		Departure:   FormatClock(it.StartTime, loc),
		Arrival:     FormatClock(it.EndTime, loc),
		CO2:         co2Label(EstimateCO2(it.Legs)),
		WalkTime:    FormatDuration(it.WalkTime),
		TransitTime: FormatDuration(it.TransitTime),
		WaitingTime: FormatDuration(it.WaitingTime),

		Legs: it.Legs,
	}
}

// primaryMode classifies an itinerary by its transit legs: WALK when there
// are none, the single distinct transit mode when there is one, MIXED when
// more than one distinct mode appears.
func primaryMode(legs []domain.Leg) string {
	modes := make(map[string]struct{})
	for _, leg := range legs {
		if leg.TransitLeg {
			modes[leg.Mode] = struct{}{}
		}
	}
	switch len(modes) {
	case 0:
		return domain.ModeWalk
	case 1:
		for m := range modes {
			return m
		}
	}
	return domain.ModeMixed
}

// provider returns the agency of the first transit leg in leg order,
// or "Various" when the itinerary has no transit legs.
func provider(legs []domain.Leg) string {
	for _, leg := range legs {
		if leg.TransitLeg && leg.AgencyName != "" {
			return leg.AgencyName
		}
	}
	return "Various"
}

// EstimatePrice computes the fare estimate for one itinerary.
// A pure walking itinerary (zero transit time) costs nothing. Otherwise the
// base fare applies once, plus the per-minute and per-transfer surcharges.
// The result is rounded half-up to the cent.
func EstimatePrice(it domain.Itinerary) float64 {
	t := it.TransitTime
	if math.IsNaN(t) || t <= 0 {
		return 0
	}
	price := baseFare + (t/60)*costPerMinute + float64(it.Transfers)*costPerTransfer
	return math.Round(price*100) / 100
}

// EstimateCO2 sums emissions over transit legs: distance in km times the
// mode's factor. Walking legs contribute nothing. The result is rounded to
// one decimal place.
func EstimateCO2(legs []domain.Leg) float64 {
	var total float64
	for _, leg := range legs {
		if !leg.TransitLeg {
			continue
		}
		km := leg.Distance / 1000
		if math.IsNaN(km) || km < 0 {
			continue
		}
		switch leg.Mode {
		case domain.ModeBus:
			total += km * co2PerKmBus
		case domain.ModeRail, domain.ModeSubway, domain.ModeTram:
			total += km * co2PerKmRail
		}
	}
	return math.Round(total*10) / 10
}

// co2Label formats a rounded kg value as e.g. "1.6kg".
// Trailing zeros are trimmed, so 2.0 renders as "2kg".
func co2Label(kg float64) string {
	return strconv.FormatFloat(kg, 'f', -1, 64) + "kg"
}

// FormatDuration renders seconds as "<H>h <M>m" at an hour or more,
// or "<M>m" below that, using integer floor division throughout.
func FormatDuration(seconds float64) string {
	minutes := flooredSeconds(seconds) / 60
	hours := minutes / 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes%60)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock renders a Unix-millisecond timestamp as zero-padded 24-hour
// "HH:MM" wall-clock time in loc. Departure and arrival of one route must
// be formatted with the same loc so the pair stays coherent.
func FormatClock(ms int64, loc *time.Location) string {
	return time.UnixMilli(ms).In(loc).Format("15:04")
}

// flooredSeconds clamps malformed second counts to zero and floors the rest.
func flooredSeconds(seconds float64) int {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	return int(seconds)
}

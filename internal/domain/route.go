package domain

// DerivedRoute is the display-ready summary computed from exactly one raw
// itinerary. It is immutable after creation. Ordinal is the itinerary's
// position within its query response — stable within one result set only,
// never globally unique; the ledger assigns its own UUIDs for that reason.
//
// Numeric source values (DurationSeconds, PriceEstimate, CO2Kg, StartTimeMs)
// are carried alongside their formatted labels so ranking and aggregation
// never have to reparse a display string.
type DerivedRoute struct {
	Ordinal   int    `json:"ordinal"`
	From      string `json:"from"`
	To        string `json:"to"`
	Mode      string `json:"mode"`
	Provider  string `json:"provider"`
	Transfers int    `json:"transfers"`

	PriceEstimate   float64 `json:"price"`
	CO2Kg           float64 `json:"co2_kg"`
	DurationSeconds int     `json:"duration_seconds"`
	StartTimeMs     int64   `json:"start_time_ms"`

	Duration    string `json:"duration"`
	Departure   string `json:"departure"`
	Arrival     string `json:"arrival"`
	CO2         string `json:"co2"`
	WalkTime    string `json:"walk_time"`
	TransitTime string `json:"transit_time"`
	WaitingTime string `json:"waiting_time"`

	Legs []Leg `json:"legs,omitempty"`
}

// SortCriterion selects the ranking order for derived routes.
type SortCriterion string

const (
	SortDuration  SortCriterion = "duration"
	SortPrice     SortCriterion = "price"
	SortCO2       SortCriterion = "co2"
	SortDeparture SortCriterion = "departure"
)

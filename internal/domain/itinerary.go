package domain

// Transport modes as reported by the OTP-style trip-planning API.
// ModeMixed is not an upstream mode — it is assigned by the derivation
// pipeline when an itinerary spans more than one distinct transit mode.
const (
	ModeWalk      = "WALK"
	ModeBus       = "BUS"
	ModeSubway    = "SUBWAY"
	ModeRail      = "RAIL"
	ModeTram      = "TRAM"
	ModeFerry     = "FERRY"
	ModeCableCar  = "CABLE_CAR"
	ModeGondola   = "GONDOLA"
	ModeFunicular = "FUNICULAR"
	ModeMixed     = "MIXED"
)

// Itinerary is one candidate trip exactly as the planning API returns it.
// Durations are seconds, distances meters, timestamps Unix milliseconds.
// It exists only for the duration of one query response; the derivation
// pipeline turns it into a DerivedRoute, which is the only retained form.
type Itinerary struct {
	Duration     float64 `json:"duration"`
	Distance     float64 `json:"distance"`
	StartTime    int64   `json:"startTime"`
	EndTime      int64   `json:"endTime"`
	WalkTime     float64 `json:"walkTime"`
	WalkDistance float64 `json:"walkDistance"`
	TransitTime  float64 `json:"transitTime"`
	WaitingTime  float64 `json:"waitingTime"`
	Transfers    int     `json:"transfers"`
	Legs         []Leg   `json:"legs"`
}

// Leg is one uninterrupted segment of an itinerary using a single mode.
type Leg struct {
	Mode              string  `json:"mode"`
	Duration          float64 `json:"duration"`
	Distance          float64 `json:"distance"`
	TransitLeg        bool    `json:"transitLeg"`
	From              Place   `json:"from"`
	To                Place   `json:"to"`
	RouteShortName    string  `json:"routeShortName,omitempty"`
	RouteLongName     string  `json:"routeLongName,omitempty"`
	AgencyName        string  `json:"agencyName,omitempty"`
	IntermediateStops []Place `json:"intermediateStops,omitempty"`
}

// Place is a leg endpoint or intermediate stop.
// Departure/Arrival are Unix milliseconds, 0 when not reported.
type Place struct {
	Name      string  `json:"name"`
	Lat       float64 `json:"lat"`
	Lon       float64 `json:"lon"`
	Departure int64   `json:"departure,omitempty"`
	Arrival   int64   `json:"arrival,omitempty"`
}

package domain

// ExportRow is a single row in the itinerary CSV export: one row per ledger
// entry, in ledger order. From and To hold the shortened "City, Country"
// display form, not the full geocoder name.
//
// Price and Transfers stay numeric so the encoder controls formatting;
// everything else is already a display label on the derived route.
type ExportRow struct {
	From        string
	To          string
	Mode        string
	Provider    string
	Price       float64
	Duration    string
	Departure   string
	Arrival     string
	Transfers   int
	WalkTime    string
	TransitTime string
	WaitingTime string
	CO2         string
}

package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/repo"
)

// ExportService assembles the flat export of the itinerary ledger:
// one row per entry in ledger order, plus the recomputed total cost.
type ExportService struct {
	ledger repo.LedgerRepo
}

// NewExportService constructs an ExportService backed by the provided repo.
func NewExportService(ledger repo.LedgerRepo) *ExportService {
	return &ExportService{ledger: ledger}
}

// Export returns one ExportRow per ledger entry plus the total cost.
// From and To are shortened to their "City, Country" display form.
func (s *ExportService) Export(ctx context.Context) ([]domain.ExportRow, float64, error) {
	entries, err := s.ledger.List(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	rows := make([]domain.ExportRow, 0, len(entries))
	var total float64
	for _, e := range entries {
		r := e.Route
		rows = append(rows, domain.ExportRow{
			From:        ShortPlaceName(r.From),
			To:          ShortPlaceName(r.To),
			Mode:        r.Mode,
			Provider:    r.Provider,
			Price:       r.PriceEstimate,
			Duration:    r.Duration,
			Departure:   r.Departure,
			Arrival:     r.Arrival,
			Transfers:   r.Transfers,
			WalkTime:    r.WalkTime,
			TransitTime: r.TransitTime,
			WaitingTime: r.WaitingTime,
			CO2:         r.CO2,
		})
		total += r.PriceEstimate
	}
	return rows, total, nil
}

// ShortPlaceName reduces a full geocoder display name ("Street, District,
// City, State, Postcode, Country") to "City, Country" for compact display.
// The city is the first comma-separated part; the country is the last part
// that looks like a proper name rather than a postcode. Names without commas
// pass through unchanged.
func ShortPlaceName(full string) string {
	parts := strings.Split(full, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	city := parts[0]
	var country string
	for i := len(parts) - 1; i >= 1; i-- {
		p := parts[i]
		if p == "" || len(p) < 2 {
			continue
		}
		if _, err := strconv.ParseFloat(p, 64); err == nil {
			continue // postcode
		}
		if r := []rune(p)[0]; unicode.IsUpper(r) || !unicode.IsLetter(r) {
			country = p
			break
		}
	}

	if country != "" && country != city {
		return city + ", " + country
	}
	return city
}

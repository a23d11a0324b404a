// Package handler — export.go implements GET /api/itinerary/export.
// Returns the itinerary ledger as a CSV attachment: one row per entry in
// ledger order, plus a trailing total-cost row.
package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/avickers/travel-search/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of the export.
var csvHeaders = []string{
	"From", "To", "Transport Mode", "Provider", "Price ($)",
	"Duration", "Departure", "Arrival", "Transfers",
	"Walk Time", "Transit Time", "Waiting Time", "CO2 Emissions",
}

// ExportItinerary handles GET /api/itinerary/export.
// The filename carries the current date: travel-itinerary-YYYY-MM-DD.csv.
func (s *Server) ExportItinerary(w http.ResponseWriter, r *http.Request) {
	rows, total, err := s.export.Export(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", "failed to export itinerary")
		return
	}

	buf := buildCSV(rows, total)
	filename := "travel-itinerary-" + time.Now().Format("2006-01-02") + ".csv"

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck — the status is already written; nothing useful remains on failure.
	w.Write(buf.Bytes())
}

// buildCSV encodes the export rows plus the trailing total-cost row.
// The total lands in the price column; all other cells of that row stay empty.
func buildCSV(rows []domain.ExportRow, total float64) *bytes.Buffer {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck — bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, r := range rows {
		//nolint:errcheck
		cw.Write([]string{
			r.From,
			r.To,
			r.Mode,
			r.Provider,
			strconv.FormatFloat(r.Price, 'f', -1, 64),
			r.Duration,
			r.Departure,
			r.Arrival,
			strconv.Itoa(r.Transfers),
			r.WalkTime,
			r.TransitTime,
			r.WaitingTime,
			r.CO2,
		})
	}

	totalRow := make([]string, len(csvHeaders))
	totalRow[0] = "Total Cost"
	totalRow[4] = fmt.Sprintf("%.2f", total)
	//nolint:errcheck
	cw.Write(totalRow)

	cw.Flush()
	return &buf
}

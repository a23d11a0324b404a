package handler_test

import (
	"context"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/avickers/travel-search/backend/internal/domain"
	"github.com/avickers/travel-search/backend/internal/handler"
)

// mockExporter is a hand-written test double for handler.Exporter.
type mockExporter struct {
	export func(ctx context.Context) ([]domain.ExportRow, float64, error)
}

func (m *mockExporter) Export(ctx context.Context) ([]domain.ExportRow, float64, error) {
	return m.export(ctx)
}

var _ handler.Exporter = (*mockExporter)(nil)

func doExport(t *testing.T, e handler.Exporter) *httptest.ResponseRecorder {
	t.Helper()
	srv := handler.NewServer(nil, nil, nil, e)
	req := httptest.NewRequest(http.MethodGet, "/api/itinerary/export", nil)
	rec := httptest.NewRecorder()
	srv.Routes().ServeHTTP(rec, req)
	return rec
}

func TestExportItinerary_WritesCSVAttachment(t *testing.T) {
	e := &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, float64, error) {
			return []domain.ExportRow{
				{
					From: "Boston, United States", To: "New York, United States",
					Mode: "BUS", Provider: "Greyhound", Price: 5.75,
					Duration: "4h 30m", Departure: "09:00", Arrival: "13:30",
					Transfers: 1, WalkTime: "12m", TransitTime: "4h 5m",
					WaitingTime: "13m", CO2: "32.4kg",
				},
				{
					From: "New York, United States", To: "Philadelphia, United States",
					Mode: "RAIL", Provider: "Amtrak", Price: 8.30,
					Duration: "1h 25m", Departure: "15:00", Arrival: "16:25",
					Transfers: 0, WalkTime: "5m", TransitTime: "1h 20m",
					WaitingTime: "0m", CO2: "4.3kg",
				},
			}, 14.05, nil
		},
	}

	rec := doExport(t, e)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rec.Header().Get("Content-Type"))

	wantFilename := "travel-itinerary-" + time.Now().Format("2006-01-02") + ".csv"
	assert.Equal(t, `attachment; filename="`+wantFilename+`"`, rec.Header().Get("Content-Disposition"))

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4) // header + 2 rows + total

	assert.Equal(t, []string{
		"From", "To", "Transport Mode", "Provider", "Price ($)",
		"Duration", "Departure", "Arrival", "Transfers",
		"Walk Time", "Transit Time", "Waiting Time", "CO2 Emissions",
	}, records[0])

	assert.Equal(t, []string{
		"Boston, United States", "New York, United States", "BUS", "Greyhound", "5.75",
		"4h 30m", "09:00", "13:30", "1", "12m", "4h 5m", "13m", "32.4kg",
	}, records[1])
	assert.Equal(t, "Amtrak", records[2][3])
	assert.Equal(t, "8.3", records[2][4])

	totalRow := records[3]
	assert.Equal(t, "Total Cost", totalRow[0])
	assert.Equal(t, "14.05", totalRow[4])
	for i, cell := range totalRow[1:4] {
		assert.Emptyf(t, cell, "total row column %d should be empty", i+1)
	}
}

func TestExportItinerary_EmptyLedger(t *testing.T) {
	e := &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, float64, error) {
			return nil, 0, nil
		},
	}

	rec := doExport(t, e)

	require.Equal(t, http.StatusOK, rec.Code)

	records, err := csv.NewReader(rec.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2) // header + total
	assert.Equal(t, "Total Cost", records[1][0])
	assert.Equal(t, "0.00", records[1][4])
}

func TestExportItinerary_ExportFailure(t *testing.T) {
	e := &mockExporter{
		export: func(_ context.Context) ([]domain.ExportRow, float64, error) {
			return nil, 0, errors.New("boom")
		},
	}

	rec := doExport(t, e)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
}

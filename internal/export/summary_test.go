package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-backend/internal/models"
)

func summaryEntry(date, receiptNo, station, amount string) models.YearlyReceipt {
	return models.YearlyReceipt{
		ReceiptFields: models.ReceiptFields{
			Date:        date,
			ReceiptNo:   receiptNo,
			StationName: station,
			Amount:      amount,
		},
	}
}

func TestBuildSummaryCSVHeaderAndRows(t *testing.T) {
	data, err := BuildSummaryCSV([]models.YearlyReceipt{
		summaryEntry("2023-04-10 09:30", "159955", "Metro Petro Pump", "400.00"),
	})
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, []string{"Date", "Description", "Invoice Details", "Amount"}, records[0])
	assert.Equal(t, []string{
		"2023-04-10 09:30",
		"Fuel purchase on 2023-04-10 09:30 receipt no. 159955 from Metro Petro Pump",
		"Receipt 159955",
		"400.00",
	}, records[1])
}

func TestBuildSummaryCSVEscaping(t *testing.T) {
	data, err := BuildSummaryCSV([]models.YearlyReceipt{
		summaryEntry("2023-05-01 08:00", "100001", `Pumps, "R" Us`, "250.00"),
	})
	require.NoError(t, err)

	// Quoting survives a full parse round trip.
	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Contains(t, records[1][1], `Pumps, "R" Us`)
}

func TestBuildSummaryCSVEmptyBatch(t *testing.T) {
	data, err := BuildSummaryCSV(nil)
	require.NoError(t, err)

	records, err := csv.NewReader(bytes.NewReader(data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1, "header only")
}

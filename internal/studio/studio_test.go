package studio

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-backend/internal/models"
	"fuel-backend/internal/notify"
)

func newTestStudio() *Studio {
	return NewWithPreview(notify.NewNotifier(), NewPreviewWithDelay(0))
}

func strPtr(s string) *string { return &s }

type stubGenerator struct {
	resp  *models.YearlyResponse
	err   error
	calls int
}

func (g *stubGenerator) Generate(ctx context.Context, req *models.YearlyRequest) (*models.YearlyResponse, error) {
	g.calls++
	return g.resp, g.err
}

func yearlyEntry(month int, date, station, amount, rate, volume string) models.YearlyReceipt {
	return models.YearlyReceipt{
		Year:  2024,
		Month: month,
		ReceiptFields: models.ReceiptFields{
			StationName: station,
			ReceiptNo:   "123456",
			Amount:      amount,
			RatePerLtr:  rate,
			Volume:      volume,
			Date:        date,
		},
	}
}

func TestUpdateFieldsRecalculatesVolume(t *testing.T) {
	s := newTestStudio()

	t.Run("amount and rate derive volume", func(t *testing.T) {
		s.UpdateFields(models.ReceiptPatch{Amount: strPtr("5000"), RatePerLtr: strPtr("94.72")})
		assert.Equal(t, "52.79L", s.Fields().Volume)
	})

	t.Run("zero rate keeps previous volume", func(t *testing.T) {
		s.UpdateFields(models.ReceiptPatch{RatePerLtr: strPtr("0")})
		assert.Equal(t, "52.79L", s.Fields().Volume)
	})

	t.Run("unparsable rate keeps previous volume", func(t *testing.T) {
		s.UpdateFields(models.ReceiptPatch{RatePerLtr: strPtr("n/a")})
		assert.Equal(t, "52.79L", s.Fields().Volume)
	})

	t.Run("unparsable amount treated as zero", func(t *testing.T) {
		s.UpdateFields(models.ReceiptPatch{Amount: strPtr("oops"), RatePerLtr: strPtr("94.72")})
		assert.Equal(t, "0.00L", s.Fields().Volume)
	})

	t.Run("unrelated edits leave volume alone", func(t *testing.T) {
		s.UpdateFields(models.ReceiptPatch{Volume: strPtr("99.99L")})
		s.UpdateFields(models.ReceiptPatch{CustomerName: strPtr("A. Driver")})
		assert.Equal(t, "99.99L", s.Fields().Volume)
	})
}

func TestApplyRecordPartialUpdate(t *testing.T) {
	s := newTestStudio()
	s.UpdateFields(models.ReceiptPatch{CustomerName: strPtr("Keep Me"), Volume: strPtr("10.00L")})

	// A sparse record only touches the fields it carries. Volume is not
	// recomputed from the new amount.
	s.ApplyRecord(models.ReceiptPatch{Amount: strPtr("1234.00"), StationName: strPtr("Highway Service Station")})

	f := s.Fields()
	assert.Equal(t, "1234.00", f.Amount)
	assert.Equal(t, "Highway Service Station", f.StationName)
	assert.Equal(t, "Keep Me", f.CustomerName)
	assert.Equal(t, "10.00L", f.Volume)
}

func TestGenerateYearlyValidation(t *testing.T) {
	cases := []struct {
		name string
		req  models.YearlyRequest
		msg  string
	}{
		{"min greater than max", models.YearlyRequest{MinAmount: 500, MaxAmount: 100, MonthlyCap: 5000, FuelAPIKey: "k"},
			"Please enter a valid min/max amount range."},
		{"zero min", models.YearlyRequest{MinAmount: 0, MaxAmount: 100, MonthlyCap: 5000, FuelAPIKey: "k"},
			"Please enter a valid min/max amount range."},
		{"zero cap", models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 0, FuelAPIKey: "k"},
			"Please enter a valid monthly cap."},
		{"missing api key", models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 5000, FuelAPIKey: "  "},
			"Please enter your Fuel API key."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestStudio()
			gen := &stubGenerator{}

			rows, err := s.GenerateYearly(context.Background(), gen, &tc.req)

			require.Error(t, err)
			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, tc.msg, vErr.Message)
			assert.Nil(t, rows)
			assert.Zero(t, gen.calls, "generator must not run on invalid parameters")
			assert.Empty(t, s.Batch())

			n := s.Notifier().Current()
			require.NotNil(t, n)
			assert.Equal(t, tc.msg, n.Message)
			assert.Equal(t, notify.Error, n.Kind)
		})
	}
}

func TestGenerateYearlyReplacesBatchWholesale(t *testing.T) {
	s := newTestStudio()
	req := &models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 5000, FuelAPIKey: "k"}

	first := &stubGenerator{resp: &models.YearlyResponse{Receipts: []models.YearlyReceipt{
		yearlyEntry(4, "2023-04-10 09:30", "Metro Petro Pump", "400.00", "96.72", "4.14L"),
		yearlyEntry(5, "2023-05-02 17:05", "Highway Service Station", "250.00", "96.72", "2.58L"),
	}}}
	_, err := s.GenerateYearly(context.Background(), first, req)
	require.NoError(t, err)
	require.Len(t, s.Batch(), 2)

	second := &stubGenerator{resp: &models.YearlyResponse{Receipts: []models.YearlyReceipt{
		yearlyEntry(6, "2023-06-20 11:00", "City Point Fuel Centre", "300.00", "95.10", "3.15L"),
	}}}
	rows, err := s.GenerateYearly(context.Background(), second, req)
	require.NoError(t, err)

	// No remnants of the previous batch survive.
	require.Len(t, s.Batch(), 1)
	require.Len(t, rows, 1)
	assert.Equal(t, "City Point Fuel Centre", rows[0].Station)

	n := s.Notifier().Current()
	require.NotNil(t, n)
	assert.Equal(t, "Yearly receipts generated.", n.Message)
}

func TestGenerateYearlyEmptyResult(t *testing.T) {
	s := newTestStudio()
	req := &models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 5000, FuelAPIKey: "k"}

	seeded := &stubGenerator{resp: &models.YearlyResponse{Receipts: []models.YearlyReceipt{
		yearlyEntry(4, "2023-04-10 09:30", "Metro Petro Pump", "400.00", "96.72", "4.14L"),
	}}}
	_, err := s.GenerateYearly(context.Background(), seeded, req)
	require.NoError(t, err)

	empty := &stubGenerator{resp: &models.YearlyResponse{}}
	rows, err := s.GenerateYearly(context.Background(), empty, req)
	require.NoError(t, err)

	// The old batch is gone and the user is told nothing was produced.
	assert.Empty(t, rows)
	assert.Empty(t, s.Batch())

	n := s.Notifier().Current()
	require.NotNil(t, n)
	assert.Equal(t, "No receipts generated for the given settings.", n.Message)
}

func TestGenerateYearlyFailureKeepsBatch(t *testing.T) {
	s := newTestStudio()
	req := &models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 5000, FuelAPIKey: "k"}

	ok := &stubGenerator{resp: &models.YearlyResponse{Receipts: []models.YearlyReceipt{
		yearlyEntry(4, "2023-04-10 09:30", "Metro Petro Pump", "400.00", "96.72", "4.14L"),
	}}}
	_, err := s.GenerateYearly(context.Background(), ok, req)
	require.NoError(t, err)

	failing := &stubGenerator{err: errors.New("upstream exploded")}
	_, err = s.GenerateYearly(context.Background(), failing, req)
	require.Error(t, err)

	assert.Len(t, s.Batch(), 1, "failed run must leave the cache untouched")

	n := s.Notifier().Current()
	require.NotNil(t, n)
	assert.Equal(t, notify.Error, n.Kind)
}

func TestUseBatchEntry(t *testing.T) {
	s := newTestStudio()
	req := &models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 5000, FuelAPIKey: "k"}
	gen := &stubGenerator{resp: &models.YearlyResponse{Receipts: []models.YearlyReceipt{
		yearlyEntry(4, "2023-04-10 09:30", "Metro Petro Pump", "400.00", "96.72", "4.14L"),
	}}}
	_, err := s.GenerateYearly(context.Background(), gen, req)
	require.NoError(t, err)

	t.Run("loads entry into form", func(t *testing.T) {
		require.NoError(t, s.UseBatchEntry(0))
		f := s.Fields()
		assert.Equal(t, "Metro Petro Pump", f.StationName)
		assert.Equal(t, "400.00", f.Amount)
		assert.Equal(t, "2023-04-10 09:30", f.Date)

		n := s.Notifier().Current()
		require.NotNil(t, n)
		assert.Equal(t, "Loaded yearly receipt into main form.", n.Message)
	})

	t.Run("out of range", func(t *testing.T) {
		assert.Error(t, s.UseBatchEntry(5))
		assert.Error(t, s.UseBatchEntry(-1))
	})

	t.Run("cleared batch rejects lookups", func(t *testing.T) {
		s.ClearBatch()
		assert.Error(t, s.UseBatchEntry(0))
	})
}

func TestRows(t *testing.T) {
	s := newTestStudio()
	req := &models.YearlyRequest{MinAmount: 100, MaxAmount: 500, MonthlyCap: 5000, FuelAPIKey: "k"}
	gen := &stubGenerator{resp: &models.YearlyResponse{Receipts: []models.YearlyReceipt{
		yearlyEntry(4, "2023-04-10 09:30", "Metro Petro Pump", "400.00", "96.72", "4.14L"),
		yearlyEntry(12, "not-a-date", "Highway Service Station", "250.00", "96.72", "2.58L"),
	}}}
	_, err := s.GenerateYearly(context.Background(), gen, req)
	require.NoError(t, err)

	rows := s.Rows()
	require.Len(t, rows, 2)

	assert.Equal(t, 0, rows[0].Index)
	assert.Equal(t, "Apr", rows[0].Month)
	assert.Equal(t, "4.14", rows[0].Volume, "unit suffix stripped for the column")

	// Unparsable date falls back to the generation bucket.
	assert.Equal(t, "Dec", rows[1].Month)
}

func TestBusyDiscipline(t *testing.T) {
	s := newTestStudio()

	require.NoError(t, s.BeginAction(ActionExport))
	err := s.BeginAction(ActionExport)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBusy)

	states := s.ActionStates()
	assert.True(t, states[ActionExport].Busy)
	assert.Equal(t, "Preparing ZIP...", states[ActionExport].Label)
	assert.False(t, states[ActionYearly].Busy)
	assert.Equal(t, "Generate Yearly Receipts", states[ActionYearly].Label)

	s.EndAction(ActionExport)
	assert.NoError(t, s.BeginAction(ActionExport))
	s.EndAction(ActionExport)
	assert.Equal(t, "Download All Receipts (ZIP)", s.ActionStates()[ActionExport].Label)
}

func TestGenerateReceiptBackendFailureDegradesLocally(t *testing.T) {
	s := newTestStudio()
	s.UpdateFields(models.ReceiptPatch{Amount: strPtr("777")})

	err := s.GenerateReceipt(func(fields models.ReceiptFields) (models.ReceiptPatch, error) {
		return models.ReceiptPatch{}, fmt.Errorf("backend down")
	})
	require.NoError(t, err)

	// Local state survives and the user still sees a success tone.
	assert.Equal(t, "777", s.Fields().Amount)
	n := s.Notifier().Current()
	require.NotNil(t, n)
	assert.Equal(t, "Receipt updated! (Using local preview)", n.Message)
	assert.Equal(t, notify.Success, n.Kind)
}

func TestGenerateReceiptAppliesFinalizedFields(t *testing.T) {
	s := newTestStudio()

	err := s.GenerateReceipt(func(fields models.ReceiptFields) (models.ReceiptPatch, error) {
		fields.ReceiptNo = "424242"
		return models.PatchFrom(fields), nil
	})
	require.NoError(t, err)

	assert.Equal(t, "424242", s.Fields().ReceiptNo)
	n := s.Notifier().Current()
	require.NotNil(t, n)
	assert.Equal(t, "Receipt generated successfully!", n.Message)
}

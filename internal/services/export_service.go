package services

import (
	"bytes"
	"context"
	"fmt"
	"image/png"
	"time"

	"fuel-backend/internal/export"
	"fuel-backend/internal/metrics"
	"fuel-backend/internal/models"
	"fuel-backend/internal/studio"
	"fuel-backend/internal/timeutil"
)

// Artifact names for client-side downloads.
const (
	SinglePNGName = "fuel-receipt.png"
	SinglePDFName = "fuel-receipt.pdf"
	BatchZipName  = "fuel-receipts-yearly.zip"
)

// ExportService produces the downloadable artifacts. The batch export
// reuses the studio form as its capture source, so the loop is strictly
// sequential: entry i+1 is not loaded until entry i's capture is done.
type ExportService struct {
	Rasterizer  export.Rasterizer
	Archiver    export.Archiver
	SettleDelay time.Duration

	// settle is swappable so tests do not sleep.
	settle func(time.Duration)
}

func NewExportService(rasterizer export.Rasterizer, archiver export.Archiver, settleDelay time.Duration) *ExportService {
	return &ExportService{
		Rasterizer:  rasterizer,
		Archiver:    archiver,
		SettleDelay: settleDelay,
		settle:      time.Sleep,
	}
}

// NewExportServiceNoSettle builds an export service that skips the
// settle delay, for tests.
func NewExportServiceNoSettle(rasterizer export.Rasterizer, archiver export.Archiver) *ExportService {
	return &ExportService{
		Rasterizer: rasterizer,
		Archiver:   archiver,
		settle:     func(time.Duration) {},
	}
}

// ExportPNG captures the receipt, converts it to grayscale and encodes
// a PNG. Capture or encoding failures abort with no artifact.
func (s *ExportService) ExportPNG(fields models.ReceiptFields) ([]byte, error) {
	img, err := s.Rasterizer.Capture(fields)
	if err != nil {
		return nil, fmt.Errorf("capture failed: %w", err)
	}

	gray := export.Grayscale(img)

	var buf bytes.Buffer
	if err := png.Encode(&buf, gray); err != nil {
		return nil, fmt.Errorf("png encoding failed: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues("png").Inc()
	return buf.Bytes(), nil
}

// ExportPDF renders the receipt as a PDF slip.
func (s *ExportService) ExportPDF(fields models.ReceiptFields) ([]byte, error) {
	data, err := export.GenerateReceiptPDF(fields)
	if err != nil {
		return nil, err
	}
	metrics.ExportsTotal.WithLabelValues("pdf").Inc()
	return data, nil
}

// ExportBatchZIP walks the cached batch in order, loading each entry
// into the studio form, waiting for it to settle, capturing it and
// packing every capture plus the CSV summary into one archive. Any
// mid-loop failure aborts the whole export; no partial archive is
// returned.
func (s *ExportService) ExportBatchZIP(ctx context.Context, st *studio.Studio) ([]byte, error) {
	batch := st.Batch()
	if len(batch) == 0 {
		return nil, studio.ErrNoBatch
	}
	if s.Archiver == nil {
		return nil, fmt.Errorf("archive packing unavailable")
	}

	summary, err := export.BuildSummaryCSV(batch)
	if err != nil {
		return nil, fmt.Errorf("summary failed: %w", err)
	}
	entries := []export.ArchiveEntry{{Name: "summary.csv", Data: summary}}

	for i, r := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		// The form is the shared scratch region: load this entry, let it
		// settle, then capture before touching the next one.
		st.ApplyRecord(models.PatchFrom(r.ReceiptFields))
		s.settle(s.SettleDelay)

		data, err := s.ExportPNG(st.Fields())
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", i+1, err)
		}

		entries = append(entries, export.ArchiveEntry{
			Name: fmt.Sprintf("receipt-%s-%03d.png", monthKey(r), i+1),
			Data: data,
		})
	}

	zipData, err := s.Archiver.Pack(entries)
	if err != nil {
		return nil, fmt.Errorf("archive failed: %w", err)
	}

	metrics.ExportsTotal.WithLabelValues("zip").Inc()
	return zipData, nil
}

// monthKey is the YYYY-MM bucket used in archive filenames, derived
// from the entry date with the generation bucket as fallback.
func monthKey(r models.YearlyReceipt) string {
	if t, err := time.Parse(timeutil.ReceiptLayout, r.Date); err == nil {
		return t.Format("2006-01")
	}
	return fmt.Sprintf("%04d-%02d", r.Year, r.Month)
}

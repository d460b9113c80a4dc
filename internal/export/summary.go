package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strings"

	"fuel-backend/internal/models"
)

// BuildSummaryCSV renders the batch as the bookkeeping summary that
// ships inside the yearly archive. encoding/csv handles the RFC 4180
// quoting (embedded quotes doubled, fields with commas/quotes/newlines
// wrapped).
func BuildSummaryCSV(receipts []models.YearlyReceipt) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write([]string{"Date", "Description", "Invoice Details", "Amount"}); err != nil {
		return nil, err
	}

	for _, r := range receipts {
		description := strings.TrimSpace(fmt.Sprintf(
			"Fuel purchase on %s receipt no. %s from %s", r.Date, r.ReceiptNo, r.StationName))
		invoiceDetails := strings.TrimSpace(fmt.Sprintf("Receipt %s", r.ReceiptNo))

		if err := w.Write([]string{r.Date, description, invoiceDetails, r.Amount}); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

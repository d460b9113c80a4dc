package services

import (
	"fmt"
	"math/rand"

	"fuel-backend/internal/metrics"
	"fuel-backend/internal/models"
	"fuel-backend/internal/timeutil"
)

// ReceiptService finalizes a single receipt from whatever the form
// currently holds. The input is echoed back with server-side gaps
// filled in; no validation is applied.
type ReceiptService struct{}

func NewReceiptService() *ReceiptService {
	return &ReceiptService{}
}

// Generate stamps the receipt with the current IST time (minute
// precision) when no date was supplied and assigns a random six-digit
// receipt number when the field is empty.
func (s *ReceiptService) Generate(fields models.ReceiptFields) models.ReceiptFields {
	if fields.Date == "" {
		fields.Date = timeutil.Now().Format(timeutil.ReceiptLayout)
	}
	if fields.ReceiptNo == "" {
		fields.ReceiptNo = fmt.Sprintf("%d", 100000+rand.Intn(900000))
	}
	metrics.ReceiptsGenerated.Inc()
	return fields
}

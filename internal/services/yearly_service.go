package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"math/rand"
	"strings"
	"sync"
	"time"

	"fuel-backend/internal/fuelprice"
	"fuel-backend/internal/metrics"
	"fuel-backend/internal/models"
	"fuel-backend/internal/timeutil"
)

// Validation errors surfaced as 400s with their message as the body.
var (
	ErrInvalidAmountRange = errors.New("Invalid min/max amount range")
	ErrInvalidMonthlyCap  = errors.New("Monthly cap must be positive")
	ErrMissingAPIKey      = errors.New("fuel_api_key is required")
)

// IsValidationError reports whether err is a request validation error.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidAmountRange) ||
		errors.Is(err, ErrInvalidMonthlyCap) ||
		errors.Is(err, ErrMissingAPIKey)
}

type station struct {
	Name    string
	Address string
}

// Example pool of fuel stations with addresses
var stationPool = []station{
	{
		Name:    "Rajasthan Rajpath Filling Station",
		Address: "Lock No 349, NH 8, Samalkha, New Delhi - 110037",
	},
	{
		Name:    "IndianOil Smart Fuel Station",
		Address: "Plot 21, Ring Road, Sector 18, Gurgaon - 122015",
	},
	{
		Name:    "Highway Service Station",
		Address: "NH 48, Near Toll Plaza, Manesar, Haryana - 122051",
	},
	{
		Name:    "City Point Fuel Centre",
		Address: "23 MG Road, Connaught Place, New Delhi - 110001",
	},
	{
		Name:    "Metro Petro Pump",
		Address: "Plot 5, Outer Ring Road, Rohini, New Delhi - 110085",
	},
}

// YearlyService generates a financial year (April-March) of randomized
// fuel receipts, spending up to a monthly cap in uniform draws between
// a min and max per-transaction amount.
type YearlyService struct {
	Prices *fuelprice.Client

	mu  sync.Mutex
	rnd *rand.Rand
	now func() time.Time
}

func NewYearlyService(prices *fuelprice.Client) *YearlyService {
	return &YearlyService{
		Prices: prices,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
		now:    timeutil.Now,
	}
}

// NewYearlyServiceWithSource builds a service with a fixed random source
// and clock, for deterministic tests.
func NewYearlyServiceWithSource(prices *fuelprice.Client, src rand.Source, now func() time.Time) *YearlyService {
	return &YearlyService{Prices: prices, rnd: rand.New(src), now: now}
}

// Generate validates the request, resolves daily petrol rates and
// produces the year's receipts. Validation failures return one of the
// Err* sentinels without any upstream call.
func (s *YearlyService) Generate(ctx context.Context, req *models.YearlyRequest) (*models.YearlyResponse, error) {
	year := req.Year
	if year == 0 {
		year = s.now().Year()
	}
	location := strings.TrimSpace(req.Location)
	if location == "" {
		location = "delhi"
	}
	apiKey := strings.TrimSpace(req.FuelAPIKey)
	telNo := strings.TrimSpace(req.TelNo)
	if telNo == "" {
		telNo = "1503339"
	}
	vehNo := strings.TrimSpace(req.VehNo)
	customerName := strings.TrimSpace(req.CustomerName)

	if req.MinAmount <= 0 || req.MaxAmount <= 0 || req.MaxAmount < req.MinAmount {
		return nil, ErrInvalidAmountRange
	}
	if req.MonthlyCap <= 0 {
		return nil, ErrInvalidMonthlyCap
	}
	if apiKey == "" {
		return nil, ErrMissingAPIKey
	}

	// Financial year: April (year-1) to March (year)
	startYear := year - 1

	points := s.Prices.HistoricalPrices(ctx, location, apiKey)
	table := fuelprice.NewPriceTable(points, s.Prices.DefaultRate(),
		time.Date(startYear, time.April, 1, 0, 0, 0, 0, timeutil.IST))

	type monthKey struct{ year, month int }
	var months []monthKey
	for m := 4; m <= 12; m++ {
		months = append(months, monthKey{startYear, m})
	}
	for m := 1; m <= 3; m++ {
		months = append(months, monthKey{year, m})
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var all []models.YearlyReceipt
	for _, mk := range months {
		lastDay := daysInMonth(mk.year, mk.month)
		monthTotal := 0.0

		// Keep drawing until the next minimum draw would breach the cap.
		// The safety counter bounds pathological min/cap combinations.
		for safety := 0; monthTotal+req.MinAmount <= req.MonthlyCap && safety < 100; safety++ {
			amount := req.MinAmount + s.rnd.Float64()*(req.MaxAmount-req.MinAmount)

			if monthTotal+amount > req.MonthlyCap {
				// Clamp the final draw to the remaining headroom when it
				// still clears the minimum; otherwise the month is done.
				remaining := req.MonthlyCap - monthTotal
				if remaining < req.MinAmount {
					break
				}
				amount = remaining
			}
			amount = round2(amount)

			day := 1 + s.rnd.Intn(lastDay)
			hour := s.rnd.Intn(24)
			minute := s.rnd.Intn(60)
			when := time.Date(mk.year, time.Month(mk.month), day, hour, minute, 0, 0, timeutil.IST)

			rate := table.RateFor(when)
			volume := 0.0
			if rate > 0 {
				volume = round2(amount / rate)
			}

			st := stationPool[s.rnd.Intn(len(stationPool))]

			all = append(all, models.YearlyReceipt{
				Year:  mk.year,
				Month: mk.month,
				ReceiptFields: models.ReceiptFields{
					StationName:  st.Name,
					Address:      st.Address,
					TelNo:        telNo,
					ReceiptNo:    fmt.Sprintf("%d", 100000+s.rnd.Intn(900000)),
					Product:      "Petrol",
					RatePerLtr:   fmt.Sprintf("%.2f", rate),
					Amount:       fmt.Sprintf("%.2f", amount),
					Volume:       fmt.Sprintf("%.2fL", volume),
					VehType:      "Petrol",
					VehNo:        vehNo,
					CustomerName: customerName,
					Date:         when.Format(timeutil.ReceiptLayout),
					Mode:         "Cash",
					AttendantID:  "not available",
				},
			})
			monthTotal += amount
		}
	}

	metrics.YearlyBatchesGenerated.Inc()

	return &models.YearlyResponse{
		FinancialYearEnd:   year,
		FinancialYearStart: startYear,
		MonthlyCap:         req.MonthlyCap,
		Receipts:           all,
	}, nil
}

func daysInMonth(year, month int) int {
	// Day 0 of the next month is the last day of this one.
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

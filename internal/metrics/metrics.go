package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReceiptsGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "receipts_generated_total",
			Help: "Single receipts generated",
		},
	)

	YearlyBatchesGenerated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "yearly_batches_generated_total",
			Help: "Yearly receipt batches generated",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "exports_total",
			Help: "Receipt exports by format",
		},
		[]string{"format"},
	)

	FuelPriceFetches = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fuel_price_fetches_total",
			Help: "Fuel price API fetches by outcome",
		},
		[]string{"outcome"},
	)
)

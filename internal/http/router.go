package http

import (
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"fuel-backend/internal/handlers"
)

func NewRouter(
	receiptHandler *handlers.ReceiptHandler,
	yearlyHandler *handlers.YearlyHandler,
	studioHandler *handlers.StudioHandler,
	exportHandler *handlers.ExportHandler,
	pageHandler *handlers.PageHandler,
	healthHandler *handlers.HealthHandler,
) *mux.Router {
	r := mux.NewRouter()

	// Landing page
	r.HandleFunc("/", pageHandler.StudioPage).Methods("GET")

	// Stateless generation API
	r.HandleFunc("/api/generate-receipt", receiptHandler.GenerateReceipt).Methods("POST")
	r.HandleFunc("/api/generate-yearly-receipts", yearlyHandler.GenerateYearly).Methods("POST")

	// Studio session - form, preview and batch cache
	studioAPI := r.PathPrefix("/api/studio").Subrouter()
	studioAPI.HandleFunc("/fields", studioHandler.GetState).Methods("GET")
	studioAPI.HandleFunc("/fields", studioHandler.UpdateFields).Methods("POST", "PATCH")
	studioAPI.HandleFunc("/reset", studioHandler.Reset).Methods("POST")
	studioAPI.HandleFunc("/generate", studioHandler.GenerateReceipt).Methods("POST")
	studioAPI.HandleFunc("/yearly", studioHandler.GenerateYearly).Methods("POST")
	studioAPI.HandleFunc("/yearly", studioHandler.ListYearly).Methods("GET")
	studioAPI.HandleFunc("/yearly/use/{index}", studioHandler.UseYearlyEntry).Methods("POST")
	studioAPI.HandleFunc("/yearly/clear", studioHandler.ClearYearly).Methods("POST")
	studioAPI.HandleFunc("/notification", studioHandler.GetNotification).Methods("GET")
	studioAPI.HandleFunc("/notification/dismiss", studioHandler.DismissNotification).Methods("POST")

	// Exports
	studioAPI.HandleFunc("/export/png", exportHandler.ExportPNG).Methods("GET")
	studioAPI.HandleFunc("/export/pdf", exportHandler.ExportPDF).Methods("GET")
	studioAPI.HandleFunc("/export/zip", exportHandler.ExportZip).Methods("GET")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")
	r.HandleFunc("/health/detailed", healthHandler.DetailedHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"time"

	"fuel-backend/internal/cache"
	"fuel-backend/internal/config"
	"fuel-backend/internal/export"
	"fuel-backend/internal/fuelprice"
	"fuel-backend/internal/handlers"
	"fuel-backend/internal/health"
	h "fuel-backend/internal/http"
	"fuel-backend/internal/middleware"
	"fuel-backend/internal/monitoring"
	"fuel-backend/internal/notify"
	"fuel-backend/internal/services"
	"fuel-backend/internal/studio"
)

func main() {
	// Parse command-line flags
	port := flag.Int("port", 0, "Server port (overrides config)")
	flag.Parse()

	// Load configuration
	cfg := config.Load()

	// Override port if specified
	if *port != 0 {
		cfg.Server.Port = *port
	}

	// Initialize Redis cache (optional - graceful fallback if unavailable)
	if err := cache.Init(); err != nil {
		log.Printf("[Redis] Cache unavailable: %v (fuel prices fetched per request)", err)
	} else {
		log.Println("[Redis] Cache connected successfully")
	}

	// Initialize health checker
	healthChecker := health.NewHealthChecker(cfg)

	// The single studio session: form, preview, batch cache, notifications
	notifier := notify.NewNotifier()
	st := studio.New(notifier)

	// Start monitoring dashboard server in background
	if cfg.Monitoring.Enabled {
		go monitoring.NewMonitoringServer(st, cfg.Monitoring.Port).Start()
	}

	// Initialize services
	priceClient := fuelprice.NewClient(cfg)
	receiptService := services.NewReceiptService()
	yearlyService := services.NewYearlyService(priceClient)
	exportService := services.NewExportService(
		export.NewReceiptRasterizer(cfg.Export.Scale),
		export.NewZipArchiver(),
		time.Duration(cfg.Export.SettleDelayMs)*time.Millisecond,
	)

	// Initialize handlers
	receiptHandler := handlers.NewReceiptHandler(receiptService)
	yearlyHandler := handlers.NewYearlyHandler(yearlyService)
	studioHandler := handlers.NewStudioHandler(st, receiptService, yearlyService)
	exportHandler := handlers.NewExportHandler(st, exportService)
	pageHandler := handlers.NewPageHandler()
	healthHandler := handlers.NewHealthHandler(healthChecker)

	// Create router
	router := h.NewRouter(receiptHandler, yearlyHandler, studioHandler, exportHandler, pageHandler, healthHandler)

	// Wrap with panic recovery and metrics middleware
	corsMiddleware := middleware.NewCORS(cfg)
	handler := middleware.PanicRecovery(middleware.MetricsMiddleware(corsMiddleware(router)))

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("Server running on %s", addr)
	if err := http.ListenAndServe(addr, handler); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}

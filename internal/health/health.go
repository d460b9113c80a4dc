package health

import (
	"fuel-backend/internal/cache"
	"fuel-backend/internal/config"
)

type HealthChecker struct {
	cfg *config.Config
}

type HealthStatus struct {
	Status  string      `json:"status"`
	FuelAPI FuelAPIInfo `json:"fuel_api"`
	Cache   CacheHealth `json:"cache"`
}

type FuelAPIInfo struct {
	BaseURL    string `json:"base_url"`
	Configured bool   `json:"configured"`
}

type CacheHealth struct {
	Status string `json:"status"`
}

func NewHealthChecker(cfg *config.Config) *HealthChecker {
	return &HealthChecker{cfg: cfg}
}

// CheckBasic reports readiness. The cache is optional so a missing
// Redis degrades the report without failing it; only a missing fuel
// API base URL makes the service unhealthy.
func (h *HealthChecker) CheckBasic() HealthStatus {
	apiInfo := FuelAPIInfo{
		BaseURL:    h.cfg.FuelAPI.BaseURL,
		Configured: h.cfg.FuelAPI.BaseURL != "",
	}

	cacheHealth := CacheHealth{Status: "unavailable"}
	if cache.Available() {
		cacheHealth.Status = "healthy"
	}

	status := "healthy"
	if !apiInfo.Configured {
		status = "unhealthy"
	}

	return HealthStatus{
		Status:  status,
		FuelAPI: apiInfo,
		Cache:   cacheHealth,
	}
}

// Package fuelprice fetches historical petrol prices from the Indian
// fuel price API. Every failure degrades to a constant default rate so
// receipt generation keeps working without the upstream service.
package fuelprice

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"fuel-backend/internal/cache"
	"fuel-backend/internal/config"
	"fuel-backend/internal/metrics"
)

// PricePoint is one known daily price.
type PricePoint struct {
	Date  time.Time `json:"date"`
	Price float64   `json:"price"`
}

// apiEntry is the upstream response item shape.
type apiEntry struct {
	Date  string      `json:"date"`
	Name  string      `json:"name"`
	Price interface{} `json:"price"`
}

type Client struct {
	httpClient  *http.Client
	baseURL     string
	historyDays int
	defaultRate float64
}

func NewClient(cfg *config.Config) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.FuelAPI.TimeoutSeconds) * time.Second,
		},
		baseURL:     cfg.FuelAPI.BaseURL,
		historyDays: cfg.FuelAPI.HistoryDays,
		defaultRate: cfg.FuelAPI.DefaultRate,
	}
}

// DefaultRate returns the constant fallback rate.
func (c *Client) DefaultRate() float64 {
	return c.defaultRate
}

// HistoricalPrices returns the petrol price history for a location,
// newest last. Cache hits skip the upstream call entirely. A nil slice
// means the upstream was unusable and callers should fall back.
func (c *Client) HistoricalPrices(ctx context.Context, location, apiKey string) []PricePoint {
	cacheKey := fmt.Sprintf(cache.FuelPriceKeyFmt, strings.ToLower(location))
	if data, ok := cache.GetBytes(ctx, cacheKey); ok {
		var points []PricePoint
		if err := json.Unmarshal(data, &points); err == nil && len(points) > 0 {
			metrics.FuelPriceFetches.WithLabelValues("cache_hit").Inc()
			return points
		}
	}

	points := c.fetch(ctx, location, apiKey)
	if len(points) == 0 {
		metrics.FuelPriceFetches.WithLabelValues("fallback").Inc()
		return nil
	}
	metrics.FuelPriceFetches.WithLabelValues("ok").Inc()

	if data, err := json.Marshal(points); err == nil {
		cache.SetBytes(ctx, cacheKey, data, cache.FuelPriceTTL)
	}
	return points
}

func (c *Client) fetch(ctx context.Context, location, apiKey string) []PricePoint {
	apiURL := fmt.Sprintf("%s/historical_fuel_price?location=%s&n=%d",
		c.baseURL, url.QueryEscape(location), c.historyDays)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		log.Printf("[FuelAPI] Failed to build request: %v. Using default rate.", err)
		return nil
	}
	req.Header.Set("X-Api-Key", apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("[FuelAPI] Error calling fuel price API: %v. Using default rate.", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("[FuelAPI] API returned status %d; using default rate.", resp.StatusCode)
		return nil
	}

	var entries []apiEntry
	if err := json.NewDecoder(resp.Body).Decode(&entries); err != nil {
		log.Printf("[FuelAPI] Response was not a list; using default rate.")
		return nil
	}

	var points []PricePoint
	for _, e := range entries {
		dateStr := e.Date
		if len(dateStr) > 10 {
			dateStr = dateStr[:10]
		}
		if dateStr == "" {
			continue
		}
		d, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			continue
		}

		// Prefer Petrol entries; an empty name is still allowed
		name := strings.ToLower(e.Name)
		if name != "" && !strings.Contains(name, "petrol") {
			continue
		}

		price, ok := parsePrice(e.Price)
		if !ok || price <= 0 {
			continue
		}

		points = append(points, PricePoint{Date: d, Price: price})
	}

	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })
	return points
}

func parsePrice(v interface{}) (float64, bool) {
	switch p := v.(type) {
	case float64:
		return p, true
	case string:
		var f float64
		if _, err := fmt.Sscanf(p, "%f", &f); err == nil {
			return f, true
		}
	}
	return 0, false
}

package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fuel-backend/internal/config"
	"fuel-backend/internal/fuelprice"
	"fuel-backend/internal/models"
	"fuel-backend/internal/services"
)

func testYearlyService(t *testing.T) *services.YearlyService {
	t.Helper()
	cfg := &config.Config{}
	cfg.FuelAPI.BaseURL = "http://127.0.0.1:1" // unreachable, falls back to default rate
	cfg.FuelAPI.TimeoutSeconds = 1
	cfg.FuelAPI.HistoryDays = 10
	cfg.FuelAPI.DefaultRate = 94.72
	return services.NewYearlyService(fuelprice.NewClient(cfg))
}

func TestGenerateYearlyValidationReturns400(t *testing.T) {
	h := NewYearlyHandler(testYearlyService(t))

	body := `{"monthly_cap":5000,"min_amount":0,"max_amount":500,"fuel_api_key":"k"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-yearly-receipts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GenerateYearly(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Invalid min/max amount range", resp.Error)
}

func TestGenerateYearlyMissingKeyReturns400(t *testing.T) {
	h := NewYearlyHandler(testYearlyService(t))

	body := `{"year":2024,"monthly_cap":5000,"min_amount":300,"max_amount":800}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-yearly-receipts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GenerateYearly(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "fuel_api_key is required", resp.Error)
}

func TestGenerateYearlySuccess(t *testing.T) {
	h := NewYearlyHandler(testYearlyService(t))

	body := `{"year":2024,"monthly_cap":5000,"min_amount":300,"max_amount":800,"fuel_api_key":"k"}`
	req := httptest.NewRequest(http.MethodPost, "/api/generate-yearly-receipts", strings.NewReader(body))
	rec := httptest.NewRecorder()

	h.GenerateYearly(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.YearlyResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 2024, resp.FinancialYearEnd)
	assert.Equal(t, 2023, resp.FinancialYearStart)
	assert.NotEmpty(t, resp.Receipts)
}

func TestGenerateYearlyBadJSON(t *testing.T) {
	h := NewYearlyHandler(testYearlyService(t))

	req := httptest.NewRequest(http.MethodPost, "/api/generate-yearly-receipts", strings.NewReader("{"))
	rec := httptest.NewRecorder()

	h.GenerateYearly(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

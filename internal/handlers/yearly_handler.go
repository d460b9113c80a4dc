package handlers

import (
	"encoding/json"
	"net/http"

	"fuel-backend/internal/models"
	"fuel-backend/internal/services"
	"fuel-backend/pkg/utils"
)

type YearlyHandler struct {
	Service *services.YearlyService
}

func NewYearlyHandler(s *services.YearlyService) *YearlyHandler {
	return &YearlyHandler{Service: s}
}

// GenerateYearly produces a financial year of synthetic receipts.
// Parameter validation failures come back as 400 with the message in
// the error body.
func (h *YearlyHandler) GenerateYearly(w http.ResponseWriter, r *http.Request) {
	var req models.YearlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	resp, err := h.Service.Generate(r.Context(), &req)
	if err != nil {
		if services.IsValidationError(err) {
			utils.Error(w, http.StatusBadRequest, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

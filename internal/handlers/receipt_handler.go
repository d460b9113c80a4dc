package handlers

import (
	"encoding/json"
	"net/http"

	"fuel-backend/internal/models"
	"fuel-backend/internal/services"
)

type ReceiptHandler struct {
	Service *services.ReceiptService
}

func NewReceiptHandler(s *services.ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{Service: s}
}

// GenerateReceipt echoes the submitted fields back with server-side
// gaps (date, receipt number) filled in.
func (h *ReceiptHandler) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	var fields models.ReceiptFields
	if err := json.NewDecoder(r.Body).Decode(&fields); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	out := h.Service.Generate(fields)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"fuel-backend/internal/models"
	"fuel-backend/internal/services"
	"fuel-backend/internal/studio"
	"fuel-backend/pkg/utils"
)

// StudioHandler exposes the interactive session: form edits, preview
// state, receipt finalization, yearly batches and notifications.
type StudioHandler struct {
	Studio     *studio.Studio
	ReceiptSvc *services.ReceiptService
	YearlySvc  *services.YearlyService
}

func NewStudioHandler(st *studio.Studio, receiptSvc *services.ReceiptService, yearlySvc *services.YearlyService) *StudioHandler {
	return &StudioHandler{
		Studio:     st,
		ReceiptSvc: receiptSvc,
		YearlySvc:  yearlySvc,
	}
}

// studioState is the full session snapshot returned after every edit.
type studioState struct {
	Fields       models.ReceiptFields          `json:"fields"`
	Preview      map[string]string             `json:"preview"`
	Pulse        uint64                        `json:"pulse"`
	Actions      map[string]studio.ActionState `json:"actions"`
	Notification interface{}                   `json:"notification"`
}

func (h *StudioHandler) state() studioState {
	return studioState{
		Fields:       h.Studio.Fields(),
		Preview:      h.Studio.Preview().Slots(),
		Pulse:        h.Studio.Preview().Pulse(),
		Actions:      h.Studio.ActionStates(),
		Notification: h.Studio.Notifier().Current(),
	}
}

// GetState returns the current form, preview slots and pulse counter.
func (h *StudioHandler) GetState(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, h.state())
}

// UpdateFields applies a sparse patch to the form. Amount or rate edits
// recompute the volume before the preview syncs.
func (h *StudioHandler) UpdateFields(w http.ResponseWriter, r *http.Request) {
	var patch models.ReceiptPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.Studio.UpdateFields(patch)
	utils.JSON(w, http.StatusOK, h.state())
}

// Reset restores the default receipt.
func (h *StudioHandler) Reset(w http.ResponseWriter, r *http.Request) {
	h.Studio.Reset()
	utils.JSON(w, http.StatusOK, h.state())
}

// GenerateReceipt finalizes the current form. A backend failure leaves
// the local state visible and still reports success, mirroring the
// degraded-but-usable flow.
func (h *StudioHandler) GenerateReceipt(w http.ResponseWriter, r *http.Request) {
	err := h.Studio.GenerateReceipt(func(fields models.ReceiptFields) (models.ReceiptPatch, error) {
		out := h.ReceiptSvc.Generate(fields)
		return models.PatchFrom(out), nil
	})
	if err != nil {
		if errors.Is(err, studio.ErrBusy) {
			utils.Error(w, http.StatusConflict, err.Error())
			return
		}
		utils.Error(w, http.StatusInternalServerError, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.state())
}

// GenerateYearly runs the batch generator and returns the result table.
func (h *StudioHandler) GenerateYearly(w http.ResponseWriter, r *http.Request) {
	var req models.YearlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.Error(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rows, err := h.Studio.GenerateYearly(r.Context(), h.YearlySvc, &req)
	if err != nil {
		var vErr *studio.ValidationError
		switch {
		case errors.As(err, &vErr):
			utils.Error(w, http.StatusBadRequest, vErr.Message)
		case errors.Is(err, studio.ErrBusy):
			utils.Error(w, http.StatusConflict, err.Error())
		default:
			utils.Error(w, http.StatusBadGateway, err.Error())
		}
		return
	}

	utils.JSON(w, http.StatusOK, map[string]interface{}{"rows": rows})
}

// ListYearly returns the cached batch as table rows.
func (h *StudioHandler) ListYearly(w http.ResponseWriter, r *http.Request) {
	rows := h.Studio.Rows()
	if rows == nil {
		rows = []studio.TableRow{}
	}
	utils.JSON(w, http.StatusOK, map[string]interface{}{"rows": rows})
}

// UseYearlyEntry loads one cached entry into the main form.
func (h *StudioHandler) UseYearlyEntry(w http.ResponseWriter, r *http.Request) {
	idxStr := mux.Vars(r)["index"]
	idx, err := strconv.Atoi(idxStr)
	if err != nil {
		utils.Error(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	if err := h.Studio.UseBatchEntry(idx); err != nil {
		utils.Error(w, http.StatusNotFound, err.Error())
		return
	}

	utils.JSON(w, http.StatusOK, h.state())
}

// ClearYearly drops the cached batch.
func (h *StudioHandler) ClearYearly(w http.ResponseWriter, r *http.Request) {
	h.Studio.ClearBatch()
	utils.JSON(w, http.StatusOK, map[string]interface{}{"rows": []studio.TableRow{}})
}

// GetNotification returns the visible notification, or null.
func (h *StudioHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]interface{}{
		"notification": h.Studio.Notifier().Current(),
	})
}

// DismissNotification clears the notification surface immediately.
func (h *StudioHandler) DismissNotification(w http.ResponseWriter, r *http.Request) {
	h.Studio.Notifier().Dismiss()
	w.WriteHeader(http.StatusNoContent)
}

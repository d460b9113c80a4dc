package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"fuel-backend/internal/notify"
	"fuel-backend/internal/services"
	"fuel-backend/internal/studio"
	"fuel-backend/pkg/utils"
)

// User-facing export messages, verbatim from the original tool.
const (
	msgImageOK        = "Receipt image downloaded!"
	msgImageFailed    = "Failed to export receipt image."
	msgZipOK          = "ZIP with all receipts downloaded!"
	msgZipFailed      = "Failed to generate ZIP of receipts."
	msgNeedBatchFirst = "Please generate yearly receipts first."
)

// ExportHandler serves the downloadable artifacts: single-receipt PNG
// and PDF, and the yearly ZIP archive.
type ExportHandler struct {
	Studio  *studio.Studio
	Service *services.ExportService
}

func NewExportHandler(st *studio.Studio, svc *services.ExportService) *ExportHandler {
	return &ExportHandler{Studio: st, Service: svc}
}

// ExportPNG captures the current receipt as a grayscale PNG download.
// A failed capture notifies and produces no artifact.
func (h *ExportHandler) ExportPNG(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportPNG(h.Studio.Fields())
	if err != nil {
		h.Studio.Notifier().Notify(msgImageFailed, notify.Error)
		utils.Error(w, http.StatusInternalServerError, msgImageFailed)
		return
	}

	h.Studio.Notifier().Notify(msgImageOK, notify.Success)
	serveDownload(w, services.SinglePNGName, "image/png", data)
}

// ExportPDF renders the current receipt as a PDF download.
func (h *ExportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	data, err := h.Service.ExportPDF(h.Studio.Fields())
	if err != nil {
		h.Studio.Notifier().Notify(msgImageFailed, notify.Error)
		utils.Error(w, http.StatusInternalServerError, msgImageFailed)
		return
	}

	serveDownload(w, services.SinglePDFName, "application/pdf", data)
}

// ExportZip packs the cached yearly batch plus its CSV summary into a
// ZIP download. Preconditions (a non-empty batch) and mid-export
// failures notify and abort with no partial artifact.
func (h *ExportHandler) ExportZip(w http.ResponseWriter, r *http.Request) {
	if err := h.Studio.BeginAction(studio.ActionExport); err != nil {
		utils.Error(w, http.StatusConflict, err.Error())
		return
	}
	defer h.Studio.EndAction(studio.ActionExport)

	data, err := h.Service.ExportBatchZIP(r.Context(), h.Studio)
	if err != nil {
		if errors.Is(err, studio.ErrNoBatch) {
			h.Studio.Notifier().Notify(msgNeedBatchFirst, notify.Error)
			utils.Error(w, http.StatusBadRequest, msgNeedBatchFirst)
			return
		}
		h.Studio.Notifier().Notify(msgZipFailed, notify.Error)
		utils.Error(w, http.StatusInternalServerError, msgZipFailed)
		return
	}

	h.Studio.Notifier().Notify(msgZipOK, notify.Success)
	serveDownload(w, services.BatchZipName, "application/zip", data)
}

func serveDownload(w http.ResponseWriter, name, contentType string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.Write(data)
}

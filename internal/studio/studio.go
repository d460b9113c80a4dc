package studio

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"fuel-backend/internal/models"
	"fuel-backend/internal/notify"
	"fuel-backend/internal/timeutil"
)

// Action names for the busy-state discipline.
const (
	ActionGenerate = "generate"
	ActionYearly   = "yearly"
	ActionExport   = "export"
)

// actionLabels holds the idle and in-progress labels per action.
var actionLabels = map[string][2]string{
	ActionGenerate: {"Generate Receipt", "Generating..."},
	ActionYearly:   {"Generate Yearly Receipts", "Generating..."},
	ActionExport:   {"Download All Receipts (ZIP)", "Preparing ZIP..."},
}

var (
	// ErrBusy rejects a trigger while the same action is still running.
	ErrBusy = errors.New("action already in progress")
	// ErrNoBatch rejects batch operations with an empty cache.
	ErrNoBatch = errors.New("no yearly receipts generated")
)

// ValidationError is a batch-parameter failure with its user-facing
// message. No generation happens when one is returned.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// User-facing messages, verbatim from the original tool.
const (
	msgInvalidRange   = "Please enter a valid min/max amount range."
	msgInvalidCap     = "Please enter a valid monthly cap."
	msgMissingAPIKey  = "Please enter your Fuel API key."
	msgYearlyOK     = "Yearly receipts generated."
	msgYearlyEmpty  = "No receipts generated for the given settings."
	msgYearlyFailed = "Failed to generate yearly receipts."
	msgEntryLoaded  = "Loaded yearly receipt into main form."
	msgReceiptOK    = "Receipt generated successfully!"
	msgReceiptLocal = "Receipt updated! (Using local preview)"
)

// TableRow is one line of the yearly results table.
type TableRow struct {
	Index   int    `json:"index"`
	Month   string `json:"month"` // abbreviated month name
	Date    string `json:"date"`
	Station string `json:"station"`
	Amount  string `json:"amount"`
	Rate    string `json:"rate"`
	Volume  string `json:"volume"` // unit suffix stripped for the column
}

// ActionState describes one action button for the UI.
type ActionState struct {
	Label string `json:"label"`
	Busy  bool   `json:"busy"`
}

// YearlyGenerator produces a year of synthetic receipts.
type YearlyGenerator interface {
	Generate(ctx context.Context, req *models.YearlyRequest) (*models.YearlyResponse, error)
}

// Studio is the single interactive session: form state, preview, batch
// cache and notification surface. All state behind one mutex; long
// actions additionally hold their busy flag so overlapping triggers
// fail fast instead of racing.
type Studio struct {
	mu       sync.Mutex
	fields   models.ReceiptFields
	preview  *Preview
	notifier *notify.Notifier
	batch    []models.YearlyReceipt
	busy     map[string]bool
}

func New(notifier *notify.Notifier) *Studio {
	return NewWithPreview(notifier, NewPreview())
}

// NewWithPreview lets tests supply a preview with no transition delay.
func NewWithPreview(notifier *notify.Notifier, preview *Preview) *Studio {
	s := &Studio{
		preview:  preview,
		notifier: notifier,
		busy:     make(map[string]bool),
	}
	s.Reset()
	return s
}

// Reset restores the default receipt and refreshes the preview.
func (s *Studio) Reset() {
	s.mu.Lock()
	s.fields = models.ReceiptFields{
		StationName: "Rajasthan Rajpath Filling Station",
		Address:     "Address Lock No 349, NH 8 Samalkha New Delhi - 110037",
		TelNo:       "1503339",
		ReceiptNo:   "159955",
		Product:     "Petrol",
		RatePerLtr:  "94.72",
		Amount:      "5000",
		Volume:      "52.79L",
		VehType:     "Petrol",
		Mode:        "Cash",
		AttendantID: "not available",
		Date:        timeutil.Now().Format(timeutil.ReceiptLayout),
	}
	fields := s.fields
	s.mu.Unlock()
	s.preview.Sync(&fields)
}

// Fields returns a copy of the current form state.
func (s *Studio) Fields() models.ReceiptFields {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fields
}

// Preview exposes the display surface.
func (s *Studio) Preview() *Preview {
	return s.preview
}

// Notifier exposes the notification surface.
func (s *Studio) Notifier() *notify.Notifier {
	return s.notifier
}

// UpdateFields is the input dispatcher: apply the edits, recompute the
// volume when amount or rate changed, then sync the preview.
func (s *Studio) UpdateFields(patch models.ReceiptPatch) {
	s.mu.Lock()
	applyPatch(&s.fields, &patch)
	if patch.Amount != nil || patch.RatePerLtr != nil {
		recalcVolume(&s.fields)
	}
	fields := s.fields
	s.mu.Unlock()
	s.preview.Sync(&fields)
}

// ApplyRecord writes every present field of the record into the form
// and syncs the preview. Absent (nil) fields are left untouched, so a
// sparse record performs a partial update.
func (s *Studio) ApplyRecord(patch models.ReceiptPatch) {
	s.mu.Lock()
	applyPatch(&s.fields, &patch)
	fields := s.fields
	s.mu.Unlock()
	s.preview.Sync(&fields)
}

func applyPatch(f *models.ReceiptFields, p *models.ReceiptPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&f.StationName, p.StationName)
	set(&f.Address, p.Address)
	set(&f.TelNo, p.TelNo)
	set(&f.ReceiptNo, p.ReceiptNo)
	set(&f.FccID, p.FccID)
	set(&f.FipNo, p.FipNo)
	set(&f.NozzleNo, p.NozzleNo)
	set(&f.Product, p.Product)
	set(&f.RatePerLtr, p.RatePerLtr)
	set(&f.Amount, p.Amount)
	set(&f.Volume, p.Volume)
	set(&f.VehType, p.VehType)
	set(&f.VehNo, p.VehNo)
	set(&f.CustomerName, p.CustomerName)
	set(&f.Date, p.Date)
	set(&f.Mode, p.Mode)
	set(&f.LstNo, p.LstNo)
	set(&f.VatNo, p.VatNo)
	set(&f.AttendantID, p.AttendantID)
}

// recalcVolume derives volume = amount / rate to two decimals with the
// "L" suffix, only when the rate is positive. A zero or unparsable rate
// leaves the volume exactly as it was.
func recalcVolume(f *models.ReceiptFields) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil {
		amount = 0
	}
	rate, err := strconv.ParseFloat(strings.TrimSpace(f.RatePerLtr), 64)
	if err != nil {
		rate = 0
	}
	if rate > 0 {
		f.Volume = fmt.Sprintf("%.2fL", amount/rate)
	}
}

// GenerateReceipt finalizes the current form through the backend call.
// A failed call degrades to a local-only preview refresh and still
// reports a success-toned notification.
func (s *Studio) GenerateReceipt(finalize func(models.ReceiptFields) (models.ReceiptPatch, error)) error {
	if err := s.BeginAction(ActionGenerate); err != nil {
		return err
	}
	defer s.EndAction(ActionGenerate)

	patch, err := finalize(s.Fields())
	if err != nil {
		fields := s.Fields()
		s.preview.Sync(&fields)
		s.notifier.Notify(msgReceiptLocal, notify.Success)
		return nil
	}
	s.ApplyRecord(patch)
	s.notifier.Notify(msgReceiptOK, notify.Success)
	return nil
}

// GenerateYearly validates the batch parameters, runs the generator and
// replaces the cache wholesale on success. Validation failures notify
// and halt before any generation; generator failures notify and leave
// the cache untouched. The busy flag is released on every outcome.
func (s *Studio) GenerateYearly(ctx context.Context, gen YearlyGenerator, req *models.YearlyRequest) ([]TableRow, error) {
	if req.MinAmount <= 0 || req.MaxAmount <= 0 || req.MaxAmount < req.MinAmount {
		s.notifier.Notify(msgInvalidRange, notify.Error)
		return nil, &ValidationError{Message: msgInvalidRange}
	}
	if req.MonthlyCap <= 0 {
		s.notifier.Notify(msgInvalidCap, notify.Error)
		return nil, &ValidationError{Message: msgInvalidCap}
	}
	if strings.TrimSpace(req.FuelAPIKey) == "" {
		s.notifier.Notify(msgMissingAPIKey, notify.Error)
		return nil, &ValidationError{Message: msgMissingAPIKey}
	}

	if err := s.BeginAction(ActionYearly); err != nil {
		return nil, err
	}
	defer s.EndAction(ActionYearly)

	resp, err := gen.Generate(ctx, req)
	if err != nil {
		msg := msgYearlyFailed
		if errMsg := err.Error(); errMsg != "" {
			msg = errMsg
		}
		s.notifier.Notify(msg, notify.Error)
		return nil, err
	}

	s.mu.Lock()
	s.batch = resp.Receipts
	s.mu.Unlock()

	// An empty result still replaces the cache, but the user is told
	// nothing came out of their settings instead of a plain success.
	if len(resp.Receipts) == 0 {
		s.notifier.Notify(msgYearlyEmpty, notify.Success)
		return s.Rows(), nil
	}

	s.notifier.Notify(msgYearlyOK, notify.Success)
	return s.Rows(), nil
}

// Batch returns a copy of the cached yearly receipts. This is the only
// way other components read the cache.
func (s *Studio) Batch() []models.YearlyReceipt {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.YearlyReceipt, len(s.batch))
	copy(out, s.batch)
	return out
}

// ClearBatch drops the cache and resets the yearly form state.
func (s *Studio) ClearBatch() {
	s.mu.Lock()
	s.batch = nil
	s.mu.Unlock()
}

// UseBatchEntry loads one cached entry into the main form.
func (s *Studio) UseBatchEntry(index int) error {
	s.mu.Lock()
	if index < 0 || index >= len(s.batch) {
		s.mu.Unlock()
		return fmt.Errorf("no receipt at index %d", index)
	}
	entry := s.batch[index]
	s.mu.Unlock()

	s.ApplyRecord(models.PatchFrom(entry.ReceiptFields))
	s.notifier.Notify(msgEntryLoaded, notify.Success)
	return nil
}

// Rows renders the cached batch as result-table rows.
func (s *Studio) Rows() []TableRow {
	batch := s.Batch()
	rows := make([]TableRow, 0, len(batch))
	for i, r := range batch {
		rows = append(rows, TableRow{
			Index:   i,
			Month:   monthName(r),
			Date:    r.Date,
			Station: r.StationName,
			Amount:  r.Amount,
			Rate:    r.RatePerLtr,
			Volume:  strings.TrimSpace(strings.TrimSuffix(r.Volume, "L")),
		})
	}
	return rows
}

// monthName derives the abbreviated month name from the entry date,
// falling back to the generation bucket when the date does not parse.
func monthName(r models.YearlyReceipt) string {
	if t, err := time.Parse(timeutil.ReceiptLayout, r.Date); err == nil {
		return t.Format("Jan")
	}
	if r.Month >= 1 && r.Month <= 12 {
		return time.Month(r.Month).String()[:3]
	}
	return ""
}

// BeginAction claims an action's busy flag; ErrBusy when already held.
func (s *Studio) BeginAction(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy[name] {
		return fmt.Errorf("%s: %w", name, ErrBusy)
	}
	s.busy[name] = true
	return nil
}

// EndAction releases an action's busy flag. Callers defer this so the
// release happens on every outcome.
func (s *Studio) EndAction(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy[name] = false
}

// ActionStates reports each action's current label and busy state.
func (s *Studio) ActionStates() map[string]ActionState {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]ActionState, len(actionLabels))
	for name, labels := range actionLabels {
		label := labels[0]
		if s.busy[name] {
			label = labels[1]
		}
		out[name] = ActionState{Label: label, Busy: s.busy[name]}
	}
	return out
}

// Package studio owns the interactive receipt session: the form state,
// the preview synchronizer, the yearly batch cache and the busy-state
// discipline around long-running actions. One studio serves the whole
// process; the tool is single-user by design.
package studio

import (
	"strconv"
	"strings"

	"fuel-backend/internal/models"
)

// FieldKind selects the display normalization applied to a field.
type FieldKind int

const (
	KindText    FieldKind = iota
	KindDecimal           // rendered with two decimal places when non-empty
	KindVolume            // rendered with a trailing " L" unless already suffixed
)

// Field is one entry of the form's field registry: a stable name, a
// normalization kind and typed accessors into ReceiptFields. The
// registry is the single mapping shared by the preview synchronizer
// and the data transfer layer.
type Field struct {
	Name string
	Kind FieldKind
	Get  func(*models.ReceiptFields) string
	Set  func(*models.ReceiptFields, string)
}

// Registry lists every receipt field in display order.
var Registry = []Field{
	{"stationName", KindText,
		func(f *models.ReceiptFields) string { return f.StationName },
		func(f *models.ReceiptFields, v string) { f.StationName = v }},
	{"address", KindText,
		func(f *models.ReceiptFields) string { return f.Address },
		func(f *models.ReceiptFields, v string) { f.Address = v }},
	{"telNo", KindText,
		func(f *models.ReceiptFields) string { return f.TelNo },
		func(f *models.ReceiptFields, v string) { f.TelNo = v }},
	{"receiptNo", KindText,
		func(f *models.ReceiptFields) string { return f.ReceiptNo },
		func(f *models.ReceiptFields, v string) { f.ReceiptNo = v }},
	{"fccId", KindText,
		func(f *models.ReceiptFields) string { return f.FccID },
		func(f *models.ReceiptFields, v string) { f.FccID = v }},
	{"fipNo", KindText,
		func(f *models.ReceiptFields) string { return f.FipNo },
		func(f *models.ReceiptFields, v string) { f.FipNo = v }},
	{"nozzleNo", KindText,
		func(f *models.ReceiptFields) string { return f.NozzleNo },
		func(f *models.ReceiptFields, v string) { f.NozzleNo = v }},
	{"product", KindText,
		func(f *models.ReceiptFields) string { return f.Product },
		func(f *models.ReceiptFields, v string) { f.Product = v }},
	{"ratePerLtr", KindDecimal,
		func(f *models.ReceiptFields) string { return f.RatePerLtr },
		func(f *models.ReceiptFields, v string) { f.RatePerLtr = v }},
	{"amount", KindDecimal,
		func(f *models.ReceiptFields) string { return f.Amount },
		func(f *models.ReceiptFields, v string) { f.Amount = v }},
	{"volume", KindVolume,
		func(f *models.ReceiptFields) string { return f.Volume },
		func(f *models.ReceiptFields, v string) { f.Volume = v }},
	{"vehType", KindText,
		func(f *models.ReceiptFields) string { return f.VehType },
		func(f *models.ReceiptFields, v string) { f.VehType = v }},
	{"vehNo", KindText,
		func(f *models.ReceiptFields) string { return f.VehNo },
		func(f *models.ReceiptFields, v string) { f.VehNo = v }},
	{"customerName", KindText,
		func(f *models.ReceiptFields) string { return f.CustomerName },
		func(f *models.ReceiptFields, v string) { f.CustomerName = v }},
	{"date", KindText,
		func(f *models.ReceiptFields) string { return f.Date },
		func(f *models.ReceiptFields, v string) { f.Date = v }},
	{"mode", KindText,
		func(f *models.ReceiptFields) string { return f.Mode },
		func(f *models.ReceiptFields, v string) { f.Mode = v }},
	{"lstNo", KindText,
		func(f *models.ReceiptFields) string { return f.LstNo },
		func(f *models.ReceiptFields, v string) { f.LstNo = v }},
	{"vatNo", KindText,
		func(f *models.ReceiptFields) string { return f.VatNo },
		func(f *models.ReceiptFields, v string) { f.VatNo = v }},
	{"attendantId", KindText,
		func(f *models.ReceiptFields) string { return f.AttendantID },
		func(f *models.ReceiptFields, v string) { f.AttendantID = v }},
}

// Render normalizes a raw field value for display. Formatting only
// applies to non-empty input: an empty decimal stays empty instead of
// becoming "0.00".
func (f Field) Render(raw string) string {
	switch f.Kind {
	case KindDecimal:
		if raw == "" {
			return ""
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			v = 0
		}
		return strconv.FormatFloat(v, 'f', 2, 64)
	case KindVolume:
		if raw != "" && !strings.HasSuffix(raw, "L") {
			return raw + " L"
		}
		return raw
	default:
		return raw
	}
}

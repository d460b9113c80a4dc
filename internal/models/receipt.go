package models

// ReceiptFields is the full set of values printed on one fuel receipt.
// Everything travels as strings; numeric fields keep whatever the user
// typed until the preview layer normalizes them for display.
type ReceiptFields struct {
	StationName  string `json:"stationName"`
	Address      string `json:"address"`
	TelNo        string `json:"telNo"`
	ReceiptNo    string `json:"receiptNo"`
	FccID        string `json:"fccId"`
	FipNo        string `json:"fipNo"`
	NozzleNo     string `json:"nozzleNo"`
	Product      string `json:"product"`
	RatePerLtr   string `json:"ratePerLtr"`
	Amount       string `json:"amount"`
	Volume       string `json:"volume"`
	VehType      string `json:"vehType"`
	VehNo        string `json:"vehNo"`
	CustomerName string `json:"customerName"`
	Date         string `json:"date"` // "2006-01-02 15:04" in IST
	Mode         string `json:"mode"`
	LstNo        string `json:"lstNo"`
	VatNo        string `json:"vatNo"`
	AttendantID  string `json:"attendantId"`
}

// ReceiptPatch is a sparse ReceiptFields: nil means "leave the form
// value alone", a non-nil empty string means "clear it". Backend
// responses and batch entries are applied to the form through patches
// so partial responses perform partial updates.
type ReceiptPatch struct {
	StationName  *string `json:"stationName,omitempty"`
	Address      *string `json:"address,omitempty"`
	TelNo        *string `json:"telNo,omitempty"`
	ReceiptNo    *string `json:"receiptNo,omitempty"`
	FccID        *string `json:"fccId,omitempty"`
	FipNo        *string `json:"fipNo,omitempty"`
	NozzleNo     *string `json:"nozzleNo,omitempty"`
	Product      *string `json:"product,omitempty"`
	RatePerLtr   *string `json:"ratePerLtr,omitempty"`
	Amount       *string `json:"amount,omitempty"`
	Volume       *string `json:"volume,omitempty"`
	VehType      *string `json:"vehType,omitempty"`
	VehNo        *string `json:"vehNo,omitempty"`
	CustomerName *string `json:"customerName,omitempty"`
	Date         *string `json:"date,omitempty"`
	Mode         *string `json:"mode,omitempty"`
	LstNo        *string `json:"lstNo,omitempty"`
	VatNo        *string `json:"vatNo,omitempty"`
	AttendantID  *string `json:"attendantId,omitempty"`
}

// PatchFrom converts a full record into a patch that sets every field.
func PatchFrom(f ReceiptFields) ReceiptPatch {
	s := func(v string) *string { return &v }
	return ReceiptPatch{
		StationName:  s(f.StationName),
		Address:      s(f.Address),
		TelNo:        s(f.TelNo),
		ReceiptNo:    s(f.ReceiptNo),
		FccID:        s(f.FccID),
		FipNo:        s(f.FipNo),
		NozzleNo:     s(f.NozzleNo),
		Product:      s(f.Product),
		RatePerLtr:   s(f.RatePerLtr),
		Amount:       s(f.Amount),
		Volume:       s(f.Volume),
		VehType:      s(f.VehType),
		VehNo:        s(f.VehNo),
		CustomerName: s(f.CustomerName),
		Date:         s(f.Date),
		Mode:         s(f.Mode),
		LstNo:        s(f.LstNo),
		VatNo:        s(f.VatNo),
		AttendantID:  s(f.AttendantID),
	}
}

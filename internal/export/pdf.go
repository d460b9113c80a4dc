package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf/v2"

	"fuel-backend/internal/models"
)

// GenerateReceiptPDF renders the receipt as a monochrome A6 slip.
func GenerateReceiptPDF(f models.ReceiptFields) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A6", "")
	pdf.SetMargins(8, 8, 8)
	pdf.AddPage()

	// Header
	pdf.SetFont("Courier", "B", 11)
	pdf.CellFormat(89, 6, f.StationName, "", 1, "C", false, 0, "")
	pdf.SetFont("Courier", "", 8)
	pdf.CellFormat(89, 4, f.Address, "", 1, "C", false, 0, "")
	pdf.CellFormat(89, 4, fmt.Sprintf("TEL. NO: %s", f.TelNo), "", 1, "C", false, 0, "")
	pdf.Ln(3)

	row := func(label, value string) {
		pdf.SetFont("Courier", "B", 8)
		pdf.CellFormat(32, 4.5, label, "", 0, "L", false, 0, "")
		pdf.SetFont("Courier", "", 8)
		pdf.CellFormat(57, 4.5, value, "", 1, "L", false, 0, "")
	}

	row("RECEIPT NO", f.ReceiptNo)
	row("FCC ID", f.FccID)
	row("FIP NO", f.FipNo)
	row("NOZZLE NO", f.NozzleNo)
	row("PRODUCT", f.Product)
	row("RATE/LTR", f.RatePerLtr)
	row("AMOUNT", f.Amount)
	row("VOLUME", f.Volume)
	row("VEH TYPE", f.VehType)
	row("VEH NO", f.VehNo)
	row("CUSTOMER", f.CustomerName)
	row("DATE", f.Date)
	row("MODE", f.Mode)
	row("LST NO", f.LstNo)
	row("VAT NO", f.VatNo)
	row("ATTENDANT ID", f.AttendantID)

	pdf.Ln(3)
	pdf.SetFont("Courier", "B", 9)
	pdf.CellFormat(89, 5, "THANK YOU! VISIT AGAIN", "", 1, "C", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

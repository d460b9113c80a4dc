// Package export turns receipts into downloadable artifacts: grayscale
// PNG captures, a zipped yearly archive with a CSV summary, and a PDF
// variant of the single receipt.
package export

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	xdraw "golang.org/x/image/draw"

	"fuel-backend/internal/models"
)

// Rasterizer captures a receipt as a raster image.
type Rasterizer interface {
	Capture(fields models.ReceiptFields) (image.Image, error)
}

// ReceiptRasterizer renders the receipt layout as monospaced text on a
// white card and upscales it by a fixed factor for legibility.
type ReceiptRasterizer struct {
	Scale int
}

func NewReceiptRasterizer(scale int) *ReceiptRasterizer {
	if scale < 1 {
		scale = 1
	}
	return &ReceiptRasterizer{Scale: scale}
}

const (
	padX       = 12
	lineHeight = 16
)

// Capture draws the receipt and returns it scaled by r.Scale.
func (r *ReceiptRasterizer) Capture(fields models.ReceiptFields) (image.Image, error) {
	lines := receiptLines(fields)
	if len(lines) == 0 {
		return nil, fmt.Errorf("nothing to capture")
	}

	face := basicfont.Face7x13
	width := 0
	for _, line := range lines {
		if w := font.MeasureString(face, line).Ceil(); w > width {
			width = w
		}
	}
	width += 2 * padX
	height := lineHeight * (len(lines) + 1)

	base := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(base, base.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  base,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}
	for i, line := range lines {
		drawer.Dot = fixed.P(padX, lineHeight*(i+1))
		drawer.DrawString(line)
	}

	if r.Scale == 1 {
		return base, nil
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width*r.Scale, height*r.Scale))
	xdraw.NearestNeighbor.Scale(scaled, scaled.Bounds(), base, base.Bounds(), xdraw.Src, nil)
	return scaled, nil
}

// receiptLines lays the fields out the way the printed slip reads.
func receiptLines(f models.ReceiptFields) []string {
	row := func(label, value string) string {
		return fmt.Sprintf("%-14s: %s", label, value)
	}
	return []string{
		centered(f.StationName, 46),
		centered(f.Address, 46),
		centered("TEL. NO: "+f.TelNo, 46),
		"",
		row("RECEIPT NO", f.ReceiptNo),
		row("FCC ID", f.FccID),
		row("FIP NO", f.FipNo),
		row("NOZZLE NO", f.NozzleNo),
		row("PRODUCT", f.Product),
		row("RATE/LTR", f.RatePerLtr),
		row("AMOUNT", f.Amount),
		row("VOLUME", f.Volume),
		row("VEH TYPE", f.VehType),
		row("VEH NO", f.VehNo),
		row("CUSTOMER", f.CustomerName),
		row("DATE", f.Date),
		row("MODE", f.Mode),
		row("LST NO", f.LstNo),
		row("VAT NO", f.VatNo),
		row("ATTENDANT ID", f.AttendantID),
		"",
		centered("THANK YOU! VISIT AGAIN", 46),
	}
}

func centered(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return fmt.Sprintf("%*s%s", pad, "", s)
}

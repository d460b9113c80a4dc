package export

import (
	"image"
	"math"
)

// Grayscale converts every pixel to gray using the standard luminance
// weights, writing the same value to R, G and B. Alpha is untouched.
func Grayscale(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(bounds)

	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := src.At(x, y).RGBA()
			// RGBA() returns 16-bit channels; work in 8-bit like the canvas did.
			r8 := float64(r >> 8)
			g8 := float64(g >> 8)
			b8 := float64(b >> 8)
			gray := uint8(math.Round(0.299*r8 + 0.587*g8 + 0.114*b8))

			i := dst.PixOffset(x, y)
			dst.Pix[i] = gray
			dst.Pix[i+1] = gray
			dst.Pix[i+2] = gray
			dst.Pix[i+3] = uint8(a >> 8)
		}
	}
	return dst
}

// Package images has helpers for pictures placed on receipts.
package images

import (
	"image"
	"image/color"
)

// IsGrayscale reports whether every pixel of img has R == G == B, so it
// prints on a monochrome printer without color conversion.
func IsGrayscale(img image.Image) bool {
	switch m := img.(type) {
	case *image.Gray, *image.Gray16:
		return true
	case *image.Paletted:
		return isGrayPalette(m.Palette)
	}

	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if !isGray(img.At(x, y)) {
				return false
			}
		}
	}
	return true
}

func isGrayPalette(p color.Palette) bool {
	for _, c := range p {
		if !isGray(c) {
			return false
		}
	}
	return true
}

func isGray(c color.Color) bool {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return n.R == n.G && n.G == n.B
}

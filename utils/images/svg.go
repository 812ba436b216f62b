package images

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// size used when SVG has no usable viewBox
const defaultSVGSize = 512

// Upper bound for either raster dimension. Receipt printers are at most a
// few thousand dots wide, anything above is a broken or hostile file.
var maxRasterDim = 4096

// RasterizeSVG renders SVG on white background.
//
// Size rules:
//   - width and height are 0: viewBox size (defaultSVGSize when absent)
//   - only one of them is set: scale by it keeping aspect ratio
//   - both are set: fit into the box keeping aspect ratio
func RasterizeSVG(data []byte, width, height int) (*image.RGBA, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(data), oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("unable to read svg: %w", err)
	}

	w, h := fitSize(int(math.Ceil(icon.ViewBox.W)), int(math.Ceil(icon.ViewBox.H)), width, height)
	icon.SetTarget(0, 0, float64(w), float64(h))

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), &image.Uniform{C: color.White}, image.Point{}, draw.Src)

	scanner := rasterx.NewScannerGV(w, h, dst, dst.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return dst, nil
}

func fitSize(intrW, intrH, width, height int) (int, int) {
	if intrW <= 0 {
		intrW = defaultSVGSize
	}
	if intrH <= 0 {
		intrH = defaultSVGSize
	}

	w, h := intrW, intrH
	switch {
	case width > 0 && height > 0:
		scale := math.Min(float64(width)/float64(intrW), float64(height)/float64(intrH))
		w = int(math.Round(float64(intrW) * scale))
		h = int(math.Round(float64(intrH) * scale))
	case width > 0:
		w = width
		h = int(math.Round(float64(width) * float64(intrH) / float64(intrW)))
	case height > 0:
		h = height
		w = int(math.Round(float64(height) * float64(intrW) / float64(intrH)))
	}

	if w > maxRasterDim || h > maxRasterDim {
		s := math.Min(float64(maxRasterDim)/float64(w), float64(maxRasterDim)/float64(h))
		w = int(math.Round(float64(w) * s))
		h = int(math.Round(float64(h) * s))
	}
	return max(w, 1), max(h, 1)
}

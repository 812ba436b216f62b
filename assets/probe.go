// Package assets inspects external files referenced by template components.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/h2non/filetype"
	"go.uber.org/zap"

	"tplprint/component"
	"tplprint/utils/images"
)

const svgMIME = "image/svg+xml"

var ErrNotImage = errors.New("not an image")

// Image describes file referenced by image component.
type Image struct {
	Node *component.Node
	// Path is Source resolved against base directory.
	Path string
	MIME string
	// Pixel size of the decoded image. Vector images are rendered at the
	// size requested by the component.
	Width  int
	Height int
	// Grayscale is set when image prints on monochrome printer as is.
	Grayscale bool
	Err       error
}

// Probe locates, identifies and decodes every image referenced in the
// subtree. Relative sources are resolved against dir. Problems with
// individual files are reported in Image.Err and do not stop probing.
func Probe(ctx context.Context, root *component.Node, dir string, log *zap.Logger) ([]Image, error) {
	if log == nil {
		log = zap.NewNop()
	}

	var found []Image
	for _, node := range root.Images() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		img := probe(node, dir)
		if img.Err != nil {
			log.Warn("Unable to use image", zap.String("source", node.Image.Source), zap.Error(img.Err))
		} else {
			log.Debug("Image found", zap.String("path", img.Path), zap.String("mime", img.MIME), zap.Int("width", img.Width), zap.Int("height", img.Height), zap.Bool("grayscale", img.Grayscale))
		}
		found = append(found, img)
	}
	return found, nil
}

func probe(node *component.Node, dir string) Image {
	img := Image{Node: node}

	src := strings.TrimSpace(node.Image.Source)
	if src == "" {
		img.Err = errors.New("image source is not specified")
		return img
	}
	img.Path = src
	if !filepath.IsAbs(src) {
		img.Path = filepath.Join(dir, src)
	}

	kind, err := filetype.MatchFile(img.Path)
	if err != nil {
		img.Err = fmt.Errorf("unable to read image: %w", err)
		return img
	}

	var decoded image.Image
	switch {
	case kind == filetype.Unknown && strings.EqualFold(filepath.Ext(img.Path), ".svg"):
		img.MIME = svgMIME
		decoded, err = rasterize(img.Path, node.Image)
	case kind == filetype.Unknown || kind.MIME.Type != "image":
		img.Err = fmt.Errorf("%s: %w", img.Path, ErrNotImage)
		return img
	default:
		img.MIME = kind.MIME.Value
		decoded, err = imaging.Open(img.Path)
	}
	if err != nil {
		img.Err = fmt.Errorf("unable to decode image: %w", err)
		return img
	}

	bounds := decoded.Bounds()
	img.Width, img.Height = bounds.Dx(), bounds.Dy()
	img.Grayscale = images.IsGrayscale(decoded)
	return img
}

func rasterize(path string, props *component.ImageProps) (image.Image, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return images.RasterizeSVG(data, props.Width, props.Height)
}

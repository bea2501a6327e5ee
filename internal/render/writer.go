// Package render persists encoded barcode symbols as image files.
//
// The writer owns everything between an encoded symbol and a file on
// disk: scaling to physical dimensions, the quiet zone, the
// human-readable caption, and the image encoding itself. Raster formats
// go through the standard image encoders (plus x/image for BMP and
// TIFF); SVG is written as vector module runs.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"sync"

	"github.com/boombuler/barcode"
	"golang.org/x/image/bmp"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"
)

// ImageWriter renders barcode symbols to image files.
type ImageWriter struct {
	opts Options
}

// NewImageWriter creates a writer with the given options.
// Zero-valued options fall back to their defaults.
func NewImageWriter(opts Options) *ImageWriter {
	return &ImageWriter{opts: opts.Normalize()}
}

// Write renders bc and writes it to basePath plus the format's extension.
// The caption under the symbol is the barcode's full content, which may
// be longer than the input data (e.g. the appended EAN check digit).
// Returns the path actually written.
func (w *ImageWriter) Write(bc barcode.Barcode, basePath string) (string, error) {
	path := basePath + "." + ExtensionFor(w.opts.Format)

	if canonicalFormat(w.opts.Format) == "SVG" {
		if err := w.writeSVG(bc, path); err != nil {
			return "", err
		}
		return path, nil
	}

	img, err := w.compose(bc)
	if err != nil {
		return "", err
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("creating %s: %w", path, err)
	}

	if err := encode(f, img, canonicalFormat(w.opts.Format)); err != nil {
		f.Close()
		return "", fmt.Errorf("encoding %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("closing %s: %w", path, err)
	}

	return path, nil
}

// encode writes img in the given canonical format. Formats outside
// KnownImageFormats fall back to PNG encoding.
func encode(f *os.File, img image.Image, format string) error {
	switch format {
	case "JPEG":
		return jpeg.Encode(f, img, &jpeg.Options{Quality: 95})
	case "GIF":
		return gif.Encode(f, img, nil)
	case "BMP":
		return bmp.Encode(f, img)
	case "TIFF":
		return tiff.Encode(f, img, nil)
	default:
		return png.Encode(f, img)
	}
}

// compose scales the symbol to physical pixel dimensions and draws it on
// a white background with quiet zone margins and the caption below.
func (w *ImageWriter) compose(bc barcode.Barcode) (image.Image, error) {
	o := w.opts

	moduleW := mmToPx(o.ModuleWidth, o.DPI)
	if moduleW < 1 {
		moduleW = 1
	}

	symW := bc.Bounds().Dx() * moduleW
	symH := mmToPx(o.ModuleHeight, o.DPI)
	if symH < bc.Bounds().Dy() {
		symH = bc.Bounds().Dy()
	}

	scaled, err := barcode.Scale(bc, symW, symH)
	if err != nil {
		return nil, fmt.Errorf("scaling symbol: %w", err)
	}

	quiet := mmToPx(o.QuietZone, o.DPI)

	var face font.Face
	captionH := 0
	if !o.NoText {
		face, err = captionFace(o.FontSize, o.DPI)
		if err != nil {
			return nil, err
		}
		defer face.Close()

		m := face.Metrics()
		captionH = mmToPx(o.TextDistance, o.DPI) + m.Ascent.Ceil() + m.Descent.Ceil()
	}

	width := symW + 2*quiet
	height := symH + captionH + 2*quiet

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(img, image.Rect(quiet, quiet, quiet+symW, quiet+symH), scaled, scaled.Bounds().Min, draw.Src)

	if !o.NoText {
		drawCaption(img, face, bc.Content(), width, quiet+symH+mmToPx(o.TextDistance, o.DPI))
	}

	return img, nil
}

// drawCaption draws text horizontally centered, with the top of the text
// box at y.
func drawCaption(img draw.Image, face font.Face, text string, width, y int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: face,
	}

	adv := d.MeasureString(text)
	x := (width - adv.Ceil()) / 2
	if x < 0 {
		x = 0
	}

	d.Dot = fixed.P(x, y+face.Metrics().Ascent.Ceil())
	d.DrawString(text)
}

var loadCaptionFont = sync.OnceValues(func() (*sfnt.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// captionFace returns a Go Regular face at the given point size.
func captionFace(sizePt, dpi int) (font.Face, error) {
	f, err := loadCaptionFont()
	if err != nil {
		return nil, fmt.Errorf("parsing caption font: %w", err)
	}

	face, err := opentype.NewFace(f, &opentype.FaceOptions{
		Size:    float64(sizePt),
		DPI:     float64(dpi),
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("creating caption face: %w", err)
	}
	return face, nil
}

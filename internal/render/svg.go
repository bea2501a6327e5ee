package render

import (
	"fmt"
	"image/color"
	"os"

	svg "github.com/ajstarks/svgo"
	"github.com/boombuler/barcode"
)

// writeSVG writes bc as a vector image. Bars are emitted as one rect per
// run of dark modules, read from the symbol's module row, so the output
// stays resolution independent. Dimensions use the same pixel math as the
// raster path so both outputs print at the same physical size.
func (w *ImageWriter) writeSVG(bc barcode.Barcode, path string) error {
	o := w.opts

	moduleW := mmToPx(o.ModuleWidth, o.DPI)
	if moduleW < 1 {
		moduleW = 1
	}

	symW := bc.Bounds().Dx() * moduleW
	symH := mmToPx(o.ModuleHeight, o.DPI)
	quiet := mmToPx(o.QuietZone, o.DPI)
	fontPx := ptToPx(o.FontSize, o.DPI)

	captionH := 0
	if !o.NoText {
		captionH = mmToPx(o.TextDistance, o.DPI) + fontPx
	}

	width := symW + 2*quiet
	height := symH + captionH + 2*quiet

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	canvas := svg.New(f)
	canvas.Start(width, height)
	canvas.Rect(0, 0, width, height, "fill:white")

	for _, run := range darkRuns(bc) {
		canvas.Rect(quiet+run.start*moduleW, quiet, run.length*moduleW, symH, "fill:black")
	}

	if !o.NoText {
		canvas.Text(width/2, quiet+symH+captionH,
			bc.Content(),
			fmt.Sprintf("text-anchor:middle;font-family:monospace;font-size:%dpx;fill:black", fontPx))
	}

	canvas.End()

	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}

type moduleRun struct {
	start  int // module offset from the left edge of the symbol
	length int // run length in modules
}

// darkRuns run-length encodes the dark modules of the symbol's first row.
// All registered symbologies are linear, so one row describes the symbol.
func darkRuns(bc barcode.Barcode) []moduleRun {
	bounds := bc.Bounds()
	y := bounds.Min.Y

	var runs []moduleRun
	start := -1
	for x := 0; x < bounds.Dx(); x++ {
		if isDark(bc.At(bounds.Min.X+x, y)) {
			if start < 0 {
				start = x
			}
			continue
		}
		if start >= 0 {
			runs = append(runs, moduleRun{start: start, length: x - start})
			start = -1
		}
	}
	if start >= 0 {
		runs = append(runs, moduleRun{start: start, length: bounds.Dx() - start})
	}

	return runs
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r < 0x8000 && g < 0x8000 && b < 0x8000
}

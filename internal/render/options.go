package render

import (
	"math"
	"strings"
)

// Options are the writer rendering options. Physical sizes are millimeters
// (points for the font), converted to pixels through DPI for raster output.
type Options struct {
	ModuleWidth  float64 // width of a single module in mm
	ModuleHeight float64 // bar height in mm
	FontSize     int     // caption font size in points
	TextDistance float64 // gap between bars and caption in mm
	QuietZone    float64 // blank margin around the symbol in mm
	DPI          int     // raster resolution
	Format       string  // image format, e.g. "PNG"
	NoText       bool    // suppress the human-readable caption
}

// Normalize returns a copy with defaults applied to zero values.
func (o Options) Normalize() Options {
	if o.ModuleWidth <= 0 {
		o.ModuleWidth = 0.33
	}
	if o.ModuleHeight <= 0 {
		o.ModuleHeight = 15.0
	}
	if o.FontSize <= 0 {
		o.FontSize = 10
	}
	if o.TextDistance <= 0 {
		o.TextDistance = 5.0
	}
	if o.QuietZone < 0 {
		o.QuietZone = 6.5
	}
	if o.DPI <= 0 {
		o.DPI = 300
	}
	if o.Format == "" {
		o.Format = "PNG"
	}
	return o
}

// KnownImageFormats lists the image formats the writer fully supports.
var KnownImageFormats = []string{"PNG", "JPEG", "BMP", "GIF", "TIFF", "SVG"}

// IsKnownImageFormat reports whether format is in KnownImageFormats.
// Unknown formats are still attempted (PNG encoding) after a warning.
func IsKnownImageFormat(format string) bool {
	format = canonicalFormat(format)
	for _, f := range KnownImageFormats {
		if f == format {
			return true
		}
	}
	return false
}

// canonicalFormat maps common aliases to the canonical format name.
func canonicalFormat(format string) string {
	switch f := strings.ToUpper(strings.TrimSpace(format)); f {
	case "JPG":
		return "JPEG"
	case "TIF":
		return "TIFF"
	default:
		return f
	}
}

// ExtensionFor returns the lowercase file extension (without dot) for a format.
func ExtensionFor(format string) string {
	return strings.ToLower(canonicalFormat(format))
}

// mmToPx converts millimeters to pixels at the given resolution,
// rounding to the nearest pixel.
func mmToPx(mm float64, dpi int) int {
	return int(math.Round(mm / 25.4 * float64(dpi)))
}

// ptToPx converts typographic points to pixels at the given resolution.
func ptToPx(pt, dpi int) int {
	return int(math.Round(float64(pt) / 72.0 * float64(dpi)))
}

package render

import (
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/ean"
)

func TestExtensionFor(t *testing.T) {
	tests := []struct {
		format string
		want   string
	}{
		{"PNG", "png"},
		{"png", "png"},
		{"JPEG", "jpeg"},
		{"JPG", "jpeg"},
		{"TIF", "tiff"},
		{"SVG", "svg"},
		{"WEBP", "webp"},
	}

	for _, tt := range tests {
		if got := ExtensionFor(tt.format); got != tt.want {
			t.Errorf("ExtensionFor(%q) = %q, want %q", tt.format, got, tt.want)
		}
	}
}

func TestIsKnownImageFormat(t *testing.T) {
	for _, f := range []string{"PNG", "jpeg", "jpg", "BMP", "gif", "TIFF", "svg"} {
		if !IsKnownImageFormat(f) {
			t.Errorf("IsKnownImageFormat(%q) = false, want true", f)
		}
	}
	for _, f := range []string{"WEBP", "pdf", ""} {
		if IsKnownImageFormat(f) {
			t.Errorf("IsKnownImageFormat(%q) = true, want false", f)
		}
	}
}

func TestNormalize_Defaults(t *testing.T) {
	o := Options{}.Normalize()
	if o.ModuleHeight != 15.0 || o.FontSize != 10 || o.QuietZone != 6.5 || o.DPI != 300 {
		t.Errorf("Normalize() = %+v, want python-barcode style defaults", o)
	}
	if o.Format != "PNG" {
		t.Errorf("Format = %q, want PNG", o.Format)
	}
}

func TestWrite_PNG(t *testing.T) {
	bc, err := ean.Encode("123456789012")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	base := filepath.Join(t.TempDir(), "123456789012")
	w := NewImageWriter(Options{Format: "PNG", DPI: 96})

	path, err := w.Write(bc, base)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if path != base+".png" {
		t.Errorf("resolved path = %q, want %q", path, base+".png")
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("output is not a valid PNG: %v", err)
	}
	if img.Bounds().Dx() == 0 || img.Bounds().Dy() == 0 {
		t.Error("output image is empty")
	}
}

func TestWrite_NoText(t *testing.T) {
	bc, err := code128.Encode("HELLO")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	base := filepath.Join(t.TempDir(), "hello")
	withText := NewImageWriter(Options{Format: "PNG", DPI: 96})
	withoutText := NewImageWriter(Options{Format: "PNG", DPI: 96, NoText: true})

	p1, err := withText.Write(bc, base+"_text")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	p2, err := withoutText.Write(bc, base+"_notext")
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	h1 := decodeHeight(t, p1)
	h2 := decodeHeight(t, p2)
	if h2 >= h1 {
		t.Errorf("NoText image height = %d, want less than captioned height %d", h2, h1)
	}
}

func TestWrite_SVG(t *testing.T) {
	bc, err := code128.Encode("SVG-TEST")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	base := filepath.Join(t.TempDir(), "svgtest")
	w := NewImageWriter(Options{Format: "SVG"})

	path, err := w.Write(bc, base)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.HasSuffix(path, ".svg") {
		t.Errorf("resolved path = %q, want .svg suffix", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "<svg") {
		t.Error("output missing <svg element")
	}
	if !strings.Contains(out, "<rect") {
		t.Error("output missing bar rects")
	}
	if !strings.Contains(out, "SVG-TEST") {
		t.Error("output missing caption text")
	}
}

func TestWrite_UnknownFormatFallsBackToPNGEncoding(t *testing.T) {
	bc, err := code128.Encode("FALLBACK")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	base := filepath.Join(t.TempDir(), "fallback")
	w := NewImageWriter(Options{Format: "WEBP", DPI: 96})

	path, err := w.Write(bc, base)
	if err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if !strings.HasSuffix(path, ".webp") {
		t.Errorf("resolved path = %q, want requested extension kept", path)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening output: %v", err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Errorf("fallback content should be PNG encoded: %v", err)
	}
}

func TestDarkRuns_AlternatingModules(t *testing.T) {
	bc, err := code128.Encode("A")
	if err != nil {
		t.Fatalf("encoding fixture: %v", err)
	}

	runs := darkRuns(bc)
	if len(runs) == 0 {
		t.Fatal("darkRuns() returned no runs")
	}

	total := 0
	prevEnd := -1
	for _, r := range runs {
		if r.length <= 0 {
			t.Errorf("run %+v has non-positive length", r)
		}
		if r.start <= prevEnd {
			t.Errorf("run %+v overlaps previous run", r)
		}
		prevEnd = r.start + r.length - 1
		total += r.length
	}
	if total >= bc.Bounds().Dx() {
		t.Error("dark runs cover the whole symbol, expected light gaps")
	}
}

func decodeHeight(t *testing.T, path string) int {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("opening %s: %v", path, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding %s: %v", path, err)
	}
	return img.Bounds().Dy()
}

// Package generator runs a single batch conversion: CSV rows in, one
// barcode image file per valid code out.
//
// A run is single threaded and processes rows strictly in file order.
// Failures split into two classes: fatal setup errors abort the run
// with zero counts, row-level errors skip the row and continue. Neither
// class propagates to the caller; everything is reported through the
// logger and the final counts.
package generator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labelforge/barcodegen/internal/config"
	"github.com/labelforge/barcodegen/internal/csvsource"
	"github.com/labelforge/barcodegen/internal/render"
	"github.com/labelforge/barcodegen/internal/symbology"
)

// Renderer is the narrow interface to the barcode-rendering collaborator:
// given a code value and an extensionless base path, it persists an image
// and returns the path actually written. The resolved path may differ
// from the requested one (extension normalization).
type Renderer interface {
	Render(code, basePath string) (string, error)
}

// Result holds the counters of one batch run.
type Result struct {
	Processed int
	Skipped   int
}

// Generator converts the codes of one CSV file into barcode images.
type Generator struct {
	cfg *config.Config
	log *slog.Logger

	// renderer, when set, replaces the symbology-backed renderer.
	// Tests inject fakes here via NewWithRenderer.
	renderer Renderer
}

// New creates a generator for the given configuration.
func New(cfg *config.Config, log *slog.Logger) *Generator {
	return &Generator{cfg: cfg, log: log}
}

// NewWithRenderer creates a generator with a custom rendering collaborator.
func NewWithRenderer(cfg *config.Config, log *slog.Logger, r Renderer) *Generator {
	return &Generator{cfg: cfg, log: log, renderer: r}
}

// Run executes one batch conversion and returns the processed/skipped
// counts. Fatal setup failures (uncreatable output directory, unknown
// barcode format, missing input file, empty input when a header skip was
// requested) are logged and return zero counts. When rows sanitize to
// the same output filename, the last write wins.
func (g *Generator) Run(ctx context.Context) Result {
	start := time.Now()
	cfg := g.cfg
	log := g.log

	log.Info("starting barcode generation",
		"barcode_format", cfg.Output.BarcodeFormat,
		"image_format", cfg.Output.ImageFormat,
		"input", cfg.Source.Path,
		"output_dir", cfg.Output.Dir,
	)

	if err := os.MkdirAll(cfg.Output.Dir, 0o755); err != nil {
		log.Error("cannot create output directory", "dir", cfg.Output.Dir, "error", err)
		return Result{}
	}

	def, err := symbology.Get(cfg.Output.BarcodeFormat)
	if err != nil {
		log.Error("barcode format not recognized", "error", err)
		return Result{}
	}
	log.Info("using symbology", "key", def.Key, "label", def.Label)

	if !render.IsKnownImageFormat(cfg.Output.ImageFormat) {
		log.Warn("image format may not be fully supported, attempting anyway",
			"format", cfg.Output.ImageFormat)
	}

	src, err := csvsource.Open(cfg.Source.Path, cfg.Source.SkipHeader)
	if errors.Is(err, csvsource.ErrEmptyFile) {
		log.Warn("csv file is empty", "input", cfg.Source.Path)
		return Result{}
	}
	if err != nil {
		log.Error("cannot open input csv", "input", cfg.Source.Path, "error", err)
		return Result{}
	}
	defer src.Close()

	if header := src.Header(); header != nil {
		log.Info("skipped header row", "header", strings.Join(header, ","))
	}

	renderer := g.renderer
	if renderer == nil {
		renderer = symbologyRenderer{
			def: def,
			writer: render.NewImageWriter(render.Options{
				ModuleWidth:  cfg.Render.ModuleWidth,
				ModuleHeight: cfg.Render.ModuleHeight,
				FontSize:     cfg.Render.FontSize,
				TextDistance: cfg.Render.TextDistance,
				QuietZone:    cfg.Render.QuietZone,
				DPI:          cfg.Render.DPI,
				Format:       cfg.Output.ImageFormat,
				NoText:       cfg.Render.NoText,
			}),
		}
	}

	bar := newProgress(cfg.Output.Progress, src.Size())
	defer bar.finish()

	r := &run{
		columnIndex: cfg.Source.ColumnIndex,
		outputDir:   cfg.Output.Dir,
		validate:    def.Validate,
		renderer:    renderer,
		log:         log,
		seen:        make(map[string]int),
	}

	var res Result
	for {
		if err := ctx.Err(); err != nil {
			log.Warn("run cancelled", "error", err)
			break
		}

		row, err := src.Next()
		if err == io.EOF {
			break
		}
		bar.update(src.BytesRead())
		if err != nil {
			log.Error("unexpected error reading row", "row", row.Number, "error", err)
			res.Skipped++
			continue
		}

		if r.processRow(row) {
			res.Processed++
		} else {
			res.Skipped++
		}
	}

	log.Info("run complete",
		"processed", res.Processed,
		"skipped", res.Skipped,
		"duration", time.Since(start).Round(time.Millisecond),
	)
	return res
}

// run holds the state shared across the rows of one batch run.
type run struct {
	columnIndex int
	outputDir   string
	validate    func(string) error
	renderer    Renderer
	log         *slog.Logger

	// seen maps safe base names to the row that last wrote them,
	// so overwrites can be audited at debug level.
	seen map[string]int
}

// processRow converts a single row. It returns true when an image was
// written. No error escapes the row boundary: validation failures,
// collaborator errors and even panics all become a logged skip.
func (r *run) processRow(row csvsource.Row) (ok bool) {
	defer func() {
		if rec := recover(); rec != nil {
			r.log.Error("unexpected error processing row", "row", row.Number, "panic", rec)
			ok = false
		}
	}()

	if len(row.Fields) <= r.columnIndex {
		r.log.Warn("row has too few columns",
			"row", row.Number,
			"columns", len(row.Fields),
			"required_index", r.columnIndex,
		)
		return false
	}

	code := strings.TrimSpace(row.Fields[r.columnIndex])
	if code == "" {
		r.log.Warn("skipping empty code value", "row", row.Number)
		return false
	}

	if r.validate != nil {
		if err := r.validate(code); err != nil {
			r.log.Warn("code failed format validation",
				"row", row.Number, "code", code, "error", err)
			return false
		}
	}

	base := SafeFilename(code)
	if base == "" {
		base = fmt.Sprintf("row_%d", row.Number)
	}
	if prev, dup := r.seen[base]; dup {
		r.log.Debug("output filename collision, overwriting",
			"file", base, "row", row.Number, "previous_row", prev)
	}
	r.seen[base] = row.Number

	path, err := r.renderer.Render(code, filepath.Join(r.outputDir, base))
	if err != nil {
		r.log.Error("rendering failed", "row", row.Number, "code", code, "error", err)
		return false
	}

	r.log.Info("generated barcode", "row", row.Number, "code", code, "file", path)
	return true
}

// symbologyRenderer is the production Renderer: encode through the
// symbology definition, persist through the image writer.
type symbologyRenderer struct {
	def    symbology.Definition
	writer *render.ImageWriter
}

func (r symbologyRenderer) Render(code, basePath string) (string, error) {
	bc, err := r.def.Encode(code)
	if err != nil {
		return "", fmt.Errorf("encoding %q: %w", code, err)
	}
	return r.writer.Write(bc, basePath)
}

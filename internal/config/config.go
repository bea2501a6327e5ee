// Package config provides centralized configuration management for the application.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"fmt"
	"strings"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Source  SourceConfig
	Output  OutputConfig
	Render  RenderConfig
	Logging LoggingConfig
}

// SourceConfig holds input CSV settings.
type SourceConfig struct {
	// Path is the input CSV file (default: codes.csv)
	Path string `env:"INPUT_PATH" default:"codes.csv"`

	// ColumnIndex is the zero-based column holding the code values (default: 0)
	ColumnIndex int `env:"CSV_COLUMN_INDEX" default:"0"`

	// SkipHeader controls whether the first row is consumed as a header (default: true)
	SkipHeader bool `env:"CSV_SKIP_HEADER" default:"true"`
}

// OutputConfig holds output settings.
type OutputConfig struct {
	// Dir is the directory image files are written into (default: barcodes)
	Dir string `env:"OUTPUT_DIR" default:"barcodes"`

	// BarcodeFormat is the symbology key, e.g. ean13 or code128 (default: ean13)
	BarcodeFormat string `env:"BARCODE_FORMAT" default:"ean13"`

	// ImageFormat is the image file format, e.g. PNG, JPEG or SVG (default: PNG)
	ImageFormat string `env:"IMAGE_FORMAT" default:"PNG"`

	// Progress enables a terminal progress bar during the run (default: false)
	Progress bool `env:"PROGRESS" default:"false"`
}

// RenderConfig holds the writer rendering options.
// Defaults match the common EAN retail rendition.
type RenderConfig struct {
	// ModuleWidth is the width of a single module in mm (default: 0.33)
	ModuleWidth float64 `env:"RENDER_MODULE_WIDTH_MM" default:"0.33"`

	// ModuleHeight is the bar height in mm (default: 15.0)
	ModuleHeight float64 `env:"RENDER_MODULE_HEIGHT_MM" default:"15.0"`

	// FontSize is the caption font size in points (default: 10)
	FontSize int `env:"RENDER_FONT_SIZE_PT" default:"10"`

	// TextDistance is the gap between bars and caption in mm (default: 5.0)
	TextDistance float64 `env:"RENDER_TEXT_DISTANCE_MM" default:"5.0"`

	// QuietZone is the blank margin around the symbol in mm (default: 6.5)
	QuietZone float64 `env:"RENDER_QUIET_ZONE_MM" default:"6.5"`

	// DPI is the raster resolution used to convert mm to pixels (default: 300)
	DPI int `env:"RENDER_DPI" default:"300"`

	// NoText suppresses the human-readable caption (default: false)
	NoText bool `env:"RENDER_NO_TEXT" default:"false"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	if strings.TrimSpace(c.Source.Path) == "" {
		errs = append(errs, "INPUT_PATH is required")
	}
	if c.Source.ColumnIndex < 0 {
		errs = append(errs, fmt.Sprintf("CSV_COLUMN_INDEX (%d) must be non-negative", c.Source.ColumnIndex))
	}

	if strings.TrimSpace(c.Output.Dir) == "" {
		errs = append(errs, "OUTPUT_DIR is required")
	}
	if strings.TrimSpace(c.Output.BarcodeFormat) == "" {
		errs = append(errs, "BARCODE_FORMAT is required")
	}
	if strings.TrimSpace(c.Output.ImageFormat) == "" {
		errs = append(errs, "IMAGE_FORMAT is required")
	}

	if c.Render.ModuleWidth <= 0 {
		errs = append(errs, "RENDER_MODULE_WIDTH_MM must be positive")
	}
	if c.Render.ModuleHeight <= 0 {
		errs = append(errs, "RENDER_MODULE_HEIGHT_MM must be positive")
	}
	if c.Render.FontSize <= 0 {
		errs = append(errs, "RENDER_FONT_SIZE_PT must be positive")
	}
	if c.Render.TextDistance < 0 {
		errs = append(errs, "RENDER_TEXT_DISTANCE_MM must be non-negative")
	}
	if c.Render.QuietZone < 0 {
		errs = append(errs, "RENDER_QUIET_ZONE_MM must be non-negative")
	}
	if c.Render.DPI <= 0 {
		errs = append(errs, "RENDER_DPI must be positive")
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("LOG_LEVEL (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("LOG_FORMAT (%q) must be one of: text, json", c.Logging.Format))
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}

// String returns a string representation of the config for logging.
func (c *Config) String() string {
	var b strings.Builder
	b.WriteString("Config{")
	b.WriteString(fmt.Sprintf("Source: {Path: %q, ColumnIndex: %d, SkipHeader: %v}, ",
		c.Source.Path, c.Source.ColumnIndex, c.Source.SkipHeader))
	b.WriteString(fmt.Sprintf("Output: {Dir: %q, BarcodeFormat: %q, ImageFormat: %q}, ",
		c.Output.Dir, c.Output.BarcodeFormat, c.Output.ImageFormat))
	b.WriteString(fmt.Sprintf("Render: {ModuleWidth: %g, ModuleHeight: %g, FontSize: %d, TextDistance: %g, QuietZone: %g, DPI: %d}, ",
		c.Render.ModuleWidth, c.Render.ModuleHeight, c.Render.FontSize,
		c.Render.TextDistance, c.Render.QuietZone, c.Render.DPI))
	b.WriteString(fmt.Sprintf("Logging: {Level: %q, Format: %q}",
		c.Logging.Level, c.Logging.Format))
	b.WriteString("}")
	return b.String()
}

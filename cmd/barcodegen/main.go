package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/labelforge/barcodegen/internal/config"
	"github.com/labelforge/barcodegen/internal/generator"
	"github.com/labelforge/barcodegen/internal/logging"
	"github.com/labelforge/barcodegen/internal/render"
	"github.com/labelforge/barcodegen/internal/symbology"
)

var (
	flagInput         string
	flagOutputDir     string
	flagBarcodeFormat string
	flagImageFormat   string
	flagColumn        int
	flagSkipHeader    bool
	flagProgress      bool
)

var rootCmd = &cobra.Command{
	Use:   "barcodegen",
	Short: "Generate barcode images from a CSV file",
	Long: `barcodegen reads code values from a column of a CSV file, validates them
against the configured barcode symbology and writes one image file per
valid code. Configuration comes from the environment (or a .env file);
flags override individual settings.`,
	RunE: runBatch,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Execute one batch conversion",
	RunE:  runBatch,
}

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List supported barcode symbologies and image formats",
	Run: func(cmd *cobra.Command, args []string) {
		for _, def := range symbology.All() {
			fmt.Printf("  %-10s %s\n", def.Key, def.Label)
		}
		fmt.Printf("image formats: %s\n", strings.Join(render.KnownImageFormats, ", "))
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagInput, "input", "", "input CSV file (overrides INPUT_PATH)")
	pf.StringVar(&flagOutputDir, "output-dir", "", "image output directory (overrides OUTPUT_DIR)")
	pf.StringVar(&flagBarcodeFormat, "barcode-format", "", "symbology key, e.g. ean13 (overrides BARCODE_FORMAT)")
	pf.StringVar(&flagImageFormat, "image-format", "", "image format, e.g. PNG (overrides IMAGE_FORMAT)")
	pf.IntVar(&flagColumn, "column", 0, "zero-based code column (overrides CSV_COLUMN_INDEX)")
	pf.BoolVar(&flagSkipHeader, "skip-header", true, "skip the first row as a header (overrides CSV_SKIP_HEADER)")
	pf.BoolVar(&flagProgress, "progress", false, "show a terminal progress bar (overrides PROGRESS)")

	rootCmd.AddCommand(runCmd, formatsCmd)
}

// loadConfig loads .env + environment configuration and applies any
// flags the user explicitly set.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("input") {
		cfg.Source.Path = flagInput
	}
	if flags.Changed("output-dir") {
		cfg.Output.Dir = flagOutputDir
	}
	if flags.Changed("barcode-format") {
		cfg.Output.BarcodeFormat = flagBarcodeFormat
	}
	if flags.Changed("image-format") {
		cfg.Output.ImageFormat = flagImageFormat
	}
	if flags.Changed("column") {
		cfg.Source.ColumnIndex = flagColumn
	}
	if flags.Changed("skip-header") {
		cfg.Source.SkipHeader = flagSkipHeader
	}
	if flags.Changed("progress") {
		cfg.Output.Progress = flagProgress
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	log := logging.WithRun(slog.Default(), logging.NewRunID())
	log.Info("configuration loaded", "config", cfg.String())

	// Fatal setup failures are logged inside Run and end the process
	// normally, distinguished only by the logged error content.
	generator.New(cfg, log).Run(cmd.Context())
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Package symbology maps barcode format names to their encoders.
//
// Each format is a Definition in a registry keyed by lowercase format
// name. Validation is a per-format hook: the EAN family rejects input
// before encoding, every other built-in accepts any data and leaves
// unsupported characters to the encoder's own error.
package symbology

import (
	"fmt"

	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/codabar"
	"github.com/boombuler/barcode/code128"
	"github.com/boombuler/barcode/code39"
	"github.com/boombuler/barcode/code93"
	"github.com/boombuler/barcode/ean"
)

// Definition describes one barcode symbology.
type Definition struct {
	// Key is the lowercase format name used in configuration, e.g. "ean13".
	Key string

	// Label is the human-readable name for listings.
	Label string

	// Validate checks a code value before encoding. Nil means any input
	// is handed to the encoder as-is.
	Validate func(code string) error

	// Encode produces the symbol for a code value. The encoder may extend
	// the data, e.g. the EAN encoders compute and append the check digit.
	Encode func(code string) (barcode.Barcode, error)
}

func init() {
	Register(Definition{
		Key:      "ean13",
		Label:    "EAN-13",
		Validate: eanValidator(12),
		Encode: func(code string) (barcode.Barcode, error) {
			return ean.Encode(code)
		},
	})
	Register(Definition{
		Key:      "ean8",
		Label:    "EAN-8",
		Validate: eanValidator(7),
		Encode: func(code string) (barcode.Barcode, error) {
			return ean.Encode(code)
		},
	})
	Register(Definition{
		Key:   "code128",
		Label: "Code 128",
		Encode: func(code string) (barcode.Barcode, error) {
			return code128.Encode(code)
		},
	})
	Register(Definition{
		Key:   "code39",
		Label: "Code 39",
		Encode: func(code string) (barcode.Barcode, error) {
			return code39.Encode(code, true, false)
		},
	})
	Register(Definition{
		Key:   "code93",
		Label: "Code 93",
		Encode: func(code string) (barcode.Barcode, error) {
			return code93.Encode(code, true, false)
		},
	})
	Register(Definition{
		Key:   "codabar",
		Label: "Codabar",
		Encode: func(code string) (barcode.Barcode, error) {
			return codabar.Encode(code)
		},
	})
}

// eanValidator returns a Validate func requiring exactly n ASCII digits.
// The check digit is computed by the encoder, so callers supply one digit
// less than the printed code length.
func eanValidator(n int) func(string) error {
	return func(code string) error {
		if len(code) != n {
			return fmt.Errorf("need exactly %d digits, got %d characters", n, len(code))
		}
		for _, r := range code {
			if r < '0' || r > '9' {
				return fmt.Errorf("need exactly %d digits, found %q", n, r)
			}
		}
		return nil
	}
}

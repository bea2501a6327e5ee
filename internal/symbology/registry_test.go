package symbology

import (
	"errors"
	"testing"
)

func TestGet_BuiltinsRegistered(t *testing.T) {
	for _, key := range []string{"ean13", "ean8", "code128", "code39", "code93", "codabar"} {
		if _, err := Get(key); err != nil {
			t.Errorf("Get(%q) error = %v", key, err)
		}
	}
}

func TestGet_CaseInsensitive(t *testing.T) {
	def, err := Get("EAN13")
	if err != nil {
		t.Fatalf("Get(EAN13) error = %v", err)
	}
	if def.Key != "ean13" {
		t.Errorf("Key = %q, want %q", def.Key, "ean13")
	}
}

func TestGet_Unknown(t *testing.T) {
	_, err := Get("qr-maxicode")
	if !errors.Is(err, ErrUnknownFormat) {
		t.Fatalf("Get() error = %v, want ErrUnknownFormat", err)
	}
}

func TestEAN13_Validate(t *testing.T) {
	def, err := Get("ean13")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	tests := []struct {
		code    string
		wantErr bool
	}{
		{"123456789012", false},
		{"12345", true},          // too short
		{"12345678901A", true},   // non-digit
		{"1234567890123", true},  // 13 digits, check digit is the encoder's job
		{"", true},
	}

	for _, tt := range tests {
		err := def.Validate(tt.code)
		if (err != nil) != tt.wantErr {
			t.Errorf("Validate(%q) error = %v, wantErr %v", tt.code, err, tt.wantErr)
		}
	}
}

func TestEAN13_EncodeAppendsCheckDigit(t *testing.T) {
	def, err := Get("ean13")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}

	bc, err := def.Encode("123456789012")
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}
	if got := bc.Content(); len(got) != 13 {
		t.Errorf("Content() = %q (%d chars), want 13-digit code", got, len(got))
	}
}

func TestCode128_NoValidator(t *testing.T) {
	def, err := Get("code128")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if def.Validate != nil {
		t.Error("code128 should accept any input without a validator")
	}
}

func TestAll_Sorted(t *testing.T) {
	defs := All()
	if len(defs) != Count() {
		t.Fatalf("All() returned %d definitions, Count() = %d", len(defs), Count())
	}
	for i := 1; i < len(defs); i++ {
		if defs[i-1].Key >= defs[i].Key {
			t.Errorf("All() not sorted: %q before %q", defs[i-1].Key, defs[i].Key)
		}
	}
}

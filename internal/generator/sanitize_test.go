package generator

import "testing"

func TestSafeFilename(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"123456789012", "123456789012"},
		{"590-123/456?789", "590-123456789"},
		{"a b c", "abc"},
		{"under_score-dash", "under_score-dash"},
		{"../../etc/passwd", "etcpasswd"},
		{"???", ""},
		{"", ""},
		{"żółć", "żółć"}, // unicode letters are kept
	}

	for _, tt := range tests {
		if got := SafeFilename(tt.in); got != tt.want {
			t.Errorf("SafeFilename(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSafeFilename_Idempotent(t *testing.T) {
	inputs := []string{"590-123/456?789", "abc", "  x  ", "kod_1", "???"}
	for _, in := range inputs {
		once := SafeFilename(in)
		twice := SafeFilename(once)
		if once != twice {
			t.Errorf("SafeFilename not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

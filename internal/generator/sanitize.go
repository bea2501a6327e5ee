package generator

import (
	"strings"
	"unicode"
)

// SafeFilename reduces a code value to a string safe to use as a file
// name: letters, digits, hyphens and underscores are kept, everything
// else is dropped. The result may be empty; callers fall back to a
// row-number based name. Sanitizing is idempotent.
func SafeFilename(code string) string {
	var b strings.Builder
	b.Grow(len(code))
	for _, r := range code {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

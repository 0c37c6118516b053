package utils

import "strings"

// NormalizePlate uppercases a license plate and strips everything that is
// not a latin letter or digit, so "abc 123" and "ABC-123" collapse to
// "ABC123". Lookups and inserts always go through this.
func NormalizePlate(plate string) string {
	var b strings.Builder
	b.Grow(len(plate))
	for _, r := range strings.ToUpper(plate) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

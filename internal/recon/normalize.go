package recon

import "strings"

// NormalizeDocumentNumber trims whitespace and strips leading zeros so that
// zero-padded numbers from different sources compare equal ("00123" and
// "123" both normalize to "123"). A value that is empty or all zeros
// normalizes to "0". Idempotent.
func NormalizeDocumentNumber(s string) string {
	s = strings.TrimSpace(s)
	stripped := strings.TrimLeft(s, "0")
	if stripped == "" {
		return "0"
	}
	return stripped
}

package errors

import "unicode"

// maxLabelLength caps node labels accepted at the API boundary.
const maxLabelLength = 256

// ValidateLabel validates a node label arriving from an external
// surface (HTTP request, graph file). The core graph accepts any
// string; this boundary check keeps responses and rendered output sane.
//
// The rules are intentionally conservative:
//   - No empty labels
//   - No control characters
//   - Maximum length of 256 characters
func ValidateLabel(label string) error {
	if label == "" {
		return New(ErrCodeInvalidLabel, "node label cannot be empty")
	}
	if len(label) > maxLabelLength {
		return New(ErrCodeInvalidLabel, "node label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range label {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidLabel, "node label contains control characters")
		}
	}
	return nil
}
